// Package async wraps a one-shot operation in a loading/error/success envelope
// and optionally reports its outcome to a Notifier.
package async

import (
	"context"
	"errors"
	"log"
	"sync"
)

// GenericErrorMessage replaces empty error messages and recovered panics.
const GenericErrorMessage = "Une erreur est survenue"

type State struct {
	IsLoading bool   `json:"isLoading"`
	Error     string `json:"error,omitempty"`
	IsSuccess bool   `json:"isSuccess"`
}

// Result is Ok(value) or Err(error). A zero value is a legitimate success value.
type Result[T any] struct {
	value T
	err   error
}

func Ok[T any](v T) Result[T] { return Result[T]{value: v} }

func Err[T any](err error) Result[T] { return Result[T]{err: err} }

func (r Result[T]) Ok() bool   { return r.err == nil }
func (r Result[T]) Value() T   { return r.value }
func (r Result[T]) Err() error { return r.err }

// Unwrap returns the value and error in the usual Go shape.
func (r Result[T]) Unwrap() (T, error) { return r.value, r.err }

type Options[T any] struct {
	SuccessMessage string
	ErrorMessage   string
	SuppressToast  bool
	OnSuccess      func(T)
	OnError        func(error)
}

type Notifier interface {
	Success(msg string)
	Error(msg string)
}

type LogNotifier struct {
	Tag string
}

func (n LogNotifier) Success(msg string) { log.Printf("[%s] ✅ %s", n.tag(), msg) }
func (n LogNotifier) Error(msg string)   { log.Printf("[%s] ❌ %s", n.tag(), msg) }

func (n LogNotifier) tag() string {
	if n.Tag == "" {
		return "ASYNC"
	}
	return n.Tag
}

type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Error(string)   {}

// Operation tracks the lifecycle of the calls made through Execute. Concurrent
// calls are not de-duplicated: the last one to finish sets the final state.
type Operation[T any] struct {
	mu       sync.RWMutex
	state    State
	notifier Notifier
}

func NewOperation[T any](notifier Notifier) *Operation[T] {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &Operation[T]{notifier: notifier}
}

func (o *Operation[T]) Execute(ctx context.Context, fn func(context.Context) (T, error), opts Options[T]) Result[T] {
	o.setState(State{IsLoading: true})

	value, err := o.call(ctx, fn)
	if err != nil {
		msg := err.Error()
		if msg == "" {
			msg = GenericErrorMessage
			err = errors.New(msg)
		}
		o.setState(State{Error: msg})
		if opts.OnError != nil {
			opts.OnError(err)
		}
		if !opts.SuppressToast {
			if opts.ErrorMessage != "" {
				o.notifier.Error(opts.ErrorMessage)
			} else {
				o.notifier.Error(msg)
			}
		}
		return Err[T](err)
	}

	o.setState(State{IsSuccess: true})
	if opts.OnSuccess != nil {
		opts.OnSuccess(value)
	}
	if opts.SuccessMessage != "" && !opts.SuppressToast {
		o.notifier.Success(opts.SuccessMessage)
	}
	return Ok(value)
}

func (o *Operation[T]) call(ctx context.Context, fn func(context.Context) (T, error)) (value T, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ASYNC] panic récupéré: %v", r)
			var zero T
			value, err = zero, errors.New(GenericErrorMessage)
		}
	}()
	return fn(ctx)
}

func (o *Operation[T]) State() State {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.state
}

// Reset returns to the idle state. An in-flight call still records its outcome when it finishes.
func (o *Operation[T]) Reset() {
	o.setState(State{})
}

func (o *Operation[T]) setState(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}
