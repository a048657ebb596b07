// Package dialog tracks the open flag and optional payload of a single modal.
package dialog

import "sync"

type State[T any] struct {
	mu         sync.RWMutex
	open       bool
	payload    T
	hasPayload bool
}

func New[T any]() *State[T] {
	return &State[T]{}
}

// Open stores payload, if given, and replaces any previous one.
func (d *State[T]) Open(payload ...T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.openLocked(payload)
}

func (d *State[T]) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closeLocked()
}

// Toggle closes an open dialog, or opens a closed one with payload.
func (d *State[T]) Toggle(payload ...T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.open {
		d.closeLocked()
		return
	}
	d.openLocked(payload)
}

func (d *State[T]) IsOpen() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.open
}

func (d *State[T]) Payload() (T, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.payload, d.hasPayload
}

func (d *State[T]) openLocked(payload []T) {
	var zero T
	d.open = true
	d.payload, d.hasPayload = zero, false
	if len(payload) > 0 {
		d.payload, d.hasPayload = payload[0], true
	}
}

func (d *State[T]) closeLocked() {
	var zero T
	d.open = false
	d.payload, d.hasPayload = zero, false
}
