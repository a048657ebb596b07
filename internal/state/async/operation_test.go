package async_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/formapro-console/internal/state/async"
)

type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

func TestExecuteSuccess(t *testing.T) {
	n := &recordingNotifier{}
	op := async.NewOperation[int](n)

	var got int
	res := op.Execute(context.Background(), func(ctx context.Context) (int, error) {
		assert.True(t, op.State().IsLoading)
		return 42, nil
	}, async.Options[int]{
		SuccessMessage: "Rendez-vous créé",
		OnSuccess:      func(v int) { got = v },
	})

	require.True(t, res.Ok())
	assert.Equal(t, 42, res.Value())
	assert.Equal(t, 42, got)
	assert.Equal(t, async.State{IsSuccess: true}, op.State())
	assert.Equal(t, []string{"Rendez-vous créé"}, n.successes)
}

func TestExecuteFailure(t *testing.T) {
	n := &recordingNotifier{}
	op := async.NewOperation[int](n)

	var onErr error
	res := op.Execute(context.Background(), func(context.Context) (int, error) {
		return 0, errors.New("x")
	}, async.Options[int]{OnError: func(err error) { onErr = err }})

	assert.False(t, res.Ok())
	assert.EqualError(t, res.Err(), "x")
	assert.EqualError(t, onErr, "x")
	assert.Equal(t, async.State{Error: "x"}, op.State())
	assert.Equal(t, []string{"x"}, n.errors)

	op.Execute(context.Background(), func(context.Context) (int, error) {
		return 0, errors.New("timeout")
	}, async.Options[int]{ErrorMessage: "Impossible d'enregistrer"})
	assert.Equal(t, []string{"x", "Impossible d'enregistrer"}, n.errors)
	assert.Equal(t, "timeout", op.State().Error)
}

func TestZeroValueIsAValidSuccess(t *testing.T) {
	op := async.NewOperation[*string](async.NopNotifier{})
	res := op.Execute(context.Background(), func(context.Context) (*string, error) {
		return nil, nil
	}, async.Options[*string]{})

	assert.True(t, res.Ok())
	assert.Nil(t, res.Value())
}

func TestPanicAndEmptyMessageUseGenericMessage(t *testing.T) {
	n := &recordingNotifier{}
	op := async.NewOperation[string](n)

	res := op.Execute(context.Background(), func(context.Context) (string, error) {
		panic("boom")
	}, async.Options[string]{})
	assert.EqualError(t, res.Err(), async.GenericErrorMessage)
	assert.Equal(t, async.GenericErrorMessage, op.State().Error)

	res = op.Execute(context.Background(), func(context.Context) (string, error) {
		return "", errors.New("")
	}, async.Options[string]{SuppressToast: true})
	assert.EqualError(t, res.Err(), async.GenericErrorMessage)
	assert.Len(t, n.errors, 1, "suppressed toast is not emitted")
}

func TestSuppressToastSkipsSuccessNotification(t *testing.T) {
	n := &recordingNotifier{}
	op := async.NewOperation[bool](n)
	op.Execute(context.Background(), func(context.Context) (bool, error) { return true, nil },
		async.Options[bool]{SuccessMessage: "ok", SuppressToast: true})
	assert.Empty(t, n.successes)
}

func TestReset(t *testing.T) {
	op := async.NewOperation[int](nil)
	op.Execute(context.Background(), func(context.Context) (int, error) { return 0, errors.New("x") },
		async.Options[int]{SuppressToast: true})
	op.Reset()
	assert.Equal(t, async.State{}, op.State())
}

func TestResultUnwrap(t *testing.T) {
	v, err := async.Ok("a").Unwrap()
	assert.Equal(t, "a", v)
	assert.NoError(t, err)

	_, err = async.Err[string](errors.New("b")).Unwrap()
	assert.EqualError(t, err, "b")
}
