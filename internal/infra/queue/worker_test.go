package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/formapro-console/internal/entity"
	"github.com/xavierca1/formapro-console/internal/state/async"
)

type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendConfirmation(rv entity.RendezVous) error {
	args := m.Called(rv)
	return args.Error(0)
}

func body(t *testing.T, event RendezVousEvent) []byte {
	t.Helper()
	b, err := json.Marshal(event)
	require.NoError(t, err)
	return b
}

func TestWorkerSendsConfirmationOnCreated(t *testing.T) {
	sender := new(MockSender)
	rv := entity.RendezVous{ID: "rdv-1", Client: entity.Client{Nom: "Durand", Email: "paul@exemple.fr"}}
	sender.On("SendConfirmation", mock.MatchedBy(func(got entity.RendezVous) bool {
		return got.ID == "rdv-1" && got.Client.Email == "paul@exemple.fr"
	})).Return(nil)

	w := NewWorker(nil, sender, async.NopNotifier{})
	err := w.Handle(context.Background(), body(t, RendezVousEvent{Type: EventCreated, RendezVous: rv}))

	assert.NoError(t, err)
	sender.AssertExpectations(t)
	assert.True(t, w.op.State().IsSuccess)
}

func TestWorkerReturnsMailFailure(t *testing.T) {
	sender := new(MockSender)
	sender.On("SendConfirmation", mock.Anything).Return(errors.New("smtp indisponible"))

	w := NewWorker(nil, sender, async.NopNotifier{})
	err := w.Handle(context.Background(), body(t, RendezVousEvent{Type: EventCreated, RendezVous: entity.RendezVous{ID: "rdv-2"}}))

	assert.EqualError(t, err, "smtp indisponible")
	assert.Equal(t, "smtp indisponible", w.op.State().Error)
}

func TestWorkerIgnoresOtherEvents(t *testing.T) {
	sender := new(MockSender)
	w := NewWorker(nil, sender, async.NopNotifier{})

	assert.NoError(t, w.Handle(context.Background(), body(t, RendezVousEvent{Type: EventDeleted})))
	sender.AssertNotCalled(t, "SendConfirmation", mock.Anything)
}

func TestWorkerRejectsMalformedBody(t *testing.T) {
	w := NewWorker(nil, new(MockSender), async.NopNotifier{})
	assert.Error(t, w.Handle(context.Background(), []byte("{pas du json")))
}
