package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/formapro-console/internal/entity"
	"github.com/xavierca1/formapro-console/internal/infra/queue"
)

type MockMirror struct {
	mock.Mock
}

func (m *MockMirror) Save(ctx context.Context, rv *entity.RendezVous) error {
	return m.Called(ctx, rv).Error(0)
}

func (m *MockMirror) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockMirror) LoadAll(ctx context.Context) ([]entity.RendezVous, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.RendezVous), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishEvent(ctx context.Context, event queue.RendezVousEvent) error {
	return m.Called(ctx, event).Error(0)
}

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) GetProgramme(ctx context.Context, id string) (*entity.Programme, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Programme), args.Error(1)
}

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context) ([]entity.RendezVous, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.RendezVous), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id string) (*entity.RendezVous, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.RendezVous), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, rv *entity.RendezVous) error {
	return m.Called(ctx, rv).Error(0)
}

func (m *MockRepository) Update(ctx context.Context, rv *entity.RendezVous) error {
	return m.Called(ctx, rv).Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
