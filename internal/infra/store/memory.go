package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/xavierca1/formapro-console/internal/entity"
)

// Memory is the in-process appointment collection. It is an explicit value:
// create one per process (or per test) and inject it where needed.
type Memory struct {
	mu      sync.RWMutex
	items   []entity.RendezVous
	seed    []entity.RendezVous
	seedIDs map[string]struct{}
	latency time.Duration
}

type Option func(*Memory)

// WithLatency delays every operation, to mimic a remote backend.
func WithLatency(d time.Duration) Option {
	return func(m *Memory) { m.latency = d }
}

func NewMemory(seed []entity.RendezVous, opts ...Option) *Memory {
	m := &Memory{
		seed:    clone(seed),
		seedIDs: make(map[string]struct{}, len(seed)),
	}
	for _, rv := range seed {
		m.seedIDs[rv.ID] = struct{}{}
	}
	for _, opt := range opts {
		opt(m)
	}
	m.items = clone(m.seed)
	return m
}

func (m *Memory) List(ctx context.Context) ([]entity.RendezVous, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return clone(m.items), nil
}

func (m *Memory) FindByID(ctx context.Context, id string) (*entity.RendezVous, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	i := m.indexLocked(id)
	if i < 0 {
		return nil, entity.ErrRendezVousNotFound
	}
	rv := m.items[i]
	return &rv, nil
}

func (m *Memory) Create(ctx context.Context, rv *entity.RendezVous) error {
	if err := m.wait(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.indexLocked(rv.ID) >= 0 {
		return fmt.Errorf("rendez-vous %s déjà présent", rv.ID)
	}
	m.items = append(m.items, *rv)
	return nil
}

// InsertAt puts rv back at index, clamped to the collection bounds. Used to
// undo a delete without changing the list order.
func (m *Memory) InsertAt(ctx context.Context, index int, rv *entity.RendezVous) error {
	if err := m.wait(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.indexLocked(rv.ID) >= 0 {
		return fmt.Errorf("rendez-vous %s déjà présent", rv.ID)
	}
	index = min(max(index, 0), len(m.items))
	m.items = append(m.items, entity.RendezVous{})
	copy(m.items[index+1:], m.items[index:])
	m.items[index] = *rv
	return nil
}

// Position returns the index of id in the collection, or -1.
func (m *Memory) Position(id string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.indexLocked(id)
}

func (m *Memory) Update(ctx context.Context, rv *entity.RendezVous) error {
	if err := m.wait(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexLocked(rv.ID)
	if i < 0 {
		return entity.ErrRendezVousNotFound
	}
	m.items[i] = *rv
	return nil
}

func (m *Memory) Delete(ctx context.Context, id string) error {
	if err := m.wait(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexLocked(id)
	if i < 0 {
		return entity.ErrRendezVousNotFound
	}
	m.items = append(m.items[:i], m.items[i+1:]...)
	return nil
}

// Merge adds records loaded from the mirror. Ids already present are skipped.
func (m *Memory) Merge(records []entity.RendezVous) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	added := 0
	for _, rv := range records {
		if m.indexLocked(rv.ID) >= 0 {
			continue
		}
		m.items = append(m.items, rv)
		added++
	}
	return added
}

// IsSeed reports whether id belongs to the demo data set.
func (m *Memory) IsSeed(id string) bool {
	_, ok := m.seedIDs[id]
	return ok
}

// Reset restores the seed.
func (m *Memory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = clone(m.seed)
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

func (m *Memory) indexLocked(id string) int {
	for i := range m.items {
		if m.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (m *Memory) wait(ctx context.Context) error {
	if m.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(m.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func clone(in []entity.RendezVous) []entity.RendezVous {
	out := make([]entity.RendezVous, len(in))
	copy(out, in)
	return out
}
