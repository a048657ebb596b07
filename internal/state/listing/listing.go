// Package listing keeps an in-memory collection and derives a searched,
// filtered, sorted and selectable view of it.
package listing

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var ErrUnknownField = errors.New("champ inconnu")

// Identifiable is any record carrying a canonical identity.
type Identifiable interface {
	Identity() string
}

// Accessor reads a named field. ok=false means the field is undefined on item.
type Accessor[T any] func(item T) (value any, ok bool)

type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

type Config[T Identifiable] struct {
	// Fields registers every field usable for search, filters and sort.
	Fields map[string]Accessor[T]
	// SearchFields are matched by the free-text search.
	SearchFields []string
	// Language drives string collation when sorting. Defaults to French.
	Language language.Tag
}

type Manager[T Identifiable] struct {
	mu sync.RWMutex

	fields       map[string]Accessor[T]
	searchFields []string
	lang         language.Tag

	seed  []T
	items []T

	search    string
	filters   map[string]any
	sortField string
	sortDir   SortDirection
	selected  map[string]struct{}
}

// New builds a manager seeded with initial. Every search field must be registered.
func New[T Identifiable](cfg Config[T], initial []T) (*Manager[T], error) {
	fields := make(map[string]Accessor[T], len(cfg.Fields))
	for name, acc := range cfg.Fields {
		fields[name] = acc
	}
	for _, f := range cfg.SearchFields {
		if _, ok := fields[f]; !ok {
			return nil, fmt.Errorf("search field %q: %w", f, ErrUnknownField)
		}
	}
	lang := cfg.Language
	if lang == language.Und {
		lang = language.French
	}

	m := &Manager[T]{
		fields:       fields,
		searchFields: append([]string(nil), cfg.SearchFields...),
		lang:         lang,
		seed:         append([]T(nil), initial...),
		items:        append([]T(nil), initial...),
		filters:      map[string]any{},
		sortDir:      Asc,
		selected:     map[string]struct{}{},
	}
	return m, nil
}

// Items returns a copy of the backing collection.
func (m *Manager[T]) Items() []T {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]T(nil), m.items...)
}

func (m *Manager[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

func (m *Manager[T]) SetItems(items []T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append([]T(nil), items...)
}

func (m *Manager[T]) AddItem(item T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, item)
}

// UpdateItem replaces the record with the given id by update(record).
// It reports whether a record matched.
func (m *Manager[T]) UpdateItem(id string, update func(T) T) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, it := range m.items {
		if it.Identity() == id {
			m.items[i] = update(it)
			return true
		}
	}
	return false
}

func (m *Manager[T]) RemoveItem(id string) {
	m.RemoveItems(id)
}

// RemoveItems drops every record whose id is listed. Removed records are also deselected.
func (m *Manager[T]) RemoveItems(ids ...string) {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.items[:0:0]
	for _, it := range m.items {
		if _, ok := drop[it.Identity()]; !ok {
			kept = append(kept, it)
		}
	}
	m.items = kept
	for id := range drop {
		delete(m.selected, id)
	}
}

func (m *Manager[T]) SetSearch(term string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.search = term
}

func (m *Manager[T]) Search() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.search
}

// SetFilter sets field=value. A nil or empty-string value removes the filter.
func (m *Manager[T]) SetFilter(field string, value any) error {
	if _, ok := m.fields[field]; !ok {
		return fmt.Errorf("filter %q: %w", field, ErrUnknownField)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, isStr := value.(string); value == nil || (isStr && s == "") {
		delete(m.filters, field)
		return nil
	}
	m.filters[field] = value
	return nil
}

func (m *Manager[T]) ClearFilter(field string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.filters, field)
}

func (m *Manager[T]) ClearFilters() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.filters = map[string]any{}
}

// Filters returns a copy of the active filters.
func (m *Manager[T]) Filters() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]any, len(m.filters))
	for k, v := range m.filters {
		out[k] = v
	}
	return out
}

// SetSort sorts by field. Selecting the current sort field again toggles the direction;
// a new field starts ascending.
func (m *Manager[T]) SetSort(field string) error {
	if _, ok := m.fields[field]; !ok {
		return fmt.Errorf("sort %q: %w", field, ErrUnknownField)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sortField == field {
		if m.sortDir == Asc {
			m.sortDir = Desc
		} else {
			m.sortDir = Asc
		}
		return nil
	}
	m.sortField = field
	m.sortDir = Asc
	return nil
}

func (m *Manager[T]) SetSortDirection(dir SortDirection) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if dir == Desc {
		m.sortDir = Desc
		return
	}
	m.sortDir = Asc
}

func (m *Manager[T]) ClearSort() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sortField = ""
	m.sortDir = Asc
}

func (m *Manager[T]) Sort() (string, SortDirection) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sortField, m.sortDir
}

// Filtered derives the current view. The backing collection is never reordered.
func (m *Manager[T]) Filtered() []T {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.filteredLocked()
}

func (m *Manager[T]) filteredLocked() []T {
	term := strings.ToLower(m.search)
	out := make([]T, 0, len(m.items))
	for _, it := range m.items {
		if term != "" && !m.matchesSearch(it, term) {
			continue
		}
		if !m.matchesFilters(it) {
			continue
		}
		out = append(out, it)
	}

	if m.sortField != "" {
		acc := m.fields[m.sortField]
		col := collate.New(m.lang)
		desc := m.sortDir == Desc
		sort.SliceStable(out, func(i, j int) bool {
			a, aok := acc(out[i])
			b, bok := acc(out[j])
			c := compare(col, a, aok, b, bok)
			if desc {
				return c > 0
			}
			return c < 0
		})
	}
	return out
}

func (m *Manager[T]) matchesSearch(item T, term string) bool {
	for _, f := range m.searchFields {
		v, ok := m.fields[f](item)
		if !ok || v == nil {
			continue
		}
		if strings.Contains(strings.ToLower(toString(v)), term) {
			return true
		}
	}
	return false
}

func (m *Manager[T]) matchesFilters(item T) bool {
	for field, want := range m.filters {
		got, ok := m.fields[field](item)
		if !ok || got == nil {
			return false
		}
		if s, isStr := want.(string); isStr {
			if !strings.Contains(strings.ToLower(toString(got)), strings.ToLower(s)) {
				return false
			}
			continue
		}
		if !strictEqual(got, want) {
			return false
		}
	}
	return true
}

func (m *Manager[T]) SelectItem(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selected[id] = struct{}{}
}

func (m *Manager[T]) DeselectItem(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.selected, id)
}

func (m *Manager[T]) ToggleSelection(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.selected[id]; ok {
		delete(m.selected, id)
		return
	}
	m.selected[id] = struct{}{}
}

// SelectAll selects the current filtered view, not the whole collection.
func (m *Manager[T]) SelectAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selected = map[string]struct{}{}
	for _, it := range m.filteredLocked() {
		m.selected[it.Identity()] = struct{}{}
	}
}

func (m *Manager[T]) DeselectAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selected = map[string]struct{}{}
}

func (m *Manager[T]) IsSelected(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.selected[id]
	return ok
}

// Selected returns the selected ids in collection order.
func (m *Manager[T]) Selected() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.selected))
	seen := make(map[string]struct{}, len(m.selected))
	for _, it := range m.items {
		id := it.Identity()
		if _, ok := m.selected[id]; ok {
			if _, dup := seen[id]; !dup {
				out = append(out, id)
				seen[id] = struct{}{}
			}
		}
	}
	return out
}

// Reset restores the initial collection and clears search, filters, sort and selection.
func (m *Manager[T]) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append([]T(nil), m.seed...)
	m.search = ""
	m.filters = map[string]any{}
	m.sortField = ""
	m.sortDir = Asc
	m.selected = map[string]struct{}{}
}
