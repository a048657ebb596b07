// Package form holds the values of a structured form, its dirty flag and the
// per-field validation errors. Invalid input is reported through Errors, never
// as a Go error or a panic.
package form

import (
	"sort"
	"sync"
)

type Values map[string]any

// Validator returns an error message for value, or "" when value is valid.
type Validator func(value any) string

type State struct {
	mu sync.RWMutex

	initial    Values
	values     Values
	errors     map[string]string
	dirty      bool
	validators map[string]Validator
}

func New(seed Values, validators map[string]Validator) *State {
	vs := make(map[string]Validator, len(validators))
	for k, v := range validators {
		vs[k] = v
	}
	return &State{
		initial:    cloneValues(seed),
		values:     cloneValues(seed),
		errors:     map[string]string{},
		validators: vs,
	}
}

// UpdateField replaces a top-level value, marks the form dirty and runs the
// field validator when one is registered.
func (s *State) UpdateField(field string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[field] = value
	s.dirty = true
	s.runValidatorLocked(field)
}

// UpdateNestedField merges child=value into the object held by parent (one level deep).
// A missing or non-object parent is replaced by a fresh object.
func (s *State) UpdateNestedField(parent, child string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, _ := s.values[parent].(map[string]any)
	next := make(map[string]any, len(cur)+1)
	for k, v := range cur {
		next[k] = v
	}
	next[child] = value
	s.values[parent] = next
	s.dirty = true
}

// maxArrayGrowth caps how far past the end UpdateArrayField may extend an array.
const maxArrayGrowth = 1000

// UpdateArrayField sets field[index]=value. An index past the end extends the
// array with nil entries, up to maxArrayGrowth of them; negative indexes and
// indexes beyond that are ignored.
func (s *State) UpdateArrayField(field string, index int, value any) {
	if index < 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	arr := s.arrayLocked(field)
	if index-len(arr) > maxArrayGrowth {
		return
	}
	if index >= len(arr) {
		grown := make([]any, index+1)
		copy(grown, arr)
		arr = grown
	}
	arr[index] = value
	s.values[field] = arr
	s.dirty = true
}

func (s *State) AddToArray(field string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[field] = append(s.arrayLocked(field), value)
	s.dirty = true
}

// RemoveFromArray drops field[index]. Out of range indexes leave the form untouched.
func (s *State) RemoveFromArray(field string, index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	arr := s.arrayLocked(field)
	if index < 0 || index >= len(arr) {
		return
	}
	s.values[field] = append(arr[:index], arr[index+1:]...)
	s.dirty = true
}

// arrayLocked returns a private copy of the array held by field.
func (s *State) arrayLocked(field string) []any {
	cur, _ := s.values[field].([]any)
	return append([]any(nil), cur...)
}

// ValidateForm runs every registered validator, without stopping at the first
// failure, and replaces the error map with the result.
func (s *State) ValidateForm() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	errs := map[string]string{}
	for field, validate := range s.validators {
		if msg := validate(s.values[field]); msg != "" {
			errs[field] = msg
		}
	}
	s.errors = errs
	return len(errs) == 0
}

// ResetForm restores the given seed, or the original one, and clears errors and dirty flag.
func (s *State) ResetForm(seed ...Values) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(seed) > 0 {
		s.initial = cloneValues(seed[0])
	}
	s.values = cloneValues(s.initial)
	s.errors = map[string]string{}
	s.dirty = false
}

// SetValidator registers (or with nil, removes) the validator of field.
func (s *State) SetValidator(field string, v Validator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v == nil {
		delete(s.validators, field)
		delete(s.errors, field)
		return
	}
	s.validators[field] = v
}

func (s *State) runValidatorLocked(field string) {
	validate, ok := s.validators[field]
	if !ok {
		return
	}
	if msg := validate(s.values[field]); msg != "" {
		s.errors[field] = msg
		return
	}
	delete(s.errors, field)
}

func (s *State) Values() Values {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneValues(s.values)
}

func (s *State) Value(field string) any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[field]
}

func (s *State) Errors() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.errors))
	for k, v := range s.errors {
		out[k] = v
	}
	return out
}

func (s *State) Error(field string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errors[field]
}

// ErrorFields lists the fields in error, sorted.
func (s *State) ErrorFields() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.errors))
	for k := range s.errors {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (s *State) IsDirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

// cloneValues copies top-level values plus nested objects and arrays one level deep,
// so callers never share the form's internal containers.
func cloneValues(v Values) Values {
	out := make(Values, len(v))
	for k, val := range v {
		switch x := val.(type) {
		case map[string]any:
			m := make(map[string]any, len(x))
			for mk, mv := range x {
				m[mk] = mv
			}
			out[k] = m
		case []any:
			out[k] = append([]any(nil), x...)
		default:
			out[k] = val
		}
	}
	return out
}
