// Package store provides the generic concurrent in-memory record store
// underlying portfolio and position persistence. State is volatile and
// lives for the process lifetime only.
package store

import (
	"errors"
	"sync"
	"sync/atomic"
)

// ErrNotFound is returned when no record exists for the requested id.
var ErrNotFound = errors.New("record not found")

// Item is the contract stored records must satisfy. WithID and Clone
// return copies; the store never hands out references to its own state.
type Item[T any] interface {
	WithID(id int64) T
	Clone() T
}

// Store is a concurrent keyed collection with monotonically increasing
// identifiers. Identifiers are never reused, even across deletes. Records
// are replaced atomically as a whole; every read returns an independent
// copy.
type Store[T Item[T]] struct {
	mu     sync.RWMutex
	nextID atomic.Int64
	items  map[int64]T
}

// New constructs an empty store. The first assigned identifier is 1.
func New[T Item[T]]() *Store[T] {
	return &Store[T]{items: make(map[int64]T)}
}

// Create assigns a fresh identifier and stores the record. Identifier
// assignment is atomic with respect to all other Create calls: no two
// calls ever observe the same value, and values are strictly increasing
// in issuance order.
func (s *Store[T]) Create(item T) T {
	id := s.nextID.Add(1)
	stored := item.WithID(id)

	s.mu.Lock()
	s.items[id] = stored.Clone()
	s.mu.Unlock()

	return stored
}

// Get returns a copy of the record for id, or ErrNotFound.
func (s *Store[T]) Get(id int64) (T, error) {
	s.mu.RLock()
	item, ok := s.items[id]
	s.mu.RUnlock()

	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return item.Clone(), nil
}

// List returns copies of all currently stored records. The result is a
// snapshot taken under the read lock; it does not track later mutations.
func (s *Store[T]) List() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, item.Clone())
	}
	return out
}

// Update replaces the record at id. The path-supplied id always wins over
// whatever identifier the body carries. Returns ErrNotFound if absent.
func (s *Store[T]) Update(id int64, item T) (T, error) {
	stored := item.WithID(id)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		var zero T
		return zero, ErrNotFound
	}
	s.items[id] = stored.Clone()
	return stored, nil
}

// Delete removes the record permanently. Its identifier is never handed
// out again. Returns ErrNotFound if absent.
func (s *Store[T]) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return ErrNotFound
	}
	delete(s.items, id)
	return nil
}

// Len reports the number of records currently stored.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
