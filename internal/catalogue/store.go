// Package catalogue holds the in-memory recipe catalogue: the entry data model
// and the name-indexed store that the service layer reads and writes.
package catalogue

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrEntryNotFound = errors.New("entry not found")
	ErrEntryExists   = errors.New("entry already exists")
)

// MemStore is a process-local catalogue keyed by entry name. Entries are never
// updated or removed once inserted, so a reader holding a returned Entry never
// sees it change.
type MemStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewMemStore creates an empty store.
func NewMemStore() *MemStore {
	return &MemStore{entries: make(map[string]Entry)}
}

// Get returns the entry registered under name.
func (s *MemStore) Get(_ context.Context, name string) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[name]
	if !ok {
		return Entry{}, fmt.Errorf("get %q: %w", name, ErrEntryNotFound)
	}
	return e.clone(), nil
}

// Exists reports whether any entry is registered under name.
func (s *MemStore) Exists(_ context.Context, name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.entries[name]
	return ok
}

// Insert adds e under e.Name. The uniqueness check and the write happen under
// the same lock, so concurrent inserts of one name yield exactly one success.
func (s *MemStore) Insert(_ context.Context, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[e.Name]; exists {
		return fmt.Errorf("insert %q: %w", e.Name, ErrEntryExists)
	}
	s.entries[e.Name] = e.clone()
	return nil
}

// List returns every entry sorted by name.
func (s *MemStore) List(_ context.Context) []Entry {
	s.mu.RLock()
	out := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.clone())
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len returns the number of registered entries.
func (s *MemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
