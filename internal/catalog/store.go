package catalog

import (
	"sync"

	"github.com/RahulNewbie/rest-app/internal/relation"
)

// Store holds the last built relation table.
type Store struct {
	mu    sync.RWMutex
	table *relation.Table
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{table: relation.NewTable()}
}

// Read returns a snapshot of the table.
func (s *Store) Read() *relation.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.Clone()
}

// Merge upserts fresh into the stored table. Titles are never removed.
func (s *Store) Merge(fresh *relation.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table.Merge(fresh)
}

// Len returns the number of stored titles.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.Len()
}
