package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/cognicore/recipeset/pkg/recipeset/features"
	"github.com/cognicore/recipeset/pkg/recipeset/internalerr"
	"github.com/cognicore/recipeset/pkg/recipeset/store"
)

// Ext is the extension reported in paths returned by this store.
const Ext = "mem"

// Store keeps clean tables in memory.
type Store struct {
	mu     sync.RWMutex
	tables map[string][]store.CleanRow
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{tables: make(map[string][]store.CleanRow)}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// Save implements store.Store.
func (s *Store) Save(_ context.Context, name string, rows []features.EnrichedRow) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[name] = store.Project(rows)
	return store.FileName(name, Ext), nil
}

// Load implements store.Store.
func (s *Store) Load(_ context.Context, name string) ([]store.CleanRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, ok := s.tables[name]
	if !ok {
		return nil, fmt.Errorf("table %q: %w", name, internalerr.ErrNotFound)
	}
	return append([]store.CleanRow(nil), rows...), nil
}

// Names returns the saved table names.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.tables))
	for n := range s.tables {
		out = append(out, n)
	}
	return out
}
