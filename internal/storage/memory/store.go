// Package memory provides an in-memory record store.
//
// It backs tests and ephemeral sessions. Records are cloned on the way in
// and out so callers cannot mutate stored state.
package memory

import (
	"context"
	"sync"

	"github.com/minad/tab-bookmark/internal/core/domain"
)

// Store is a map-backed record store.
type Store struct {
	mu      sync.RWMutex
	records map[string]*domain.Record
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		records: make(map[string]*domain.Record),
	}
}

// Load is a no-op; the store lives in memory.
func (s *Store) Load(_ context.Context) error {
	return nil
}

// Names returns all stored bookmark names.
func (s *Store) Names(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.records))
	for name := range s.records {
		names = append(names, name)
	}
	return names, nil
}

// Get retrieves the record stored under name.
func (s *Store) Get(_ context.Context, name string) (*domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[name]
	if !ok {
		return nil, domain.ErrRecordNotFound.WithDetails(name)
	}
	return rec.Clone(), nil
}

// Put stores rec under name, honoring noOverwrite.
func (s *Store) Put(_ context.Context, name string, rec *domain.Record, noOverwrite bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if noOverwrite {
		if _, ok := s.records[name]; ok {
			return nil
		}
	}
	s.records[name] = rec.Clone()
	return nil
}

// Delete removes the record stored under name. Absent names are ignored.
func (s *Store) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, name)
	return nil
}

// Rename relabels a stored record.
func (s *Store) Rename(_ context.Context, old, new string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[old]
	if !ok {
		return domain.ErrRecordNotFound.WithDetails(old)
	}
	if _, ok := s.records[new]; ok {
		return domain.ErrRecordExists.WithDetails(new)
	}
	delete(s.records, old)
	s.records[new] = rec
	return nil
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}

// Count returns the number of stored records.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
