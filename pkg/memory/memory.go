package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/flowHater/menu-seeder/pkg/record"
)

// Store keeps documents in process memory. It backs dry runs and tests.
type Store struct {
	mu          sync.RWMutex
	collections map[string]map[string]record.Record
}

// New returns an empty Store
func New() *Store {
	return &Store{
		collections: make(map[string]map[string]record.Record),
	}
}

// Set upserts a copy of doc under collection/id
func (s *Store) Set(ctx context.Context, collection, id string, doc record.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[collection]
	if !ok {
		c = make(map[string]record.Record)
		s.collections[collection] = c
	}
	c[id] = doc.Clone()

	return nil
}

// Exists reports whether collection/id holds a document
func (s *Store) Exists(ctx context.Context, collection, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.collections[collection][id]

	return ok, nil
}

// Get returns a copy of the document stored under collection/id
func (s *Store) Get(collection, id string) (record.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.collections[collection][id]

	return d.Clone(), ok
}

// IDs lists the identifiers of a collection, sorted
func (s *Store) IDs(collection string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.collections[collection]))
	for id := range s.collections[collection] {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

// Close is a no-op
func (s *Store) Close(ctx context.Context) error {
	return nil
}
