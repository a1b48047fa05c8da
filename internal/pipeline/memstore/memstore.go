// Package memstore provides an in-memory implementation of pipeline.RunStore.
package memstore

import (
	"context"
	"sync"

	"github.com/linnemanlabs/sift/internal/pipeline"
)

// Store holds analysis runs in memory, keyed by run ID.
type Store struct {
	mu   sync.RWMutex
	runs map[string]*pipeline.Run
}

// New initializes a new in-memory Store.
func New() *Store {
	return &Store{runs: make(map[string]*pipeline.Run)}
}

// Get retrieves a run by its ID. Returns a copy.
func (s *Store) Get(_ context.Context, id string) (*pipeline.Run, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.runs[id]
	if !ok {
		return nil, false, nil
	}
	return r.Clone(), true, nil
}

// Put stores a copy of the run.
func (s *Store) Put(_ context.Context, r *pipeline.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[r.ID] = r.Clone()
	return nil
}

// ListByStatus returns copies of all runs in the given status.
func (s *Store) ListByStatus(_ context.Context, status pipeline.Status) ([]pipeline.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []pipeline.Run
	for _, r := range s.runs {
		if r.Status == status {
			out = append(out, *r.Clone())
		}
	}
	return out, nil
}
