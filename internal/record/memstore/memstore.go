// Package memstore provides an in-memory implementation of record.Store.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/linnemanlabs/sift/internal/feedback"
)

// Store holds feedback records in memory. Suitable for dev/testing.
type Store struct {
	mu      sync.RWMutex
	records []feedback.Record
	nextID  int64
}

// New initializes a new in-memory Store.
func New() *Store {
	return &Store{nextID: 1}
}

// Append assigns the next ID and timestamp and stores the record.
func (s *Store) Append(_ context.Context, rawText string, category feedback.Category, sentiment float64) (*feedback.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := feedback.Record{
		ID:        s.nextID,
		RawText:   rawText,
		Category:  category,
		Sentiment: sentiment,
		CreatedAt: time.Now(),
	}
	s.nextID++
	s.records = append(s.records, rec)
	return &rec, nil
}

// Recent returns up to limit records, newest-first by ID.
func (s *Store) Recent(_ context.Context, limit int) ([]feedback.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 || limit > len(s.records) {
		limit = len(s.records)
	}
	out := make([]feedback.Record, 0, limit)
	for i := len(s.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.records[i])
	}
	return out, nil
}
