// Package record defines the append-only persistence boundary for completed
// feedback analyses. The store assigns IDs and timestamps; records are never
// mutated or deleted here.
package record

import (
	"context"

	"github.com/linnemanlabs/sift/internal/feedback"
)

// Store is the persistence interface for feedback records. Append must be a
// single atomic write; Recent returns up to limit records newest-first by ID.
type Store interface {
	Append(ctx context.Context, rawText string, category feedback.Category, sentiment float64) (*feedback.Record, error)
	Recent(ctx context.Context, limit int) ([]feedback.Record, error)
}
