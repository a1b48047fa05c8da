package pipeline

import "context"

// RunStore is the persistence interface for analysis runs. Failed runs stay
// queryable through ListByStatus for operational monitoring.
type RunStore interface {
	Get(ctx context.Context, id string) (*Run, bool, error)
	Put(ctx context.Context, run *Run) error
	ListByStatus(ctx context.Context, status Status) ([]Run, error)
}
