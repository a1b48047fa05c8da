package pipeline

import (
	"fmt"
	"maps"
	"time"

	"github.com/linnemanlabs/sift/internal/feedback"
)

// Status tracks where a run is in its lifecycle.
type Status string

const (
	// StatusPending means created, not yet started
	StatusPending Status = "pending"

	// StatusCategorizing means the categorize step is executing
	StatusCategorizing Status = "categorizing"

	// StatusScoring means the score step is executing
	StatusScoring Status = "scoring"

	// StatusPersisting means the persist step is executing
	StatusPersisting Status = "persisting"

	// StatusComplete means finished with a persisted record
	StatusComplete Status = "complete"

	// StatusFailed means a step exhausted its retry budget
	StatusFailed Status = "failed"
)

// Step is the unit of retry within a run.
type Step string

const (
	StepCategorize Step = "categorize"
	StepScore      Step = "score"
	StepPersist    Step = "persist"
)

// Run is the unit of durable execution for one feedback submission.
// Category and Sentiment double as the step-result cache: a non-nil value
// means that step completed and must not re-execute. RecordID marks the
// persist step done. A run becomes immutable once Status is complete.
type Run struct {
	ID          string             `json:"id"`
	InputText   string             `json:"input_text"`
	Status      Status             `json:"status"`
	Category    *feedback.Category `json:"category,omitempty"`
	Sentiment   *float64           `json:"sentiment,omitempty"`
	RecordID    int64              `json:"record_id,omitempty"`
	Attempts    map[Step]int       `json:"attempts,omitempty"`
	FailedStep  Step               `json:"failed_step,omitempty"`
	Error       string             `json:"error,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	CompletedAt time.Time          `json:"completed_at,omitempty"`
}

// Clone returns a deep copy safe to hand across goroutines.
func (r *Run) Clone() *Run {
	cp := *r
	if r.Category != nil {
		c := *r.Category
		cp.Category = &c
	}
	if r.Sentiment != nil {
		s := *r.Sentiment
		cp.Sentiment = &s
	}
	cp.Attempts = maps.Clone(r.Attempts)
	return &cp
}

// Terminal reports whether the run can no longer change.
func (r *Run) Terminal() bool {
	return r.Status == StatusComplete || r.Status == StatusFailed
}

// StepError reports which step exhausted its retry budget and why. It wraps
// the final attempt's error.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
