package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/linnemanlabs/go-core/log"
)

// ErrEmptyText rejects submissions whose text is empty or whitespace.
var ErrEmptyText = errors.New("text must be a non-empty string")

// ErrQueueFull means the run could not be scheduled; acknowledgment promises
// durable scheduling, so a full queue is a submission failure.
var ErrQueueFull = errors.New("analysis queue is full")

// Service is the ingestion boundary for the pipeline. Submit validates,
// records the run, and enqueues it; a worker pool drains the queue and
// executes runs. The queue handoff is the explicit asynchronous boundary:
// callers are acknowledged when the run is scheduled, not when it finishes.
type Service struct {
	runs    RunStore
	engine  *Engine
	logger  log.Logger
	metrics *Metrics

	queue     chan string
	workers   int
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewService creates the service with a queue of the given size drained by
// the given number of workers. Start must be called before submissions are
// processed.
func NewService(runs RunStore, engine *Engine, logger log.Logger, m *Metrics, queueSize, workers int) *Service {
	if logger == nil {
		logger = log.Nop()
	}
	if queueSize < 1 {
		queueSize = 1
	}
	if workers < 1 {
		workers = 1
	}
	return &Service{
		runs:    runs,
		engine:  engine,
		logger:  logger,
		metrics: m,
		queue:   make(chan string, queueSize),
		workers: workers,
	}
}

// Submit validates the text, creates a pending run, and schedules it.
// Returns the run ID once the run is durably queued.
func (s *Service) Submit(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		s.countSubmit("invalid")
		return "", ErrEmptyText
	}

	id := ulid.Make().String()
	run := &Run{
		ID:        id,
		InputText: text,
		Status:    StatusPending,
		CreatedAt: time.Now(),
	}
	if err := s.runs.Put(ctx, run); err != nil {
		s.countSubmit("store_error")
		return "", err
	}

	select {
	case s.queue <- id:
	default:
		run.Status = StatusFailed
		run.Error = ErrQueueFull.Error()
		run.CompletedAt = time.Now()
		if err := s.runs.Put(ctx, run); err != nil {
			s.logger.Error(ctx, err, "failed to mark unscheduled run", "run_id", id)
		}
		s.countSubmit("queue_full")
		return "", ErrQueueFull
	}

	s.countSubmit("accepted")
	s.logger.Info(ctx, "run scheduled", "run_id", id, "queue_depth", len(s.queue))
	return id, nil
}

// Get retrieves a run by ID.
func (s *Service) Get(ctx context.Context, id string) (*Run, bool, error) {
	return s.runs.Get(ctx, id)
}

// ListByStatus lists runs in the given status, e.g. failed runs for
// operational monitoring.
func (s *Service) ListByStatus(ctx context.Context, status Status) ([]Run, error) {
	return s.runs.ListByStatus(ctx, status)
}

// Start launches the worker pool. Workers run detached from the caller's
// cancellation: a client that disconnects after acknowledgment must not
// abort its scheduled run.
func (s *Service) Start(ctx context.Context) {
	base := context.WithoutCancel(ctx)
	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.worker(base, i)
	}
	s.logger.Info(ctx, "worker pool started", "workers", s.workers, "queue_size", cap(s.queue))
}

// Stop closes the queue and waits for in-flight runs to finish, bounded by
// ctx.
func (s *Service) Stop(ctx context.Context) error {
	s.closeOnce.Do(func() { close(s.queue) })
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) worker(ctx context.Context, n int) {
	defer s.wg.Done()
	for id := range s.queue {
		if _, err := s.engine.Execute(ctx, id); err != nil {
			s.logger.Error(ctx, err, "analysis run failed", "run_id", id, "worker", n)
		}
	}
}

func (s *Service) countSubmit(result string) {
	if s.metrics != nil {
		s.metrics.SubmitsTotal.WithLabelValues(result).Inc()
	}
}
