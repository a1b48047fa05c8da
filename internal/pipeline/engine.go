package pipeline

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/linnemanlabs/go-core/log"
	"github.com/linnemanlabs/sift/internal/feedback"
	"github.com/linnemanlabs/sift/internal/record"
)

var tracer = otel.Tracer("github.com/linnemanlabs/sift/internal/pipeline")

// Options tunes per-step retry behavior.
type Options struct {
	// MaxAttempts is the per-step attempt budget, including the first try.
	MaxAttempts uint

	// InitialBackoff is the delay before the first retry of a step.
	InitialBackoff time.Duration

	// MaxBackoff caps the exponential growth of retry delays.
	MaxBackoff time.Duration
}

func (o Options) withDefaults() Options {
	if o.MaxAttempts == 0 {
		o.MaxAttempts = 3
	}
	if o.InitialBackoff <= 0 {
		o.InitialBackoff = 200 * time.Millisecond
	}
	if o.MaxBackoff <= 0 {
		o.MaxBackoff = 5 * time.Second
	}
	return o
}

// EngineHooks receives engine lifecycle events, typically wired to metrics.
type EngineHooks struct {
	// OnStep fires once per step after its retry loop settles.
	OnStep func(step Step, attempts int, duration float64, err error)

	// OnComplete fires when a run reaches a terminal status.
	OnComplete func(e *CompleteEvent)
}

// CompleteEvent describes a run that reached a terminal status.
type CompleteEvent struct {
	Status     Status
	FailedStep Step
	Duration   float64
}

// Engine executes the step sequence for one run. Runs share no mutable
// state; the stores are the only shared resources.
type Engine struct {
	classifier Classifier
	scorer     SentimentScorer
	records    record.Store
	runs       RunStore
	logger     log.Logger
	hooks      EngineHooks
	opts       Options
}

// NewEngine creates an engine with the given ports and stores.
func NewEngine(classifier Classifier, scorer SentimentScorer, records record.Store, runs RunStore, logger log.Logger, hooks EngineHooks, opts Options) *Engine {
	if logger == nil {
		logger = log.Nop()
	}
	return &Engine{
		classifier: classifier,
		scorer:     scorer,
		records:    records,
		runs:       runs,
		logger:     logger,
		hooks:      hooks,
		opts:       opts.withDefaults(),
	}
}

// Execute runs the categorize, score, persist sequence for the run with the
// given ID. Steps whose result is already cached on the run are skipped, so
// re-executing a run never redoes completed work and persist happens at most
// once. On retry exhaustion the run is marked failed with the step name and
// reason; no partial record is ever visible.
func (e *Engine) Execute(ctx context.Context, id string) (*Run, error) {
	run, ok, err := e.runs.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &StepError{Step: StepCategorize, Err: errRunNotFound(id)}
	}
	if run.Terminal() {
		return run, nil
	}

	// Honor a submission whose owning context died before any work started.
	if err := ctx.Err(); err != nil {
		return run, err
	}

	ctx, span := tracer.Start(ctx, "pipeline.run", trace.WithAttributes(
		attribute.String("sift.run.id", run.ID),
	))
	defer span.End()

	start := time.Now()
	L := e.logger.With("run_id", run.ID)

	if run.Category == nil {
		run.Status = StatusCategorizing
		if err := e.runs.Put(ctx, run); err != nil {
			return e.fail(ctx, run, StepCategorize, err, start)
		}

		raw, err := retryStep(ctx, e, run, StepCategorize, func(ctx context.Context) (string, error) {
			return e.classifier.Classify(ctx, run.InputText)
		})
		if err != nil {
			return e.fail(ctx, run, StepCategorize, err, start)
		}

		cat := feedback.NormalizeCategory(raw)
		run.Category = &cat
		if err := e.runs.Put(ctx, run); err != nil {
			return e.fail(ctx, run, StepCategorize, err, start)
		}
		L.Info(ctx, "categorized", "category", cat, "attempts", run.Attempts[StepCategorize])
	}

	if run.Sentiment == nil {
		run.Status = StatusScoring
		if err := e.runs.Put(ctx, run); err != nil {
			return e.fail(ctx, run, StepScore, err, start)
		}

		scores, err := retryStep(ctx, e, run, StepScore, func(ctx context.Context) ([]feedback.LabelScore, error) {
			return e.scorer.Score(ctx, run.InputText)
		})
		if err != nil {
			return e.fail(ctx, run, StepScore, err, start)
		}

		sentiment := resolveSentiment(scores)
		run.Sentiment = &sentiment
		if err := e.runs.Put(ctx, run); err != nil {
			return e.fail(ctx, run, StepScore, err, start)
		}
		L.Info(ctx, "scored", "sentiment", sentiment, "attempts", run.Attempts[StepScore])
	}

	if run.RecordID == 0 {
		run.Status = StatusPersisting
		if err := e.runs.Put(ctx, run); err != nil {
			return e.fail(ctx, run, StepPersist, err, start)
		}

		rec, err := retryStep(ctx, e, run, StepPersist, func(ctx context.Context) (*feedback.Record, error) {
			return e.records.Append(ctx, run.InputText, *run.Category, *run.Sentiment)
		})
		if err != nil {
			return e.fail(ctx, run, StepPersist, err, start)
		}

		run.RecordID = rec.ID
	}

	run.Status = StatusComplete
	run.CompletedAt = time.Now()
	if err := e.runs.Put(ctx, run); err != nil {
		L.Error(ctx, err, "failed to persist completed run state")
	}
	span.SetAttributes(attribute.Int64("sift.record.id", run.RecordID))
	span.SetStatus(codes.Ok, "")

	duration := time.Since(start).Seconds()
	if e.hooks.OnComplete != nil {
		e.hooks.OnComplete(&CompleteEvent{Status: StatusComplete, Duration: duration})
	}
	L.Info(ctx, "run complete",
		"record_id", run.RecordID,
		"category", *run.Category,
		"sentiment", *run.Sentiment,
		"duration", duration,
	)
	return run, nil
}

// retryStep runs one step with bounded exponential backoff, counting
// attempts on the run.
func retryStep[T any](ctx context.Context, e *Engine, run *Run, step Step, op func(context.Context) (T, error)) (T, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = e.opts.InitialBackoff
	bo.MaxInterval = e.opts.MaxBackoff

	ctx, span := tracer.Start(ctx, "pipeline.step."+string(step))

	started := time.Now()
	out, err := backoff.Retry(ctx, func() (T, error) {
		if run.Attempts == nil {
			run.Attempts = make(map[Step]int)
		}
		run.Attempts[step]++
		return op(ctx)
	}, backoff.WithBackOff(bo), backoff.WithMaxTries(e.opts.MaxAttempts))

	span.SetAttributes(attribute.Int("sift.step.attempts", run.Attempts[step]))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "step exhausted retries")
	}
	span.End()

	if e.hooks.OnStep != nil {
		e.hooks.OnStep(step, run.Attempts[step], time.Since(started).Seconds(), err)
	}
	return out, err
}

func (e *Engine) fail(ctx context.Context, run *Run, step Step, cause error, start time.Time) (*Run, error) {
	run.Status = StatusFailed
	run.FailedStep = step
	run.Error = cause.Error()
	run.CompletedAt = time.Now()
	if err := e.runs.Put(ctx, run); err != nil {
		e.logger.Error(ctx, err, "failed to persist failed run state", "run_id", run.ID)
	}

	serr := &StepError{Step: step, Err: cause}
	span := trace.SpanFromContext(ctx)
	span.RecordError(serr)
	span.SetStatus(codes.Error, string(step))

	duration := time.Since(start).Seconds()
	if e.hooks.OnComplete != nil {
		e.hooks.OnComplete(&CompleteEvent{Status: StatusFailed, FailedStep: step, Duration: duration})
	}
	e.logger.Error(ctx, serr, "run failed",
		"run_id", run.ID,
		"step", step,
		"attempts", run.Attempts[step],
		"duration", duration,
	)
	return run, serr
}

type errRunNotFound string

func (e errRunNotFound) Error() string { return "run not found: " + string(e) }
