package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
)

type capturedQuery struct {
	method  string
	route   string
	outcome string
	dur     time.Duration
}

func TestWithHTTPMethod(t *testing.T) {
	ctx := WithHTTPMethod(context.Background(), "POST")
	if got := httpMethodFromContext(ctx); got != "POST" {
		t.Errorf("method = %q, want POST", got)
	}

	// empty method leaves the context unchanged
	ctx2 := WithHTTPMethod(context.Background(), "")
	if got := httpMethodFromContext(ctx2); got != "" {
		t.Errorf("method = %q, want empty", got)
	}
}

func TestQueryObserver_ReceivesOutcome(t *testing.T) {
	var captured []capturedQuery
	SetQueryObserver(QueryObserverFunc(func(_ context.Context, method, route, outcome string, dur time.Duration) {
		captured = append(captured, capturedQuery{method, route, outcome, dur})
	}))
	t.Cleanup(func() { SetQueryObserver(nil) })

	tr := wrapQueryTracer(nil).(loggingTracer)

	ctx := WithHTTPMethod(context.Background(), "GET")
	ctx = tr.TraceQueryStart(ctx, nil, pgx.TraceQueryStartData{SQL: "SELECT 1"})
	tr.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{})

	if len(captured) != 1 {
		t.Fatalf("captured %d queries, want 1", len(captured))
	}
	if captured[0].method != "GET" {
		t.Errorf("method = %q, want GET", captured[0].method)
	}
	if captured[0].outcome != "ok" {
		t.Errorf("outcome = %q, want ok", captured[0].outcome)
	}
	if captured[0].route != "unknown" {
		t.Errorf("route = %q, want unknown", captured[0].route)
	}

	ctx = tr.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT 2"})
	tr.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{Err: errors.New("boom")})

	if len(captured) != 2 {
		t.Fatalf("captured %d queries, want 2", len(captured))
	}
	if captured[1].outcome != "error" {
		t.Errorf("outcome = %q, want error", captured[1].outcome)
	}
	if captured[1].method != "UNKNOWN" {
		t.Errorf("method = %q, want UNKNOWN", captured[1].method)
	}
}
