// Package feedbackapi exposes the HTTP surface of the triage service: the
// feedback ingestion endpoint, the triage dashboard, and the operational
// runs API.
package feedbackapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/linnemanlabs/go-core/log"
	"github.com/linnemanlabs/go-core/xerrors"

	"github.com/linnemanlabs/sift/internal/pipeline"
	"github.com/linnemanlabs/sift/internal/record"
	"github.com/linnemanlabs/sift/internal/triage"
)

// PipelineService defines the business operations feedbackapi needs.
type PipelineService interface {
	Submit(ctx context.Context, text string) (string, error)
	Get(ctx context.Context, id string) (*pipeline.Run, bool, error)
	ListByStatus(ctx context.Context, status pipeline.Status) ([]pipeline.Run, error)
}

// API holds dependencies for HTTP handlers.
type API struct {
	logger  log.Logger
	svc     PipelineService
	records record.Store
	tiers   triage.Engine
	limit   int
}

// New creates a new API handler. limit caps how many records the dashboard
// shows.
func New(logger log.Logger, svc PipelineService, records record.Store, tiers triage.Engine, limit int) *API {
	if logger == nil {
		logger = log.Nop()
	}
	if svc == nil {
		panic(xerrors.New("pipeline service is required"))
	}
	if records == nil {
		panic(xerrors.New("record store is required"))
	}
	if limit < 1 {
		limit = 50
	}
	return &API{
		logger:  logger,
		svc:     svc,
		records: records,
		tiers:   tiers,
		limit:   limit,
	}
}

// RegisterRoutes attaches the endpoints to the router. runsAuth guards the
// operational runs API; pass nil to leave it open.
func (a *API) RegisterRoutes(r chi.Router, runsAuth func(http.Handler) http.Handler) {
	r.Post("/api/feedback", a.handleSubmitFeedback)
	r.Get("/", a.handleDashboard)
	r.Group(func(r chi.Router) {
		if runsAuth != nil {
			r.Use(runsAuth)
		}
		r.Get("/api/runs", a.handleListRuns)
		r.Get("/api/runs/{id}", a.handleGetRun)
	})
	r.NotFound(a.handleNotFound)
	r.MethodNotAllowed(a.handleNotFound)
}

// handleNotFound serves every unknown path and method.
func (a *API) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]any{"error": "Not found"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
