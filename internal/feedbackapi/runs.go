package feedbackapi

import (
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-chi/chi/v5"

	"github.com/linnemanlabs/sift/internal/pipeline"
)

func (a *API) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	span := trace.SpanFromContext(r.Context())
	span.SetAttributes(attribute.String("sift.run.id", id))

	run, ok, err := a.svc.Get(r.Context(), id)
	if err != nil {
		a.logger.Error(r.Context(), err, "failed to get run", "run_id", id)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal error"})
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "Not found"})
		return
	}

	span.SetAttributes(attribute.String("sift.run.status", string(run.Status)))
	writeJSON(w, http.StatusOK, run)
}

// handleListRuns lists runs by status. Defaults to failed runs, which is
// how operators discover broken analyses.
func (a *API) handleListRuns(w http.ResponseWriter, r *http.Request) {
	status := pipeline.Status(r.URL.Query().Get("status"))
	if status == "" {
		status = pipeline.StatusFailed
	}
	switch status {
	case pipeline.StatusPending, pipeline.StatusCategorizing, pipeline.StatusScoring,
		pipeline.StatusPersisting, pipeline.StatusComplete, pipeline.StatusFailed:
	default:
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "unknown status"})
		return
	}

	runs, err := a.svc.ListByStatus(r.Context(), status)
	if err != nil {
		a.logger.Error(r.Context(), err, "failed to list runs", "status", status)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal error"})
		return
	}
	if runs == nil {
		runs = []pipeline.Run{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": status,
		"runs":   runs,
	})
}
