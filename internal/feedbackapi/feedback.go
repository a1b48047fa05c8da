package feedbackapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/linnemanlabs/sift/internal/pipeline"
)

// handleSubmitFeedback validates the body and schedules an analysis run.
// The 202 acknowledges scheduling, not completion.
func (a *API) handleSubmitFeedback(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid JSON"})
		return
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid JSON"})
		return
	}

	text, ok := payload["text"].(string)
	if !ok || text == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Missing 'text' field"})
		return
	}

	id, err := a.svc.Submit(r.Context(), text)
	switch {
	case errors.Is(err, pipeline.ErrEmptyText):
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Missing 'text' field"})
		return
	case errors.Is(err, pipeline.ErrQueueFull):
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"error": "queue full, retry later"})
		return
	case err != nil:
		a.logger.Error(r.Context(), err, "failed to schedule run")
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]any{
		"accepted": true,
		"run_id":   id,
	})
}
