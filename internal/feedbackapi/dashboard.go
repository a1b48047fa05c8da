package feedbackapi

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"

	"github.com/linnemanlabs/sift/internal/feedback"
	"github.com/linnemanlabs/sift/internal/triage"
)

//go:embed dashboard.html
var dashboardHTML string

var dashboardTmpl = template.Must(template.New("dashboard").Parse(dashboardHTML))

type dashboardRow struct {
	Record feedback.Record
	Tier   triage.Tier
}

type dashboardView struct {
	Summary triage.Summary
	Rows    []dashboardRow
}

// handleDashboard renders the most recent records with computed tiers and
// summary counters. Read-only; tiers are derived at render time and never
// written back.
func (a *API) handleDashboard(w http.ResponseWriter, r *http.Request) {
	recs, err := a.records.Recent(r.Context(), a.limit)
	if err != nil {
		a.logger.Error(r.Context(), err, "failed to load records for dashboard")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	view := dashboardView{
		Summary: a.tiers.Summarize(recs),
		Rows:    make([]dashboardRow, 0, len(recs)),
	}
	for _, rec := range recs {
		view.Rows = append(view.Rows, dashboardRow{Record: rec, Tier: a.tiers.Tier(&rec)})
	}

	// render to a buffer so a template failure yields a clean 500 instead
	// of a torn page
	var buf bytes.Buffer
	if err := dashboardTmpl.Execute(&buf, view); err != nil {
		a.logger.Error(r.Context(), err, "failed to render dashboard")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
