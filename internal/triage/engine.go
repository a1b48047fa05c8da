package triage

import "github.com/linnemanlabs/sift/internal/feedback"

// Tier is the derived urgency ranking for one record.
type Tier string

const (
	TierCritical Tier = "CRITICAL"
	TierHigh     Tier = "HIGH"
	TierMedium   Tier = "MEDIUM"
	TierLow      Tier = "LOW"
)

// Engine holds the tier thresholds.
//
// CriticalBelow (per-row, Bugs/Billing) and SummaryCriticalBelow (summary
// counter, category-independent) are distinct cuts on purpose and must not
// be unified.
type Engine struct {
	// CriticalBelow: Bugs/Billing rows with sentiment below this are CRITICAL.
	CriticalBelow float64

	// MediumBelow: FeatureRequests rows with sentiment below this are MEDIUM.
	MediumBelow float64

	// SummaryCriticalBelow: rows below this count as critical incidents in
	// the dashboard summary, regardless of category.
	SummaryCriticalBelow float64
}

// Default returns an Engine with the standard thresholds.
func Default() Engine {
	return Engine{
		CriticalBelow:        0.4,
		MediumBelow:          0.3,
		SummaryCriticalBelow: 0.3,
	}
}

// Tier classifies one record. Bugs and Billing are operationally actionable
// regardless of tone, so they never fall below HIGH; feature requests only
// earn attention when the sentiment is strongly negative.
func (e Engine) Tier(rec *feedback.Record) Tier {
	switch rec.Category {
	case feedback.CategoryBugs, feedback.CategoryBilling:
		if rec.Sentiment < e.CriticalBelow {
			return TierCritical
		}
		return TierHigh
	case feedback.CategoryFeatureRequests:
		if rec.Sentiment < e.MediumBelow {
			return TierMedium
		}
	}
	return TierLow
}

// Summary carries the dashboard tile counters for a record set.
type Summary struct {
	Total         int `json:"total"`
	CriticalCount int `json:"critical_count"`
}

// Summarize computes the summary counters over a record set.
func (e Engine) Summarize(recs []feedback.Record) Summary {
	s := Summary{Total: len(recs)}
	for i := range recs {
		if recs[i].Sentiment < e.SummaryCriticalBelow {
			s.CriticalCount++
		}
	}
	return s
}
