// Package feedback defines the shared data contracts of the triage service:
// the closed category set, sentiment label/score pairs as emitted by the
// inference backends, and the persisted feedback record.
package feedback

import (
	"strings"
	"time"
)

// Category is the closed classification set for feedback. Every persisted
// record carries exactly one member; classifier output outside the set is
// coerced by NormalizeCategory.
type Category string

const (
	CategoryBugs            Category = "Bugs"
	CategoryFeatureRequests Category = "FeatureRequests"
	CategoryBilling         Category = "Billing"
)

// DefaultCategory is what unrecognized classifier output coerces to.
const DefaultCategory = CategoryBugs

// NeutralSentiment is the score assigned when a backend returns no usable
// polarity signal.
const NeutralSentiment = 0.5

// Sentiment backend polarity labels.
const (
	LabelPositive = "POSITIVE"
	LabelNegative = "NEGATIVE"
)

// NormalizeCategory maps raw classifier output onto the closed set. The raw
// value is trimmed; anything that is not an exact member afterwards becomes
// DefaultCategory. Inference output is untrusted free text, so this must be
// total.
func NormalizeCategory(raw string) Category {
	switch c := Category(strings.TrimSpace(raw)); c {
	case CategoryBugs, CategoryFeatureRequests, CategoryBilling:
		return c
	default:
		return DefaultCategory
	}
}

// LabelScore is one polarity entry from a sentiment backend.
type LabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Record is the immutable persisted result of a completed analysis run.
// ID and CreatedAt are store-assigned.
type Record struct {
	ID        int64     `json:"id"`
	RawText   string    `json:"raw_text"`
	Category  Category  `json:"category"`
	Sentiment float64   `json:"sentiment"`
	CreatedAt time.Time `json:"created_at"`
}
