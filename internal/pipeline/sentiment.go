package pipeline

import (
	"strings"

	"github.com/linnemanlabs/sift/internal/feedback"
)

// resolveSentiment maps backend polarity entries onto the single positivity
// scale in [0,1]. Resolution order: a POSITIVE entry wins outright; a
// NEGATIVE-only signal is inverted (1-score) to stay on the same scale;
// anything else is neutral. The asymmetry is deliberate: sentiment is one
// positivity scalar, whatever polarity the backend reports in.
func resolveSentiment(scores []feedback.LabelScore) float64 {
	var negative *float64
	for i := range scores {
		switch strings.ToUpper(strings.TrimSpace(scores[i].Label)) {
		case feedback.LabelPositive:
			return clamp01(scores[i].Score)
		case feedback.LabelNegative:
			if negative == nil {
				s := scores[i].Score
				negative = &s
			}
		}
	}
	if negative != nil {
		return clamp01(1 - *negative)
	}
	return feedback.NeutralSentiment
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
