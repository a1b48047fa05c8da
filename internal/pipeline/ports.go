package pipeline

import (
	"context"

	"github.com/linnemanlabs/sift/internal/feedback"
)

// Classifier is the capability interface to a category-inference backend.
// The returned label is untrusted free text; callers must normalize it onto
// the closed category set. Implementations must be safe for concurrent use.
type Classifier interface {
	Classify(ctx context.Context, text string) (string, error)
}

// SentimentScorer is the capability interface to a sentiment-inference
// backend. Label sets vary by backend version; resolution onto the single
// positivity scale happens in the pipeline. Implementations must be safe
// for concurrent use.
type SentimentScorer interface {
	Score(ctx context.Context, text string) ([]feedback.LabelScore, error)
}
