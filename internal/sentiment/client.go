// Package sentiment provides the HTTP client for the sentiment-inference
// backend. Backend versions differ in both response shape and label set;
// decoding here is tolerant of every shape observed, and label resolution
// stays with the pipeline.
package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/linnemanlabs/sift/internal/feedback"
)

// Client scores text via a sentiment-inference HTTP endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// New creates a client for the given endpoint.
func New(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type scoreRequest struct {
	Inputs string `json:"inputs"`
}

// Score posts the text and returns the backend's label/score pairs.
func (c *Client) Score(ctx context.Context, text string) ([]feedback.LabelScore, error) {
	body, err := json.Marshal(scoreRequest{Inputs: text})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sentiment api error %d: %s", resp.StatusCode, truncate(respBody))
	}

	return decodeScores(respBody)
}

// decodeScores accepts the shapes seen across backend versions: a bare list
// of {label,score}, a singly-nested list of lists, or a list under a
// "result" wrapper. Anything else is an error; an unrecognized shape must
// never leak past this boundary.
func decodeScores(data []byte) ([]feedback.LabelScore, error) {
	var flat []feedback.LabelScore
	if err := json.Unmarshal(data, &flat); err == nil {
		return flat, nil
	}

	var nested [][]feedback.LabelScore
	if err := json.Unmarshal(data, &nested); err == nil {
		if len(nested) == 0 {
			return nil, nil
		}
		return nested[0], nil
	}

	var wrapped struct {
		Result []feedback.LabelScore `json:"result"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Result != nil {
		return wrapped.Result, nil
	}

	return nil, fmt.Errorf("unrecognized sentiment response: %s", truncate(data))
}

func truncate(b []byte) string {
	const max = 256
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}
