// Package claude implements the category classifier on the Anthropic
// Messages API.
package claude

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// systemPrompt pins the closed label set. The pipeline still normalizes the
// response; the model is not trusted to comply.
const systemPrompt = `You classify user feedback for a support triage system.

Emit exactly one label from this closed set, with no other text:
Bugs
FeatureRequests
Billing`

// Client classifies feedback text via the Anthropic API.
type Client struct {
	client anthropic.Client
	model  string
}

// New creates a classifier client with the given API key and model name.
func New(apiKey, model string) *Client {
	return &Client{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

// Classify sends the feedback text and returns the raw label text. Callers
// own normalization onto the closed set.
func (c *Client) Classify(ctx context.Context, text string) (string, error) {
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: 16,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(text)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic api: %w", err)
	}

	label, ok := firstText(message.Content)
	if !ok {
		return "", fmt.Errorf("no text content in response")
	}
	return label, nil
}

// firstText returns the first text block from a response.
func firstText(blocks []anthropic.ContentBlockUnion) (string, bool) {
	for _, block := range blocks {
		if block.Type == "text" {
			return block.Text, true
		}
	}
	return "", false
}
