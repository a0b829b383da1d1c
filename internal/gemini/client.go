package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

// contentGenerator is the slice of the genai API the client uses, so tests
// can substitute a fake.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client wraps the Google GenAI SDK behind a plain text-in, text-out call.
type Client struct {
	models contentGenerator
	model  string
}

func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	return &Client{models: gc.Models, model: model}, nil
}

// Generate sends the prompt parts as a single user turn and returns the
// concatenated text of the response. Blank parts are skipped.
func (c *Client) Generate(ctx context.Context, parts ...string) (string, error) {
	var genParts []*genai.Part
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			genParts = append(genParts, &genai.Part{Text: p})
		}
	}
	if len(genParts) == 0 {
		return "", errors.New("prompt must not be empty")
	}

	contents := []*genai.Content{{Role: genai.RoleUser, Parts: genParts}}
	resp, err := c.models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("content blocked by safety filters: %s", resp.PromptFeedback.BlockReason)
	}

	var builder strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	if builder.Len() == 0 {
		return "", errors.New("gemini api returned empty response")
	}
	return builder.String(), nil
}

func (c *Client) Model() string {
	return c.model
}
