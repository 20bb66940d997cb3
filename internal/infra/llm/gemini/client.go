package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultModel is used when no model name is configured.
const DefaultModel = "gemini-1.5-flash"

// Settings tunes the generation call. Zero values leave the model defaults.
type Settings struct {
	Model           string
	Temperature     float32
	TopP            float32
	TopK            int32
	MaxOutputTokens int32
}

// Client wraps the Gemini SDK client for single-shot text generation.
type Client struct {
	client   *genai.Client
	settings Settings
}

// NewClient dials the Gemini API with an API key.
func NewClient(ctx context.Context, apiKey string, settings Settings) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini api key cannot be empty")
	}
	if strings.TrimSpace(settings.Model) == "" {
		settings.Model = DefaultModel
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{client: client, settings: settings}, nil
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.settings.Model
}

// GenerateText sends one prompt with optional system instructions and
// returns the concatenated text parts of the first candidate.
func (c *Client) GenerateText(ctx context.Context, system, prompt string) (string, error) {
	model := c.client.GenerativeModel(c.settings.Model)
	applySettings(model, c.settings)
	if strings.TrimSpace(system) != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return extractText(resp)
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

func applySettings(model *genai.GenerativeModel, s Settings) {
	if s.Temperature > 0 {
		model.SetTemperature(s.Temperature)
	}
	if s.TopP > 0 {
		model.SetTopP(s.TopP)
	}
	if s.TopK > 0 {
		model.SetTopK(s.TopK)
	}
	if s.MaxOutputTokens > 0 {
		model.SetMaxOutputTokens(s.MaxOutputTokens)
	}
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("no candidates in response")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", errors.New("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", errors.New("no text parts in response")
	}
	return strings.Join(parts, ""), nil
}
