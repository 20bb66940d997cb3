package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/yanqian/lung-visualizer/internal/domain/advice"
	"github.com/yanqian/lung-visualizer/internal/infra/llm/chatgpt"
)

// ChatCompleter is the subset of the ChatGPT client the adapter needs.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error)
}

// TextClient is the subset of the Gemini client the adapter needs.
type TextClient interface {
	GenerateText(ctx context.Context, system, prompt string) (string, error)
}

// ChatGPTGenerator adapts the ChatGPT client to the advice domain.
type ChatGPTGenerator struct {
	client      ChatCompleter
	model       string
	temperature float32
	maxTokens   int
}

// NewChatGPTGenerator constructs the adapter.
func NewChatGPTGenerator(client ChatCompleter, model string, temperature float32, maxTokens int) *ChatGPTGenerator {
	return &ChatGPTGenerator{client: client, model: model, temperature: temperature, maxTokens: maxTokens}
}

// Generate sends the system and user prompt as one chat completion.
func (g *ChatGPTGenerator) Generate(ctx context.Context, prompt advice.Prompt) (string, error) {
	req := chatgpt.ChatCompletionRequest{
		Model:       g.model,
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
		Messages:    make([]chatgpt.Message, 0, 2),
	}
	if strings.TrimSpace(prompt.System) != "" {
		req.Messages = append(req.Messages, chatgpt.Message{Role: "system", Content: prompt.System})
	}
	req.Messages = append(req.Messages, chatgpt.Message{Role: "user", Content: prompt.User})

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chatgpt returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

var _ advice.TextGenerator = (*ChatGPTGenerator)(nil)

// GeminiGenerator adapts the Gemini client to the advice domain.
type GeminiGenerator struct {
	client TextClient
}

// NewGeminiGenerator constructs the adapter.
func NewGeminiGenerator(client TextClient) *GeminiGenerator {
	return &GeminiGenerator{client: client}
}

// Generate forwards the prompt with the system text as system instructions.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt advice.Prompt) (string, error) {
	text, err := g.client.GenerateText(ctx, prompt.System, prompt.User)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

var _ advice.TextGenerator = (*GeminiGenerator)(nil)
