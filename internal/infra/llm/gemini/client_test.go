package gemini

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/require"
)

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient(context.Background(), "", Settings{})
	require.Error(t, err)
}

func TestExtractText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text(`{"motivation":`), genai.Text(`"go"}`)}},
		}},
	}
	text, err := extractText(resp)
	require.NoError(t, err)
	require.Equal(t, `{"motivation":"go"}`, text)
}

func TestExtractTextErrors(t *testing.T) {
	cases := map[string]*genai.GenerateContentResponse{
		"nil":        nil,
		"candidates": {},
		"content":    {Candidates: []*genai.Candidate{{}}},
		"text parts": {Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Blob{MIMEType: "image/png"}}},
		}}},
	}
	for name, resp := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := extractText(resp)
			require.Error(t, err)
		})
	}
}
