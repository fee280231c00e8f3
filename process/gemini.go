package process

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/ismaeljda/big-brain/metrics"
	"google.golang.org/api/option"
)

type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Gemini{
		client: client,
		model:  client.GenerativeModel(model),
	}, nil
}

func (g *Gemini) Generate(ctx context.Context, prompt string) (text string, err error) {
	defer func(start time.Time) { metrics.ObserveGeneration("gemini", start, err) }(time.Now())

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return responseText(resp)
}

func (g *Gemini) Close() error {
	return g.client.Close()
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	if b.Len() == 0 {
		return "", ErrEmptyResponse
	}

	return b.String(), nil
}
