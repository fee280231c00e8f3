package process

import (
	"context"
	"fmt"
	"time"

	"github.com/ismaeljda/big-brain/metrics"
	"github.com/sashabaranov/go-openai"
)

const systemPrompt = "Tu réponds uniquement au format demandé, avec des titres de section commençant par ##."

type OpenAI struct {
	client *openai.Client
	model  string
}

func NewOpenAI(client *openai.Client, model string) *OpenAI {
	return &OpenAI{
		client: client,
		model:  model,
	}
}

func (o *OpenAI) Generate(ctx context.Context, prompt string) (text string, err error) {
	defer func(start time.Time) { metrics.ObserveGeneration("openai", start, err) }(time.Now())

	resp, err := o.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: o.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
		})
	if err != nil {
		return "", fmt.Errorf("failed to fetch completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	return resp.Choices[len(resp.Choices)-1].Message.Content, nil
}
