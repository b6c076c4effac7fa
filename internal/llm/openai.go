package llm

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

type OpenAIClient struct {
	client *openai.Client
	model  string
}

func NewOpenAI(apiKey, baseURL, model string) *OpenAIClient {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAIClient{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

func (c *OpenAIClient) Generate(ctx context.Context, req Request) (Response, error) {
	ctx, span := otel.Tracer("llm/openai").Start(ctx, "Generate")
	defer span.End()
	span.SetAttributes(
		attribute.String("model", c.model),
		attribute.Int("messages", len(req.Messages)),
		attribute.Float64("temperature", float64(req.Temperature)),
	)

	oaMsgs := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		oaMsgs = append(oaMsgs, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    oaMsgs,
		Temperature: req.Temperature,
	})
	if err != nil {
		span.RecordError(err)
		return Response{}, fmt.Errorf("%w: create chat completion: %w", ErrGenerationFailed, err)
	}
	if len(resp.Choices) == 0 {
		return Response{}, fmt.Errorf("%w: completion returned no choices", ErrGenerationFailed)
	}

	out := Response{
		Content: resp.Choices[0].Message.Content,
		Model:   resp.Model,
	}
	if out.Model == "" {
		out.Model = c.model
	}
	out.PromptTokens = resp.Usage.PromptTokens
	out.CompletionTokens = resp.Usage.CompletionTokens
	out.TotalTokens = resp.Usage.TotalTokens
	span.SetAttributes(attribute.Int("total_tokens", out.TotalTokens))
	return out, nil
}
