package llm

import (
	"context"
	"errors"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ErrGenerationFailed marks any failure to obtain a completion from the
// text-generation service. Callers decide how to recover.
var ErrGenerationFailed = errors.New("generation failed")

type Message struct {
	Role    string
	Content string
}

// Request is a single completion call.
type Request struct {
	Messages    []Message
	Temperature float32
}

type Response struct {
	Content          string
	Model            string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

type Client interface {
	Generate(ctx context.Context, req Request) (Response, error)
}
