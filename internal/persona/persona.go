package persona

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"chatter-trainer/internal/conversation"
	"chatter-trainer/internal/llm"
	"chatter-trainer/internal/logger"
)

// Temperature keeps fan replies varied.
const Temperature = 0.9

const DefaultInstruction = "You are playing the role of a FAN messaging an OnlyFans MODEL. " +
	"You are a flirty, slightly pushy, emotionally curious American man in your mid 20s–30s. " +
	"Your goal is to tease, flirt, challenge her prices, and sometimes be sweet or cheap. " +
	"DO NOT act like the model or try to sell content."

// OpeningLine is injected as the first fan turn of every session.
const OpeningLine = "Heyy 😏 just came across your page… not gonna lie, you’re looking dangerous 👀 what you up to rn?"

type Generator struct {
	client      llm.Client
	instruction string
	log         *logger.Logger
}

func NewGenerator(client llm.Client, instruction string, log *logger.Logger) *Generator {
	if strings.TrimSpace(instruction) == "" {
		instruction = DefaultInstruction
	}
	return &Generator{client: client, instruction: instruction, log: log}
}

// Reply asks the text service to continue the dialogue as the fan.
func (g *Generator) Reply(ctx context.Context, turns []conversation.Turn) (string, error) {
	ctx, span := otel.Tracer("persona").Start(ctx, "Reply")
	defer span.End()
	span.SetAttributes(attribute.Int("turns", len(turns)))

	resp, err := g.client.Generate(ctx, llm.Request{
		Messages:    Messages(g.instruction, turns),
		Temperature: Temperature,
	})
	if err != nil {
		span.RecordError(err)
		g.log.Logger(ctx).Error("[Persona] Reply generation failed", zap.Error(err), zap.Int("turns", len(turns)))
		return "", fmt.Errorf("persona reply: %w", err)
	}
	g.log.Logger(ctx).Debug("[Persona] Reply generated",
		zap.String("model", resp.Model),
		zap.Int("total_tokens", resp.TotalTokens),
	)
	return resp.Content, nil
}

// Messages maps the transcript onto chat roles. The fan is the assistant
// continuing the dialogue; the trainee is the user.
func Messages(instruction string, turns []conversation.Turn) []llm.Message {
	out := make([]llm.Message, 0, len(turns)+1)
	out = append(out, llm.Message{Role: llm.RoleSystem, Content: instruction})
	for _, t := range turns {
		role := llm.RoleUser
		if t.Role == conversation.RoleFan {
			role = llm.RoleAssistant
		}
		out = append(out, llm.Message{Role: role, Content: t.Content})
	}
	return out
}

// LoadInstruction reads a persona override from path. An empty path or an
// unreadable file yields "", which selects DefaultInstruction.
func LoadInstruction(path string, log *logger.Logger) string {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Logger(context.Background()).Warn("[Persona] Prompt file unreadable, using default",
			zap.String("path", path), zap.Error(err))
		return ""
	}
	return strings.TrimSpace(string(data))
}
