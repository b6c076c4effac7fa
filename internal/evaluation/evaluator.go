package evaluation

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"chatter-trainer/internal/llm"
	"chatter-trainer/internal/logger"
)

// Temperature keeps grading more deterministic than fan replies.
const Temperature = 0.6

// MaxScore is the best possible final score.
const MaxScore = 100

// Feedback is produced once per session and never updated.
type Feedback struct {
	Text  string `json:"text"`
	Score int    `json:"score"`
}

type Evaluator struct {
	client llm.Client
	strict bool
	log    *logger.Logger
}

// New returns an Evaluator. With strict set, the score is read only from the
// delimited block and a missing or malformed block is an error.
func New(client llm.Client, strict bool, log *logger.Logger) *Evaluator {
	return &Evaluator{client: client, strict: strict, log: log}
}

func (e *Evaluator) Evaluate(ctx context.Context, transcript string) (Feedback, error) {
	ctx, span := otel.Tracer("evaluation").Start(ctx, "Evaluate")
	defer span.End()

	resp, err := e.client.Generate(ctx, llm.Request{
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: Prompt(transcript)}},
		Temperature: Temperature,
	})
	if err != nil {
		span.RecordError(err)
		e.log.Logger(ctx).Error("[Evaluation] Request failed", zap.Error(err))
		return Feedback{}, fmt.Errorf("evaluate transcript: %w", err)
	}

	text := resp.Content
	var score int
	if e.strict {
		score, err = ParseScoreBlock(text)
		if err != nil {
			span.RecordError(err)
			e.log.Logger(ctx).Warn("[Evaluation] Could not parse score block", zap.Error(err))
			return Feedback{}, fmt.Errorf("%w: %w", llm.ErrGenerationFailed, err)
		}
	} else {
		score = ExtractScore(text)
	}
	span.SetAttributes(attribute.Int("score", score))

	text += fmt.Sprintf("\n\nFinal Overall Score: %d/%d", score, MaxScore)
	e.log.Logger(ctx).Info("[Evaluation] Transcript scored", zap.Int("score", score), zap.Bool("strict", e.strict))
	return Feedback{Text: text, Score: score}, nil
}
