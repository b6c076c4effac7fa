package notify

import (
	"context"
	"fmt"
)

// EvaluationSubject is the fixed subject of the per-session email.
const EvaluationSubject = "Chatbot Evaluation Results"

// Notifier delivers one plain-text message. Implementations open and close
// their own connection per call.
type Notifier interface {
	Name() string
	Send(ctx context.Context, subject, body string) error
}

// EvaluationBody renders the summary sent when a session is scored.
func EvaluationBody(trainee string, score int, feedback string) string {
	return fmt.Sprintf("Trainee: %s\n\nFinal Score: %d/100\n\nFeedback:\n%s", trainee, score, feedback)
}
