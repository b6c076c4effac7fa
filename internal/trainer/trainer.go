// Package trainer drives a training session from the opening fan line
// through the one-shot evaluation and its log and notification sinks.
package trainer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"chatter-trainer/internal/conversation"
	"chatter-trainer/internal/evaluation"
	"chatter-trainer/internal/logger"
	"chatter-trainer/internal/notify"
	"chatter-trainer/internal/sheets"
	"chatter-trainer/internal/storage"
)

// DefaultTurnLimit is the number of trainee messages after which a session is scored.
const DefaultTurnLimit = 10

// deliverTimeout bounds the sheet, archive and notifier calls of one finish.
const deliverTimeout = 2 * time.Minute

var (
	ErrTurnLimitReached     = errors.New("turn limit reached")
	ErrEmptyMessage         = errors.New("message is empty")
	ErrSessionIncomplete    = errors.New("session has not reached the turn limit")
	ErrEvaluationInProgress = errors.New("evaluation already in progress")
)

type ReplyGenerator interface {
	Reply(ctx context.Context, turns []conversation.Turn) (string, error)
}

type Evaluator interface {
	Evaluate(ctx context.Context, transcript string) (evaluation.Feedback, error)
}

type SessionLogger interface {
	AppendSession(ctx context.Context, row sheets.Row) error
}

// Options carries everything a Trainer needs. Archive and Notifiers are optional.
type Options struct {
	Persona   ReplyGenerator
	Evaluator Evaluator
	Sheet     SessionLogger
	Archive   storage.Recorder
	Notifiers []notify.Notifier
	TurnLimit int
	Opening   string
	Logger    *logger.Logger
}

// Trainer holds the collaborators shared by every session.
type Trainer struct {
	persona   ReplyGenerator
	evaluator Evaluator
	sheet     SessionLogger
	archive   storage.Recorder
	notifiers []notify.Notifier
	turnLimit int
	opening   string
	log       *logger.Logger
	now       func() time.Time
}

func New(opts Options) *Trainer {
	limit := opts.TurnLimit
	if limit <= 0 {
		limit = DefaultTurnLimit
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Trainer{
		persona:   opts.Persona,
		evaluator: opts.Evaluator,
		sheet:     opts.Sheet,
		archive:   opts.Archive,
		notifiers: opts.Notifiers,
		turnLimit: limit,
		opening:   opts.Opening,
		log:       log,
		now:       time.Now,
	}
}

// Level classifies a Notice for display.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Notice is a user-visible message about one step of the finish sequence.
type Notice struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

// Outcome is the result of the one-shot evaluation of a session.
type Outcome struct {
	Feedback evaluation.Feedback `json:"feedback"`
	Notices  []Notice            `json:"notices"`
}

// deliver externalizes a scored session. Each sink is independent: a failure
// is reported as a notice and the next sink still runs.
func (t *Trainer) deliver(ctx context.Context, sessionID, name string, chatterTurns int, transcript string, fb evaluation.Feedback) []Notice {
	log := t.log.Logger(ctx).With(zap.String("session_id", sessionID))
	finishedAt := t.now()
	displayName := name
	if displayName == "" {
		displayName = sheets.UnnamedTrainee
	}

	var notices []Notice
	if t.sheet != nil {
		err := t.sheet.AppendSession(ctx, sheets.Row{
			Timestamp:   finishedAt,
			TraineeName: name,
			Transcript:  transcript,
			Feedback:    fb.Text,
		})
		if err != nil {
			log.Error("[Trainer] Sheet logging failed", zap.Error(err))
			notices = append(notices, Notice{Level: LevelError, Text: fmt.Sprintf("Could not log to sheet: %v", err)})
		} else {
			notices = append(notices, Notice{Level: LevelSuccess, Text: "Logged to Google Sheet!"})
		}
	}

	if t.archive != nil {
		err := t.archive.AppendSession(storage.Record{
			Timestamp:    finishedAt,
			SessionID:    sessionID,
			TraineeName:  name,
			ChatterTurns: chatterTurns,
			Score:        fb.Score,
			Transcript:   transcript,
			Feedback:     fb.Text,
		})
		if err != nil {
			log.Error("[Trainer] Archive write failed", zap.Error(err))
			notices = append(notices, Notice{Level: LevelError, Text: fmt.Sprintf("Could not archive session: %v", err)})
		}
	}

	body := notify.EvaluationBody(displayName, fb.Score, fb.Text)
	for _, n := range t.notifiers {
		if err := n.Send(ctx, notify.EvaluationSubject, body); err != nil {
			log.Error("[Trainer] Notification failed", zap.String("notifier", n.Name()), zap.Error(err))
			notices = append(notices, Notice{Level: LevelError, Text: fmt.Sprintf("%s failed to send: %v", n.Name(), err)})
			continue
		}
		notices = append(notices, Notice{Level: LevelSuccess, Text: sentText(n)})
	}
	return notices
}

type recipient interface {
	Recipient() string
}

func sentText(n notify.Notifier) string {
	if r, ok := n.(recipient); ok && r.Recipient() != "" {
		return fmt.Sprintf("%s sent successfully to %s", n.Name(), r.Recipient())
	}
	return n.Name() + " sent successfully"
}
