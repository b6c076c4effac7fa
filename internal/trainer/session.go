package trainer

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"chatter-trainer/internal/conversation"
)

type State int

const (
	// Collecting accepts trainee turns until the limit is reached.
	Collecting State = iota
	// Evaluating means the finish sequence is running.
	Evaluating
	// Done is terminal; the outcome is fixed.
	Done
)

func (s State) String() string {
	switch s {
	case Collecting:
		return "collecting"
	case Evaluating:
		return "evaluating"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// Session is one trainee's conversation. All methods are safe for concurrent
// use; turns are serialized by the session mutex.
type Session struct {
	ID string

	t            *Trainer
	mu           sync.Mutex
	name         string
	store        *conversation.Store
	chatterCount int
	state        State
	outcome      *Outcome
	lastActive   time.Time
}

func (t *Trainer) NewSession(id string) *Session {
	s := &Session{
		ID:         id,
		t:          t,
		store:      conversation.NewStore(),
		lastActive: t.now(),
	}
	if t.opening != "" {
		s.store.Append(conversation.RoleFan, t.opening)
	}
	return s
}

func (s *Session) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = strings.TrimSpace(name)
	s.lastActive = s.t.now()
}

// Submit records a trainee message together with the fan's reply. On a
// generation failure nothing is recorded and the counter is unchanged.
func (s *Session) Submit(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyMessage
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = s.t.now()
	if s.state != Collecting || s.chatterCount >= s.t.turnLimit {
		return "", ErrTurnLimitReached
	}

	pending := append(s.store.All(), conversation.Turn{Role: conversation.RoleChatter, Content: text})
	reply, err := s.t.persona.Reply(ctx, pending)
	if err != nil {
		return "", err
	}

	s.store.Append(conversation.RoleChatter, text)
	s.store.Append(conversation.RoleFan, reply)
	s.chatterCount++
	s.t.log.Logger(ctx).Debug("[Trainer] Turn recorded",
		zap.String("session_id", s.ID),
		zap.Int("chatter_count", s.chatterCount),
	)
	return reply, nil
}

// Finish runs evaluation, logging and notification at most once. Later calls
// return the stored outcome. If evaluation fails the session stays
// unfinished and Finish may be called again.
func (s *Session) Finish(ctx context.Context) (*Outcome, error) {
	s.mu.Lock()
	switch {
	case s.state == Done:
		out := s.outcome
		s.mu.Unlock()
		return out, nil
	case s.state == Evaluating:
		s.mu.Unlock()
		return nil, ErrEvaluationInProgress
	case s.chatterCount < s.t.turnLimit:
		s.mu.Unlock()
		return nil, ErrSessionIncomplete
	}
	s.state = Evaluating
	name := s.name
	count := s.chatterCount
	turns := s.store.All()
	s.mu.Unlock()

	log := s.t.log.Logger(ctx).With(zap.String("session_id", s.ID))
	log.Info("[Trainer] Session reached turn limit, evaluating", zap.Int("chatter_count", count))

	transcript := conversation.Transcript(turns)
	fb, err := s.t.evaluator.Evaluate(ctx, transcript)
	if err != nil {
		log.Error("[Trainer] Evaluation failed", zap.Error(err))
		s.mu.Lock()
		s.state = Collecting
		s.mu.Unlock()
		return nil, err
	}

	// Delivery outlives the caller's request once the score is final.
	dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), deliverTimeout)
	defer cancel()
	out := &Outcome{Feedback: fb}
	out.Notices = s.t.deliver(dctx, s.ID, name, count, transcript, fb)

	s.mu.Lock()
	s.state = Done
	s.outcome = out
	s.lastActive = s.t.now()
	s.mu.Unlock()
	log.Info("[Trainer] Session finished", zap.Int("score", fb.Score))
	return out, nil
}

// View is a consistent snapshot of a session for rendering.
type View struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Turns        []conversation.Turn `json:"turns"`
	ChatterCount int                 `json:"chatter_count"`
	TurnLimit    int                 `json:"turn_limit"`
	State        string              `json:"state"`
	Complete     bool                `json:"complete"`
	Outcome      *Outcome            `json:"outcome,omitempty"`
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return View{
		ID:           s.ID,
		Name:         s.name,
		Turns:        s.store.All(),
		ChatterCount: s.chatterCount,
		TurnLimit:    s.t.turnLimit,
		State:        s.state.String(),
		Complete:     s.chatterCount >= s.t.turnLimit,
		Outcome:      s.outcome,
	}
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Evaluating {
		return 0
	}
	return now.Sub(s.lastActive)
}
