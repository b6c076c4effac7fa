package storage

import "time"

// Record is one finished, scored training session.
// Records are appended in chronological order and never rewritten.
type Record struct {
	Timestamp    time.Time `json:"timestamp"`
	SessionID    string    `json:"session_id"`
	TraineeName  string    `json:"trainee_name"`
	ChatterTurns int       `json:"chatter_turns"`
	Score        int       `json:"score"`
	Transcript   string    `json:"transcript"`
	Feedback     string    `json:"feedback"`
}

// Recorder abstracts persistence of finished sessions.
// LoadSessions should return records in chronological order.
// Implementations must be safe for concurrent use.
type Recorder interface {
	AppendSession(rec Record) error
	LoadSessions() ([]Record, error)
}
