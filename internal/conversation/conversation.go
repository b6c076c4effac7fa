package conversation

import (
	"strings"
)

type Role string

const (
	RoleFan     Role = "fan"
	RoleChatter Role = "chatter"
)

// Title returns the role name as it appears in a rendered transcript.
func (r Role) Title() string {
	switch r {
	case RoleFan:
		return "Fan"
	case RoleChatter:
		return "Chatter"
	default:
		return string(r)
	}
}

type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Store is the ordered, append-only transcript of one session.
// It is not safe for concurrent use; the owning session serializes access.
type Store struct {
	turns []Turn
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Append(role Role, content string) {
	s.turns = append(s.turns, Turn{Role: role, Content: content})
}

// All returns a copy of every turn in insertion order.
func (s *Store) All() []Turn {
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

func (s *Store) Len() int { return len(s.turns) }

func (s *Store) Count(role Role) int {
	n := 0
	for _, t := range s.turns {
		if t.Role == role {
			n++
		}
	}
	return n
}

// Transcript renders turns one per line as "Fan: ..." / "Chatter: ...".
func Transcript(turns []Turn) string {
	lines := make([]string, 0, len(turns))
	for _, t := range turns {
		lines = append(lines, t.Role.Title()+": "+t.Content)
	}
	return strings.Join(lines, "\n")
}
