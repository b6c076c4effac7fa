package trainer

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Manager keeps live sessions in memory, keyed by id.
type Manager struct {
	t        *Trainer
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager(t *Trainer) *Manager {
	return &Manager{t: t, sessions: make(map[string]*Session)}
}

func (m *Manager) Create() *Session {
	s := m.t.NewSession(uuid.NewString())
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

func (m *Manager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep drops sessions idle for longer than idle and returns how many were
// removed. Sessions in the middle of an evaluation are never dropped.
func (m *Manager) Sweep(idle time.Duration) int {
	now := m.t.now()
	m.mu.RLock()
	snapshot := make(map[string]*Session, len(m.sessions))
	for id, s := range m.sessions {
		snapshot[id] = s
	}
	m.mu.RUnlock()

	var stale []string
	for id, s := range snapshot {
		if s.idleSince(now) > idle {
			stale = append(stale, id)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range stale {
		delete(m.sessions, id)
	}
	return len(stale)
}
