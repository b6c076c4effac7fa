package trainer

import (
	"testing"
	"time"
)

func TestManagerCreateGetDelete(t *testing.T) {
	m := NewManager(New(Options{Persona: &fakePersona{}, Evaluator: &fakeEvaluator{}}))

	s := m.Create()
	if s.ID == "" {
		t.Fatalf("session id not assigned")
	}
	got, ok := m.Get(s.ID)
	if !ok || got != s {
		t.Fatalf("created session not found")
	}
	if other := m.Create(); other.ID == s.ID {
		t.Fatalf("session ids must be unique")
	}
	if m.Len() != 2 {
		t.Fatalf("want 2 sessions, got %d", m.Len())
	}

	m.Delete(s.ID)
	if _, ok := m.Get(s.ID); ok {
		t.Fatalf("deleted session still present")
	}
}

func TestManagerSweep(t *testing.T) {
	tr := New(Options{Persona: &fakePersona{}, Evaluator: &fakeEvaluator{}})
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tr.now = func() time.Time { return now }
	m := NewManager(tr)

	old := m.Create()
	now = now.Add(90 * time.Minute)
	fresh := m.Create()
	now = now.Add(45 * time.Minute)

	if n := m.Sweep(2 * time.Hour); n != 1 {
		t.Fatalf("want 1 swept, got %d", n)
	}
	if _, ok := m.Get(old.ID); ok {
		t.Fatalf("idle session should be swept")
	}
	if _, ok := m.Get(fresh.ID); !ok {
		t.Fatalf("active session should be kept")
	}
}

func TestNewSessionWithoutOpening(t *testing.T) {
	tr := New(Options{Persona: &fakePersona{}, Evaluator: &fakeEvaluator{}, TurnLimit: 3})
	s := tr.NewSession("x")
	v := s.View()
	if len(v.Turns) != 0 || v.TurnLimit != 3 || v.State != "collecting" {
		t.Fatalf("unexpected view: %+v", v)
	}
}
