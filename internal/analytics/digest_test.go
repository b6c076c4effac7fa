package analytics

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"chatter-trainer/internal/logger"
	"chatter-trainer/internal/storage"
)

type memRecorder struct {
	records []storage.Record
	err     error
}

func (m *memRecorder) AppendSession(rec storage.Record) error {
	m.records = append(m.records, rec)
	return nil
}
func (m *memRecorder) LoadSessions() ([]storage.Record, error) { return m.records, m.err }

type fakeSender struct {
	subjects []string
	bodies   []string
	err      error
}

func (f *fakeSender) Send(ctx context.Context, subject, body string) error {
	f.subjects = append(f.subjects, subject)
	f.bodies = append(f.bodies, body)
	return f.err
}

func TestDigestRun(t *testing.T) {
	now := time.Date(2024, 1, 16, 21, 0, 0, 0, time.UTC)
	rec := &memRecorder{records: []storage.Record{
		{Timestamp: now.AddDate(0, 0, -1), TraineeName: "Alex", Score: 80},
		{Timestamp: now, TraineeName: "Sam", Score: 20},
	}}
	s := &fakeSender{}
	d := NewDigest(rec, s, logger.Nop())
	d.now = func() time.Time { return now }

	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(s.subjects) != 1 || s.subjects[0] != "Daily Training Digest 2024-01-15" {
		t.Fatalf("unexpected subjects: %v", s.subjects)
	}
	if !strings.Contains(s.bodies[0], "Alex") || strings.Contains(s.bodies[0], "Sam") {
		t.Fatalf("unexpected body: %s", s.bodies[0])
	}
	if !strings.Contains(s.bodies[0], `"total_sessions": 1`) || !strings.Contains(s.bodies[0], `"best_score": 80`) {
		t.Fatalf("raw stats missing from body: %s", s.bodies[0])
	}
}

func TestDigestSkipsEmptyDay(t *testing.T) {
	s := &fakeSender{}
	d := NewDigest(&memRecorder{}, s, logger.Nop())
	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(s.subjects) != 0 {
		t.Fatalf("nothing should be sent on an empty day")
	}
}

func TestDigestErrors(t *testing.T) {
	d := NewDigest(&memRecorder{err: errors.New("disk gone")}, &fakeSender{}, logger.Nop())
	if err := d.Run(context.Background()); err == nil {
		t.Fatalf("expected load error")
	}

	now := time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)
	rec := &memRecorder{records: []storage.Record{{Timestamp: now.Add(-time.Hour), Score: 50}}}
	d = NewDigest(rec, &fakeSender{err: errors.New("smtp down")}, logger.Nop())
	d.now = func() time.Time { return now }
	if err := d.Run(context.Background()); err == nil {
		t.Fatalf("expected send error")
	}
}
