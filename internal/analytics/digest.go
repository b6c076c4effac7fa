package analytics

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"chatter-trainer/internal/logger"
	"chatter-trainer/internal/storage"
)

type Sender interface {
	Send(ctx context.Context, subject, body string) error
}

// Digest emails the previous day's session summary.
type Digest struct {
	recorder storage.Recorder
	sender   Sender
	log      *logger.Logger
	now      func() time.Time
}

func NewDigest(recorder storage.Recorder, sender Sender, log *logger.Logger) *Digest {
	return &Digest{recorder: recorder, sender: sender, log: log, now: time.Now}
}

// Run summarizes yesterday (UTC). Days without sessions send nothing.
func (d *Digest) Run(ctx context.Context) error {
	records, err := d.recorder.LoadSessions()
	if err != nil {
		return fmt.Errorf("load archive: %w", err)
	}
	day := d.now().UTC().AddDate(0, 0, -1)
	stats := AnalyzeDay(records, day)
	if stats.TotalSessions == 0 {
		d.log.Logger(ctx).Info("[Digest] No sessions to report", zap.String("date", stats.Date))
		return nil
	}
	body := stats.Summary()
	if raw, err := stats.ToJSON(); err != nil {
		d.log.Logger(ctx).Warn("[Digest] Stats not attached", zap.Error(err))
	} else {
		body += "\nRaw stats:\n" + raw + "\n"
	}
	subject := "Daily Training Digest " + stats.Date
	if err := d.sender.Send(ctx, subject, body); err != nil {
		return fmt.Errorf("send digest: %w", err)
	}
	d.log.Logger(ctx).Info("[Digest] Sent", zap.String("date", stats.Date), zap.Int("sessions", stats.TotalSessions))
	return nil
}
