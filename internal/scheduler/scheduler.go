package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"chatter-trainer/internal/logger"
)

// Job is a named task run on a cron schedule.
type Job struct {
	Name string
	Spec string
	Run  func(ctx context.Context) error
}

// Scheduler runs background jobs such as idle-session eviction and the daily digest.
type Scheduler struct {
	cron   *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc
	log    *logger.Logger
}

func New(log *logger.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		ctx:    ctx,
		cancel: cancel,
		log:    log,
	}
}

// Add registers a job. An empty spec disables it.
func (s *Scheduler) Add(job Job) error {
	if job.Spec == "" {
		s.log.Logger(s.ctx).Info("[Scheduler] Job disabled", zap.String("job", job.Name))
		return nil
	}
	_, err := s.cron.AddFunc(job.Spec, func() {
		if err := job.Run(s.ctx); err != nil {
			s.log.Logger(s.ctx).Error("[Scheduler] Job failed", zap.String("job", job.Name), zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("schedule %s: %w", job.Name, err)
	}
	s.log.Logger(s.ctx).Info("[Scheduler] Job scheduled", zap.String("job", job.Name), zap.String("spec", job.Spec))
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Logger(s.ctx).Info("[Scheduler] Started", zap.Int("jobs", len(s.cron.Entries())))
}

// Stop waits for running jobs to finish and cancels their context.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.log.Logger(context.Background()).Info("[Scheduler] Stopped")
}
