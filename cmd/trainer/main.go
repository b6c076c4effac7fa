package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"chatter-trainer/internal/analytics"
	"chatter-trainer/internal/config"
	"chatter-trainer/internal/evaluation"
	"chatter-trainer/internal/llm"
	"chatter-trainer/internal/logger"
	"chatter-trainer/internal/notify"
	"chatter-trainer/internal/persona"
	"chatter-trainer/internal/scheduler"
	"chatter-trainer/internal/sheets"
	"chatter-trainer/internal/storage"
	"chatter-trainer/internal/trainer"
	"chatter-trainer/internal/web"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	lg := logger.New(logger.Options{Production: cfg.Production})
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	zl := lg.Logger(ctx)

	llmClient := llm.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
	instruction := persona.LoadInstruction(cfg.PersonaPromptPath, lg)

	mailer := notify.NewMailer(cfg, lg)
	notifiers := []notify.Notifier{mailer}
	if cfg.TelegramEnabled() {
		tg, err := notify.NewTelegram(cfg.TelegramBotToken, cfg.TelegramAdminChatID)
		if err != nil {
			zl.Warn("[Main] Telegram notifications disabled", zap.Error(err))
		} else {
			notifiers = append(notifiers, tg)
		}
	}

	var archive storage.Recorder
	if cfg.ArchiveFilePath != "" {
		fr, err := storage.NewFileRecorder(cfg.ArchiveFilePath)
		if err != nil {
			zl.Warn("[Main] Session archive disabled", zap.Error(err))
		} else {
			archive = fr
		}
	}

	tr := trainer.New(trainer.Options{
		Persona:   persona.NewGenerator(llmClient, instruction, lg),
		Evaluator: evaluation.New(llmClient, cfg.StrictScores, lg),
		Sheet:     sheets.New(cfg, lg),
		Archive:   archive,
		Notifiers: notifiers,
		TurnLimit: cfg.TurnLimit,
		Opening:   persona.OpeningLine,
		Logger:    lg,
	})
	manager := trainer.NewManager(tr)

	sched := scheduler.New(lg)
	err := sched.Add(scheduler.Job{
		Name: "sweep-idle-sessions",
		Spec: cfg.SweepSchedule,
		Run: func(ctx context.Context) error {
			if n := manager.Sweep(cfg.SessionIdleTTL); n > 0 {
				lg.Logger(ctx).Info("[Main] Swept idle sessions", zap.Int("removed", n))
			}
			return nil
		},
	})
	if err != nil {
		zl.Fatal("[Main] Failed to schedule sweep", zap.Error(err))
	}
	if archive != nil {
		digest := analytics.NewDigest(archive, mailer, lg)
		if err := sched.Add(scheduler.Job{Name: "daily-digest", Spec: cfg.DigestSchedule, Run: digest.Run}); err != nil {
			zl.Fatal("[Main] Failed to schedule digest", zap.Error(err))
		}
	}
	sched.Start()
	defer sched.Stop()

	srv := web.New(cfg.HTTPAddr, manager, lg)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Stop(shutdownCtx); err != nil {
			zl.Error("[Main] Shutdown failed", zap.Error(err))
		}
	}()

	zl.Info("[Main] Chatter trainer starting",
		zap.String("model", cfg.OpenAIModel),
		zap.Int("turn_limit", cfg.TurnLimit),
		zap.Bool("production", cfg.Production),
	)
	if err := srv.Start(); err != nil {
		zl.Fatal("[Main] Server stopped", zap.Error(err))
	}
}
