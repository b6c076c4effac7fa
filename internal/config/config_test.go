package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("GOOGLE_SHEET_ID", "sheet-1")
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_JSON", `{"type":"service_account"}`)
	t.Setenv("SMTP_USERNAME", "user")
	t.Setenv("SMTP_PASSWORD", "pass")
	t.Setenv("EMAIL_FROM", "bot@example.com")
	t.Setenv("EMAIL_TO", "jordan@example.com")
}

func TestParseDefaults(t *testing.T) {
	setRequired(t)
	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.OpenAIModel != "gpt-4" {
		t.Errorf("model default: %q", cfg.OpenAIModel)
	}
	if cfg.TurnLimit != 10 {
		t.Errorf("turn limit default: %d", cfg.TurnLimit)
	}
	if cfg.SMTPHost != "in-v3.mailjet.com" || cfg.SMTPPort != 587 {
		t.Errorf("smtp defaults: %s:%d", cfg.SMTPHost, cfg.SMTPPort)
	}
	if cfg.GoogleWorksheet != "Sheet1" {
		t.Errorf("worksheet default: %q", cfg.GoogleWorksheet)
	}
	if !cfg.StrictScores {
		t.Errorf("strict scores should default to true")
	}
	if cfg.SessionIdleTTL != 2*time.Hour {
		t.Errorf("idle ttl default: %v", cfg.SessionIdleTTL)
	}
	if cfg.TelegramEnabled() {
		t.Errorf("telegram should be disabled without token")
	}
}

func TestParseMissingSecret(t *testing.T) {
	setRequired(t)
	os.Unsetenv("SMTP_PASSWORD")
	_, err := Parse()
	if err == nil {
		t.Fatalf("expected error for missing SMTP_PASSWORD")
	}
	if !strings.Contains(err.Error(), "SMTP_PASSWORD") {
		t.Fatalf("error should name the variable: %v", err)
	}
}

func TestParseRejectsZeroTurnLimit(t *testing.T) {
	setRequired(t)
	t.Setenv("TURN_LIMIT", "0")
	if _, err := Parse(); err == nil {
		t.Fatalf("expected error for zero turn limit")
	}
}

func TestTelegramEnabled(t *testing.T) {
	setRequired(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_ADMIN_CHAT_ID", "42")
	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !cfg.TelegramEnabled() || cfg.TelegramAdminChatID != 42 {
		t.Fatalf("telegram config not picked up: %+v", cfg)
	}
}
