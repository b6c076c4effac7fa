package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v6"
)

// Config is read once at startup and passed by pointer to every component.
// Nothing mutates it after Parse returns.
type Config struct {
	Production bool   `env:"PRODUCTION"`
	HTTPAddr   string `env:"HTTP_ADDR" envDefault:":8080"`

	// LLM settings
	OpenAIAPIKey      string `env:"OPENAI_API_KEY,required"`
	OpenAIBaseURL     string `env:"OPENAI_BASE_URL"`
	OpenAIModel       string `env:"OPENAI_MODEL" envDefault:"gpt-4"`
	PersonaPromptPath string `env:"PERSONA_PROMPT_PATH"`

	// Session
	TurnLimit      int           `env:"TURN_LIMIT" envDefault:"10"`
	StrictScores   bool          `env:"EVAL_STRICT_SCORES" envDefault:"true"`
	SessionIdleTTL time.Duration `env:"SESSION_IDLE_TTL" envDefault:"2h"`

	// Google Sheets
	GoogleSheetID            string `env:"GOOGLE_SHEET_ID,required"`
	GoogleWorksheet          string `env:"GOOGLE_WORKSHEET" envDefault:"Sheet1"`
	GoogleServiceAccountJSON string `env:"GOOGLE_SERVICE_ACCOUNT_JSON,required"`

	// Email
	SMTPHost      string `env:"SMTP_HOST" envDefault:"in-v3.mailjet.com"`
	SMTPPort      int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername  string `env:"SMTP_USERNAME,required"`
	SMTPPassword  string `env:"SMTP_PASSWORD,required"`
	EmailFrom     string `env:"EMAIL_FROM,required"`
	EmailFromName string `env:"EMAIL_FROM_NAME" envDefault:"Jordan"`
	EmailTo       string `env:"EMAIL_TO,required"`

	// Telegram admin notifications (optional)
	TelegramBotToken    string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramAdminChatID int64  `env:"TELEGRAM_ADMIN_CHAT_ID"`

	// Storage
	ArchiveFilePath string `env:"ARCHIVE_FILE_PATH" envDefault:"data/sessions.jsonl"`

	// Scheduled jobs
	SweepSchedule  string `env:"SWEEP_SCHEDULE" envDefault:"@every 10m"`
	DigestSchedule string `env:"DIGEST_SCHEDULE" envDefault:"0 21 * * *"`
}

// Parse reads the configuration from the process environment.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if cfg.TurnLimit < 1 {
		return nil, fmt.Errorf("TURN_LIMIT must be positive, got %d", cfg.TurnLimit)
	}
	return cfg, nil
}

func New() *Config {
	cfg, err := Parse()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}

// TelegramEnabled reports whether admin notifications over Telegram are configured.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramBotToken != "" && c.TelegramAdminChatID != 0
}
