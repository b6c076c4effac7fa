package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"chatter-trainer/internal/config"
	"chatter-trainer/internal/logger"
)

const smtpTimeout = 30 * time.Second

// Mailer submits mail over SMTP with mandatory STARTTLS and password auth.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	fromName string
	to       string
	log      *logger.Logger
}

func NewMailer(cfg *config.Config, log *logger.Logger) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		from:     cfg.EmailFrom,
		fromName: cfg.EmailFromName,
		to:       cfg.EmailTo,
		log:      log,
	}
}

func (m *Mailer) Name() string { return "email" }

// Recipient is the address every message goes to.
func (m *Mailer) Recipient() string { return m.to }

func (m *Mailer) Send(ctx context.Context, subject, body string) error {
	ctx, span := otel.Tracer("notify/mail").Start(ctx, "Send")
	defer span.End()

	msg, err := m.message(subject, body)
	if err != nil {
		span.RecordError(err)
		return err
	}

	client, err := mail.NewClient(m.host,
		mail.WithPort(m.port),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.username),
		mail.WithPassword(m.password),
		mail.WithTimeout(smtpTimeout),
	)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("create smtp client: %w", err)
	}

	m.log.Logger(ctx).Info("[Mail] Sending", zap.String("from", m.from), zap.String("to", m.to), zap.String("subject", subject))
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		span.RecordError(err)
		m.log.Logger(ctx).Error("[Mail] Send failed", zap.Error(err))
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

func (m *Mailer) message(subject, body string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.FromFormat(m.fromName, m.from); err != nil {
		return nil, fmt.Errorf("set from: %w", err)
	}
	if err := msg.To(m.to); err != nil {
		return nil, fmt.Errorf("set to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)
	return msg, nil
}
