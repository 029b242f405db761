// Package email sends transactional mail over SMTP.
package email

import (
	"context"
	"fmt"

	"edulure_backend/platform/config"
	"edulure_backend/platform/logger"

	"github.com/wneessen/go-mail"
)

// Sender delivers transactional email. When email is disabled it logs and
// drops messages instead of failing callers.
type Sender struct {
	cfg config.EmailConfig
	log *logger.Logger
}

// New creates a new email sender
func New(cfg config.EmailConfig, log *logger.Logger) *Sender {
	return &Sender{cfg: cfg, log: log}
}

// Message is one outbound email
type Message struct {
	To       string
	ToName   string
	Subject  string
	TextBody string
}

// Send delivers one message over SMTP.
func (s *Sender) Send(ctx context.Context, msg Message) error {
	if !s.cfg.GetEmailEnabled() {
		s.log.Info("email disabled, dropping message", "to", msg.To, "subject", msg.Subject)
		return nil
	}

	m := mail.NewMsg()
	if err := m.FromFormat(s.cfg.GetEmailFromName(), s.cfg.GetEmailFromAddress()); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := m.AddToFormat(msg.ToName, msg.To); err != nil {
		return fmt.Errorf("invalid recipient: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.TextBody)

	client, err := mail.NewClient(s.cfg.GetSMTPHost(),
		mail.WithPort(s.cfg.GetSMTPPort()),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.GetSMTPUsername()),
		mail.WithPassword(s.cfg.GetSMTPPassword()),
		mail.WithTLSPolicy(mail.TLSOpportunistic))
	if err != nil {
		return fmt.Errorf("failed to build smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
