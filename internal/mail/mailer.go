// Package mail sends plain-text notification email. Three transports exist:
// a MailerSend API client, a bare SMTP client, and a logging fallback used
// when nothing is configured. Callers must not depend on whether a message
// was delivered or merely logged.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/eventhub/eventhub-go/internal/config"
)

// Mailer delivers a single plain-text message.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// FromConfig selects a transport: MailerSend when an API key is set, SMTP
// when a host is set, otherwise the logging fallback.
func FromConfig(cfg config.Config) Mailer {
	if cfg.MailerSendAPIKey != "" {
		slog.Info("mail transport: mailersend", "from", cfg.MailerSendFrom)
		return NewMailerSendMailer(cfg.MailerSendAPIKey, cfg.MailerSendFromName, cfg.MailerSendFrom)
	}
	if cfg.SMTPHost != "" {
		slog.Info("mail transport: smtp", "host", cfg.SMTPHost, "port", cfg.SMTPPort)
		return NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
	}
	slog.Info("mail transport not configured, messages will be logged")
	return LogMailer{}
}

// LogMailer writes the message to the structured log and reports success.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, to, subject, body string) error {
	slog.Info("dev mail (not sent)", "to", to, "subject", subject, "body", body)
	return nil
}

// SMTPMailer delivers mail over SMTP with PLAIN auth. One attempt per
// message; failures are returned to the caller.
type SMTPMailer struct {
	addr string
	auth smtp.Auth
	from string
}

// NewSMTPMailer creates an SMTPMailer for the given host and credentials.
// Auth is skipped when no username is configured.
func NewSMTPMailer(host, port, user, pass, from string) *SMTPMailer {
	var auth smtp.Auth
	if user != "" {
		auth = smtp.PlainAuth("", user, pass, host)
	}
	return &SMTPMailer{
		addr: host + ":" + port,
		auth: auth,
		from: from,
	}
}

func (m *SMTPMailer) Send(_ context.Context, to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", m.from, to, subject, body)

	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg)); err != nil {
		slog.Error("email send failed", "to", to, "subject", subject, "error", err)
		return fmt.Errorf("sending mail to %s: %w", to, err)
	}

	slog.Info("email sent", "to", to, "subject", subject)
	return nil
}
