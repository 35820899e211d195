package mail

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mailersend/mailersend-go"
)

// MailerSendMailer delivers mail through the MailerSend API.
type MailerSendMailer struct {
	client   *mailersend.Mailersend
	fromName string
	from     string
}

// NewMailerSendMailer creates a MailerSendMailer with the given API key and
// sender identity.
func NewMailerSendMailer(apiKey, fromName, from string) *MailerSendMailer {
	return &MailerSendMailer{
		client:   mailersend.NewMailersend(apiKey),
		fromName: fromName,
		from:     from,
	}
}

func (m *MailerSendMailer) Send(ctx context.Context, to, subject, body string) error {
	message := m.client.Email.NewMessage()
	message.SetFrom(mailersend.From{Name: m.fromName, Email: m.from})
	message.SetRecipients([]mailersend.Recipient{{Email: to}})
	message.SetSubject(subject)
	message.SetText(body)

	res, err := m.client.Email.Send(ctx, message)
	if err != nil {
		slog.Error("email send failed", "to", to, "subject", subject, "error", err)
		return fmt.Errorf("sending mail to %s: %w", to, err)
	}

	slog.Info("email sent", "to", to, "subject", subject, "message_id", res.Header.Get("X-Message-Id"))
	return nil
}
