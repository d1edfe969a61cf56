package util

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/sunthewhat/easy-cert-portal/internal/notifier"
	"github.com/sunthewhat/easy-cert-portal/type/shared"
	"gopkg.in/gomail.v2"
)

// SMTPSender delivers notifier messages through one gomail dialer.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

var _ notifier.Sender = (*SMTPSender)(nil)

func NewSMTPSender(settings shared.MailSettings) *SMTPSender {
	from := settings.From
	if from == "" {
		from = settings.User
	}
	return &SMTPSender{
		dialer: gomail.NewDialer(settings.Host, settings.Port, settings.User, settings.Pass),
		from:   from,
	}
}

func (s *SMTPSender) Send(ctx context.Context, msg notifier.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	mailer := BuildMessage(s.from, msg)
	if err := s.dialer.DialAndSend(mailer); err != nil {
		slog.Error("Error Sending Mail", "error", err, "recipient", msg.To)
		return fmt.Errorf("failed to send mail to %s: %w", msg.To, err)
	}

	slog.Info("Email sent successfully", "recipient", msg.To)
	return nil
}

// BuildMessage converts a notifier message to a gomail message. Attachments
// are streamed from memory.
func BuildMessage(from string, msg notifier.Message) *gomail.Message {
	mailer := gomail.NewMessage()
	mailer.SetHeader("From", from)
	mailer.SetHeader("To", msg.To)
	mailer.SetHeader("Subject", msg.Subject)
	mailer.SetBody("text/html", msg.HTMLBody)

	for _, att := range msg.Attachments {
		data := att.Data
		mailer.Attach(att.Name,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			}),
			gomail.SetHeader(map[string][]string{
				"Content-Type": {att.ContentType},
			}),
		)
	}
	return mailer
}
