package mailer

import (
	"context"

	"buddy-backend/pkg/config"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Message is a single HTML email to one recipient.
type Message struct {
	To      string
	ToName  string
	Subject string
	HTML    string
}

// Sender delivers a message through an email transport. A nil error means
// the transport accepted the message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// From identifies the sending mailbox.
type From struct {
	Name    string
	Address string
}

// New picks a transport from MAIL_PROVIDER.
func New(cfg *config.Config, log *zap.Logger) (Sender, error) {
	from := From{Name: cfg.MailFromName, Address: cfg.MailFromAddress}

	switch cfg.MailProvider {
	case "sendgrid":
		if cfg.SendgridAPIKey == "" {
			return nil, errors.New("SENDGRID_API_KEY is required for the sendgrid mail provider")
		}
		return NewSendgridSender(cfg.SendgridAPIKey, from), nil
	case "smtp":
		if cfg.SMTPHost == "" {
			return nil, errors.New("SMTP_HOST is required for the smtp mail provider")
		}
		return NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, from), nil
	case "log", "":
		return NewLogSender(log, from), nil
	default:
		return nil, errors.Errorf("unknown mail provider %q", cfg.MailProvider)
	}
}
