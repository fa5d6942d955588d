package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ishanbagra18/artfolio-server/config"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Email is one outgoing message. Bcc recipients are hidden from each other,
// which is how broadcasts are sent.
type Email struct {
	To      []string
	Bcc     []string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}

type Mailer interface {
	Send(ctx context.Context, e Email) error
}

var ErrNoRecipients = errors.New("email has no recipients")

// SMTPMailer sends through an authenticated SMTP relay (Gmail by default).
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, e Email) error {
	if len(e.To) == 0 && len(e.Bcc) == 0 {
		return ErrNoRecipients
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	if len(e.To) > 0 {
		msg.SetHeader("To", e.To...)
	} else {
		msg.SetHeader("To", m.from)
	}
	if len(e.Bcc) > 0 {
		msg.SetHeader("Bcc", e.Bcc...)
	}
	if e.ReplyTo != "" {
		msg.SetHeader("Reply-To", e.ReplyTo)
	}
	msg.SetHeader("Subject", e.Subject)
	if e.Text != "" {
		msg.SetBody("text/plain", e.Text)
		if e.HTML != "" {
			msg.AddAlternative("text/html", e.HTML)
		}
	} else {
		msg.SetBody("text/html", e.HTML)
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("smtp send %q: %w", e.Subject, err)
	}
	return nil
}

// LogMailer stands in when SMTP is not configured.
type LogMailer struct {
	Log *zap.Logger
}

func (m LogMailer) Send(_ context.Context, e Email) error {
	m.Log.Info("[LogMailer] email not sent, smtp disabled",
		zap.Strings("to", e.To),
		zap.Int("bcc", len(e.Bcc)),
		zap.String("subject", e.Subject))
	return nil
}

// NewMailer picks the SMTP mailer when credentials are present.
func NewMailer(cfg config.SMTPConfig, log *zap.Logger) Mailer {
	if cfg.User == "" || cfg.Password == "" {
		return LogMailer{Log: log}
	}
	return NewSMTPMailer(cfg)
}
