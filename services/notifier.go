package services

import (
	"context"
	"time"

	"github.com/ishanbagra18/artfolio-server/config"
	"go.uber.org/zap"
)

// PhoneSender delivers a short text to a phone number.
type PhoneSender interface {
	Name() string
	Send(ctx context.Context, phone, text string) error
}

// Notifier fans side-effect notifications out to email and phone channels.
// Every method is best effort: failures are logged, never returned to the
// request that triggered them.
type Notifier struct {
	Mailer     Mailer
	Phones     []PhoneSender
	AdminEmail string
	AdminPhone string
	Log        *zap.Logger
	Timeout    time.Duration
}

// NewNotifier wires the configured channels. WhatsApp and SMS are only
// enabled when their credentials are set.
func NewNotifier(cfg *config.Config, log *zap.Logger) *Notifier {
	n := &Notifier{
		Mailer:     NewMailer(cfg.SMTP, log),
		AdminEmail: cfg.Admin.Email,
		AdminPhone: cfg.WhatsApp.AdminPhone,
		Log:        log,
		Timeout:    15 * time.Second,
	}
	if n.AdminEmail == "" {
		n.AdminEmail = cfg.SMTP.From
	}
	if cfg.WhatsApp.Token != "" && cfg.WhatsApp.PhoneNumberID != "" {
		n.Phones = append(n.Phones, NewWhatsApp(cfg.WhatsApp))
	}
	if cfg.Twilio.AccountSID != "" && cfg.Twilio.AuthToken != "" && cfg.Twilio.From != "" {
		n.Phones = append(n.Phones, NewTwilioSMS(cfg.Twilio))
	}
	return n
}

func (n *Notifier) context(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := n.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return context.WithTimeout(context.WithoutCancel(ctx), timeout)
}

// Email sends e and reports whether it went out.
func (n *Notifier) Email(ctx context.Context, e Email) bool {
	ctx, cancel := n.context(ctx)
	defer cancel()
	if err := n.Mailer.Send(ctx, e); err != nil {
		n.Log.Warn("[Notifier] email failed", zap.String("subject", e.Subject), zap.Error(err))
		return false
	}
	return true
}

// Phone sends text on every configured phone channel.
func (n *Notifier) Phone(ctx context.Context, phone, text string) {
	if phone == "" {
		return
	}
	ctx, cancel := n.context(ctx)
	defer cancel()
	for _, p := range n.Phones {
		if err := p.Send(ctx, phone, text); err != nil {
			n.Log.Warn("[Notifier] phone message failed", zap.String("channel", p.Name()), zap.Error(err))
		}
	}
}

// Admin emails the site admin and pings the admin phone.
func (n *Notifier) Admin(ctx context.Context, e Email, text string) {
	if n.AdminEmail != "" {
		e.To = []string{n.AdminEmail}
		n.Email(ctx, e)
	}
	n.Phone(ctx, n.AdminPhone, text)
}

// Broadcast sends one message addressed to every recipient by Bcc.
func (n *Notifier) Broadcast(ctx context.Context, recipients []string, subject, html string) bool {
	if len(recipients) == 0 {
		n.Log.Info("[Notifier] broadcast skipped, no recipients", zap.String("subject", subject))
		return false
	}
	return n.Email(ctx, Email{Bcc: recipients, Subject: subject, HTML: html})
}
