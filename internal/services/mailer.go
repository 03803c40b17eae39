package services

import (
	"context"
	"fmt"

	"elearning-app/internal/config"
	"elearning-app/internal/repository"

	"gopkg.in/gomail.v2"
)

// Mailer sends through the SMTP transport configured by the admin settings
// panel; env config is only the bootstrap fallback before settings exist.
type Mailer struct {
	settings repository.SettingsRepository
	cfg      *config.Config
}

func NewMailer(settings repository.SettingsRepository, cfg *config.Config) *Mailer {
	return &Mailer{settings: settings, cfg: cfg}
}

func (m *Mailer) Send(ctx context.Context, to, subject, body string) error {
	host, port, user, pass, from := m.transport(ctx)
	if host == "" {
		return fmt.Errorf("no SMTP transport configured")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	dialer := gomail.NewDialer(host, port, user, pass)
	return dialer.DialAndSend(msg)
}

func (m *Mailer) transport(ctx context.Context) (host string, port int, user, pass, from string) {
	if s, err := m.settings.GetSMTP(ctx); err == nil {
		return s.Host, s.Port, s.Username, s.Password, s.FromAddress
	}
	return m.cfg.SMTPHost, m.cfg.SMTPPort, m.cfg.SMTPUser, m.cfg.SMTPPass, m.cfg.SMTPFrom
}
