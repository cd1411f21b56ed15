package mail

import (
	"gopkg.in/gomail.v2"

	"clinic-opd-server/internal/config"
)

// Mailer sends plain-text mail. Handlers depend on this interface so tests
// can swap in a fake.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer delivers mail over SMTP.
type SMTPMailer struct {
	cfg config.MailerConfig
}

var _ Mailer = (*SMTPMailer)(nil)

// NewSMTPMailer creates a new SMTPMailer.
func NewSMTPMailer(cfg config.MailerConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// Send delivers a single plain-text message.
func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	return d.DialAndSend(msg)
}
