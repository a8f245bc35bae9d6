package utils

import (
	"fmt"
	"net/smtp"

	"go.uber.org/zap"
)

// Mailer delivers confirmation codes out-of-band
type Mailer interface {
	SendConfirmationCode(to, username, code string) error
}

type smtpMailer struct {
	config EmailConfig
	log    *zap.Logger
}

func NewMailer(config EmailConfig, log *zap.Logger) Mailer {
	return &smtpMailer{
		config: config,
		log:    log.With(zap.String("component", "mailer")),
	}
}

func (m *smtpMailer) SendConfirmationCode(to, username, code string) error {
	// No SMTP host configured: log the code instead (development mode)
	if m.config.Host == "" {
		m.log.Info("Confirmation code generated",
			zap.String("email", to),
			zap.String("username", username),
			zap.String("code", code),
		)
		return nil
	}

	addr := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Confirmation code\r\n\r\nYour code: %s\r\n",
		m.config.From, to, code,
	)

	var auth smtp.Auth
	if m.config.User != "" {
		auth = smtp.PlainAuth("", m.config.User, m.config.Password, m.config.Host)
	}

	if err := smtp.SendMail(addr, auth, m.config.From, []string{to}, []byte(msg)); err != nil {
		m.log.Error("Failed to send confirmation email",
			zap.Error(err),
			zap.String("email", to),
		)
		return fmt.Errorf("send confirmation email to %s: %w", to, err)
	}

	return nil
}
