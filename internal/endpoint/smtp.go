package endpoint

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/psyborgxoxo/SouravPortfolio/internal/config"
	"github.com/psyborgxoxo/SouravPortfolio/internal/contact"
)

var ErrSMTPNotConfigured = errors.New("SMTP credentials not configured")

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPDelivery mails each submission to the site owner.
type SMTPDelivery struct {
	cfg      config.SMTPConfig
	logger   zerolog.Logger
	sendMail sendMailFunc
}

func NewSMTPDelivery(cfg config.SMTPConfig, logger zerolog.Logger) (*SMTPDelivery, error) {
	if cfg.User == "" || cfg.Pass == "" {
		return nil, ErrSMTPNotConfigured
	}
	return &SMTPDelivery{
		cfg:      cfg,
		logger:   logger.With().Str("component", "smtp_delivery").Logger(),
		sendMail: smtp.SendMail,
	}, nil
}

func (d *SMTPDelivery) Deliver(ctx context.Context, s Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	auth := smtp.PlainAuth("", d.cfg.User, d.cfg.Pass, d.cfg.Host)
	addr := d.cfg.Host + ":" + d.cfg.Port
	if err := d.sendMail(addr, auth, d.cfg.User, []string{d.cfg.ToEmail}, composeMessage(d.cfg, s)); err != nil {
		return fmt.Errorf("send mail for %s: %w", s.ID, err)
	}

	d.logger.Info().Str("submission_id", s.ID).Str("from", s.Fields.Email).Msg("email sent")
	return nil
}

func composeMessage(cfg config.SMTPConfig, s Submission) []byte {
	subject := s.Fields.Subject
	if strings.TrimSpace(subject) == "" {
		subject = contact.DefaultSubject
	}

	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Submission: %s
Name: %s
Email: %s
Subject: %s
Message:
%s

---
Sent from your portfolio contact form
`, s.ID, s.Fields.Name, s.Fields.Email, subject, s.Fields.Message)

	return []byte("To: " + cfg.ToEmail + "\r\n" +
		"Subject: Portfolio Contact: " + headerSafe(subject) + "\r\n" +
		"From: " + cfg.User + "\r\n" +
		"Reply-To: " + headerSafe(s.Fields.Email) + "\r\n" +
		"\r\n" +
		body + "\r\n")
}

// headerSafe strips line breaks so user input cannot inject extra headers.
func headerSafe(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}
