package email

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"
)

var ErrNoRecipients = errors.New("email has no recipients")

// dialer is the part of gomail.Dialer the sender needs.
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPSender struct {
	config    SMTPConfig
	dialer    dialer
	templates *TemplateManager
}

func NewSMTPSender(cfg SMTPConfig) (*SMTPSender, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid email config: %w", err)
	}
	return &SMTPSender{
		config:    cfg,
		dialer:    gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		templates: NewTemplateManager(),
	}, nil
}

func (s *SMTPSender) Send(ctx context.Context, msg *Email) error {
	if len(msg.To) == 0 {
		return ErrNoRecipients
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.dialer.DialAndSend(s.buildMessage(msg))
}

// SendTemplate renders templateName with data into the HTML body.
func (s *SMTPSender) SendTemplate(ctx context.Context, to []string, subject, templateName string, data TemplateData) error {
	body, err := s.templates.Render(templateName, data)
	if err != nil {
		return err
	}
	return s.Send(ctx, &Email{To: to, Subject: subject, HTMLBody: body})
}

func (s *SMTPSender) buildMessage(msg *Email) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromEmail, s.config.FromName)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)

	switch {
	case msg.Body != "" && msg.HTMLBody != "":
		m.SetBody("text/plain", msg.Body)
		m.AddAlternative("text/html", msg.HTMLBody)
	case msg.HTMLBody != "":
		m.SetBody("text/html", msg.HTMLBody)
	default:
		m.SetBody("text/plain", msg.Body)
	}
	return m
}
