package email

import "context"

// Email is a single outgoing message.
type Email struct {
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// TemplateData is passed to message templates.
type TemplateData map[string]interface{}

// Sender delivers messages.
type Sender interface {
	Send(ctx context.Context, msg *Email) error
}

// NoopSender drops every message. Used when mail is disabled.
type NoopSender struct{}

func (NoopSender) Send(context.Context, *Email) error { return nil }
