package mailer

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"

	"focototal-be/internal/logging"
)

//go:generate mockgen -destination=mocks/mock_mailer.go -package=mocks focototal-be/internal/mailer Sender,Mailer

// Sender delivers one rendered message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type resendSender struct {
	client *resend.Client
	from   string
}

// NewResendSender sends through the Resend HTTP API. from is the full
// "Name <address>" header value.
func NewResendSender(apiKey, from string) Sender {
	return &resendSender{client: resend.NewClient(apiKey), from: from}
}

func (s *resendSender) Send(ctx context.Context, msg Message) error {
	_, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("resend: %w", err)
	}
	return nil
}

type logSender struct {
	logger logging.Logger
}

// NewLogSender only records that a message would have been sent. Used when
// no mail API key is configured.
func NewLogSender(logger logging.Logger) Sender {
	return &logSender{logger: logger}
}

func (s *logSender) Send(ctx context.Context, msg Message) error {
	s.logger.Info(ctx, "mail delivery disabled, dropping message", "kind", msg.Kind, "to", msg.To)
	return nil
}
