// Package mailer renders and delivers the transactional emails: welcome,
// temporary credentials and password recovery.
package mailer

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"focototal-be/internal/entities"
)

// Mailer is what services use to notify users.
type Mailer interface {
	SendWelcome(ctx context.Context, user *entities.User) error
	SendTemporaryCredentials(ctx context.Context, user *entities.User, password string) error
	SendPasswordReset(ctx context.Context, user *entities.User, token string) error
}

type Options struct {
	AppName     string
	FrontendURL string
	ResetTTL    time.Duration
}

type mailer struct {
	sender Sender
	opts   Options
}

func New(sender Sender, opts Options) Mailer {
	if opts.AppName == "" {
		opts.AppName = "FocoTotal"
	}
	opts.FrontendURL = strings.TrimRight(opts.FrontendURL, "/")
	return &mailer{sender: sender, opts: opts}
}

func (m *mailer) SendWelcome(ctx context.Context, user *entities.User) error {
	return m.send(ctx, "welcome", user.Email, "Welcome to "+m.opts.AppName+"!", templateData{
		Name: user.Name,
	})
}

func (m *mailer) SendTemporaryCredentials(ctx context.Context, user *entities.User, password string) error {
	return m.send(ctx, "credentials", user.Email, "Your access credentials - "+m.opts.AppName, templateData{
		Name:     user.Name,
		Email:    user.Email,
		Password: password,
		Link:     m.opts.FrontendURL + "/login",
	})
}

func (m *mailer) SendPasswordReset(ctx context.Context, user *entities.User, token string) error {
	return m.send(ctx, "password_reset", user.Email, "Password recovery - "+m.opts.AppName, templateData{
		Name:     user.Name,
		Link:     ResetLink(m.opts.FrontendURL, token),
		Validity: humanDuration(m.opts.ResetTTL),
	})
}

func (m *mailer) send(ctx context.Context, kind, to, subject string, data templateData) error {
	data.AppName = m.opts.AppName
	html, err := render(kind, data)
	if err != nil {
		return err
	}
	if err := m.sender.Send(ctx, Message{To: to, Subject: subject, HTML: html, Kind: kind}); err != nil {
		return fmt.Errorf("send %s email: %w", kind, err)
	}
	return nil
}

// ResetLink points the frontend's reset page at token.
func ResetLink(frontendURL, token string) string {
	return strings.TrimRight(frontendURL, "/") + "/reset-password?token=" + url.QueryEscape(token)
}

func humanDuration(d time.Duration) string {
	switch {
	case d <= 0:
		return "a limited time"
	case d == time.Hour:
		return "1 hour"
	case d%time.Hour == 0:
		return fmt.Sprintf("%d hours", int(d/time.Hour))
	case d%time.Minute == 0:
		return fmt.Sprintf("%d minutes", int(d/time.Minute))
	default:
		return d.String()
	}
}
