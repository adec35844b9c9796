package mailer

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/resend/resend-go/v2"
)

// Sender delivers transactional mail.
type Sender interface {
	SendWelcome(ctx context.Context, email, name string) error
}

const (
	welcomeSubject = "Welcome to LMS"
	welcomeBody    = "Hello %s,\n\nThank you for registering with our LMS platform!\n\nBest Regards,\nLMS Team"
)

// ResendSender sends mail through the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

// NewResendSender creates a sender using the given API key and from address.
func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

// SendWelcome delivers the post-registration welcome mail.
func (s *ResendSender) SendWelcome(ctx context.Context, email, name string) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{email},
		Subject: welcomeSubject,
		Text:    fmt.Sprintf(welcomeBody, name),
	}

	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "failed to send welcome email").
			WithMetadata(map[string]any{"to": email})
	}

	return nil
}

// LogSender is a Sender for development environments without mail
// credentials; it only logs the delivery.
type LogSender struct {
	Logger interface {
		Info(format string, args ...any)
	}
}

// SendWelcome logs instead of sending.
func (s LogSender) SendWelcome(ctx context.Context, email, name string) error {
	if s.Logger != nil {
		s.Logger.Info("welcome email suppressed, no mail credentials", "to", email, "name", name)
	}
	return nil
}
