package service

import (
	"context"

	"github.com/rs/zerolog"
)

// Mail is a rendered message headed for a party's contact address.
type Mail struct {
	To      string
	Subject string
	Body    string
}

// MailDelivery abstracts the outbound email channel. Delivery is best-effort:
// callers log failures and never roll back the transition that triggered the
// message.
type MailDelivery interface {
	Deliver(ctx context.Context, mail Mail) error
}

// LogMailDelivery is a basic provider that logs outbound mail.
type LogMailDelivery struct {
	logger zerolog.Logger
}

// NewLogMailDelivery constructs a logging provider.
func NewLogMailDelivery(logger zerolog.Logger) *LogMailDelivery {
	return &LogMailDelivery{logger: logger.With().Str("component", "mail_delivery").Logger()}
}

// Deliver logs the mail and returns nil to indicate success.
func (l *LogMailDelivery) Deliver(ctx context.Context, mail Mail) error {
	l.logger.Info().Str("to", mail.To).Str("subject", mail.Subject).Msg("mail delivered to outbox")
	return nil
}
