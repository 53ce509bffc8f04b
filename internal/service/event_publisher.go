package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// LifecycleEvent describes a state transition observed by the engine. Events
// are a fire-and-forget side channel: publication failures are logged and
// never fail the transition that produced them.
type LifecycleEvent struct {
	Kind          string    `json:"kind"`
	BusinessID    uint      `json:"business_id,omitempty"`
	StudentID     uint      `json:"student_id,omitempty"`
	ApplicationID uint      `json:"application_id,omitempty"`
	Status        string    `json:"status,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

const (
	// EventApplicationSubmitted fires when a new application enters pending.
	EventApplicationSubmitted = "application.submitted"
	// EventApplicationAccepted fires on the pending to accepted edge.
	EventApplicationAccepted = "application.accepted"
	// EventApplicationRejected fires on the pending to rejected edge.
	EventApplicationRejected = "application.rejected"
	// EventApplicationCompleted fires on the accepted to completed edge.
	EventApplicationCompleted = "application.completed"
	// EventApplicationRated fires when a rating closes out the engagement.
	EventApplicationRated = "application.rated"
	// EventBusinessApproved fires when an admin admits a business.
	EventBusinessApproved = "business.approved"
	// EventBusinessRejected fires when an admin denies a business.
	EventBusinessRejected = "business.rejected"
)

// EventPublisher emits lifecycle events to interested consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event LifecycleEvent)
}

type natsEventPublisher struct {
	conn          *nats.Conn
	subjectPrefix string
	logger        zerolog.Logger
	tracer        trace.Tracer
}

// NewNATSEventPublisher builds a NATS-backed publisher. A nil connection is
// tolerated and turns publication into a no-op.
func NewNATSEventPublisher(conn *nats.Conn, subjectPrefix string, logger zerolog.Logger) EventPublisher {
	if subjectPrefix == "" {
		subjectPrefix = "bridge"
	}
	return &natsEventPublisher{
		conn:          conn,
		subjectPrefix: subjectPrefix,
		logger:        logger.With().Str("component", "event_publisher").Logger(),
		tracer:        otel.Tracer("event_publisher"),
	}
}

func (p *natsEventPublisher) Publish(ctx context.Context, event LifecycleEvent) {
	if p.conn == nil {
		return
	}

	_, span := p.tracer.Start(ctx, "lifecycle.publish", trace.WithAttributes(
		attribute.String("event.kind", event.Kind),
	))
	defer span.End()

	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Warn().Err(err).Str("kind", event.Kind).Msg("failed to marshal lifecycle event")
		return
	}

	subject := p.subjectPrefix + "." + event.Kind
	if err := p.conn.Publish(subject, payload); err != nil {
		p.logger.Warn().Err(err).Str("subject", subject).Msg("failed to publish lifecycle event")
	}
}
