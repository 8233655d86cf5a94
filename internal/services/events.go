package services

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Domain event types.
const (
	EventUserSignedUp   = "user.signed_up"
	EventProfileCreated = "profile.created"
	EventProfileDeleted = "profile.deleted"
	EventReportSaved    = "report.saved"
	EventMealLogged     = "meal.logged"
	EventBadgeAwarded   = "badge.awarded"
)

// EventPublisher receives domain events after the write that produced them
// has been committed.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload interface{}) error
}

// Clock returns the current time.
type Clock func() time.Time

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, string, interface{}) error { return nil }

func publisherOrNop(p EventPublisher) EventPublisher {
	if p == nil {
		return nopPublisher{}
	}
	return p
}

// publish is best-effort: a broker outage must never fail the write.
func publish(ctx context.Context, p EventPublisher, logger *zap.Logger, eventType string, payload interface{}) {
	if err := p.Publish(ctx, eventType, payload); err != nil {
		logger.Warn("failed to publish event", zap.String("event", eventType), zap.Error(err))
	}
}
