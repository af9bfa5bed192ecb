package kafka

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/binaryatrocity/beer-api/internal/core/domain"
)

// StubPublisher logs events instead of sending them to Kafka. Used when no
// brokers are configured, typically in development.
type StubPublisher struct {
	logger *zap.Logger
}

// NewStubPublisher constructs a logging event publisher.
func NewStubPublisher(logger *zap.Logger) *StubPublisher {
	return &StubPublisher{logger: logger}
}

func (p *StubPublisher) logEvent(eventType string, userID int64, at time.Time, payload any) {
	if at.IsZero() {
		at = time.Now().UTC()
	}

	p.logger.Info("stub event published",
		zap.String("event_type", eventType),
		zap.Int64("user_id", userID),
		zap.Time("timestamp", at.UTC()),
		zap.Any("payload", payload),
	)
}

// PublishUserRegistered logs beer.user.registered events.
func (p *StubPublisher) PublishUserRegistered(_ context.Context, event domain.UserRegisteredEvent) error {
	p.logEvent(eventTypeUserRegistered, event.UserID, event.RegisteredAt, event)
	return nil
}

// PublishBeerCreated logs beer.beer.created events.
func (p *StubPublisher) PublishBeerCreated(_ context.Context, event domain.BeerCreatedEvent) error {
	p.logEvent(eventTypeBeerCreated, event.AuthorID, event.CreatedAt, event)
	return nil
}

// PublishReviewCreated logs beer.review.created events.
func (p *StubPublisher) PublishReviewCreated(_ context.Context, event domain.ReviewCreatedEvent) error {
	p.logEvent(eventTypeReviewCreated, event.AuthorID, event.CreatedAt, event)
	return nil
}
