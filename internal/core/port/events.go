package port

import (
	"context"

	"github.com/binaryatrocity/beer-api/internal/core/domain"
)

// EventPublisher delivers domain events to downstream consumers. Publishing
// is best-effort; callers log failures and never roll back the triggering
// write.
type EventPublisher interface {
	PublishUserRegistered(ctx context.Context, event domain.UserRegisteredEvent) error
	PublishBeerCreated(ctx context.Context, event domain.BeerCreatedEvent) error
	PublishReviewCreated(ctx context.Context, event domain.ReviewCreatedEvent) error
}
