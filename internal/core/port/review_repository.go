package port

import (
	"context"
	"time"

	"github.com/binaryatrocity/beer-api/internal/core/domain"
)

// ReviewRepository persists beer reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review domain.Review) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	List(ctx context.Context) ([]domain.Review, error)
	ListByBeer(ctx context.Context, beerID int64) ([]domain.Review, error)
	// CountRecent reports how many reviews the author filed against the
	// beer since the given instant. Used by the weekly duplicate check.
	CountRecent(ctx context.Context, authorID, beerID int64, since time.Time) (int, error)
}
