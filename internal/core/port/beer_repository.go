package port

import (
	"context"
	"time"

	"github.com/binaryatrocity/beer-api/internal/core/domain"
)

// BeerRepository persists beers and enforces the beer-creation window.
type BeerRepository interface {
	// Create inserts the beer and, in the same transaction, claims the
	// author's beer-creation slot by conditionally advancing
	// users.last_beer_added. The conditional update turns the
	// check-then-write race between concurrent requests into a plain
	// write conflict at the storage layer.
	//
	// Returns repository.ErrRateLimited when the author created a beer
	// within the trailing window (the timestamp is left untouched) and
	// repository.ErrDuplicate when the name is taken.
	Create(ctx context.Context, beer domain.Beer, authorID int64, window time.Duration) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Beer, error)
	List(ctx context.Context) ([]domain.Beer, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// GlassRepository persists glassware styles.
type GlassRepository interface {
	Create(ctx context.Context, glass domain.Glass) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Glass, error)
	List(ctx context.Context) ([]domain.Glass, error)
	Exists(ctx context.Context, id int64) (bool, error)
	// Delete removes the glass. The beers referencing it keep existing
	// with the link cleared (weak reference).
	Delete(ctx context.Context, id int64) error
}
