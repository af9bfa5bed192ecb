package port

import (
	"context"

	"github.com/binaryatrocity/beer-api/internal/core/domain"
)

// FavoriteRepository maintains the user/beer favorites relation. The
// relation is a single join table with a composite primary key, so set
// semantics (no duplicates) hold structurally rather than by post-hoc
// filtering.
type FavoriteRepository interface {
	// Add links the beer to the user's set. Returns false when the pair
	// was already present (no-op).
	Add(ctx context.Context, userID, beerID int64) (bool, error)
	// Remove unlinks the beer. Returns false when the pair was absent.
	Remove(ctx context.Context, userID, beerID int64) (bool, error)
	// Clear empties the user's set. Returns false when it was already empty.
	Clear(ctx context.Context, userID int64) (bool, error)
	Count(ctx context.Context, userID int64) (int, error)
	List(ctx context.Context, userID int64) ([]domain.Beer, error)
}
