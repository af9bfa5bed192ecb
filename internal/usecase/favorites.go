package usecase

import (
	"context"
	"fmt"

	"github.com/binaryatrocity/beer-api/internal/core/domain"
	"github.com/binaryatrocity/beer-api/internal/core/port"
)

// Favorite set actions accepted on update.
const (
	FavoriteActionAdd    = "add"
	FavoriteActionRemove = "remove"
)

// FavoriteService maintains each user's set of favorite beers. The relation
// is a single join table, so membership is deduplicated structurally and
// both directions of the link read from the same rows.
type FavoriteService struct {
	favorites port.FavoriteRepository
	resolver  *ResolverService
}

// NewFavoriteService constructs a FavoriteService instance.
func NewFavoriteService(favorites port.FavoriteRepository, resolver *ResolverService) *FavoriteService {
	return &FavoriteService{favorites: favorites, resolver: resolver}
}

// ReplaceAll seeds the user's favorites from the supplied references. The
// operation is create-once: a user with a non-empty set must clear it
// before recreating. Every reference is resolved before the first link is
// written, so a bad reference rejects the whole request.
func (s *FavoriteService) ReplaceAll(ctx context.Context, userID int64, references []string) ([]domain.Beer, error) {
	count, err := s.favorites.Count(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count favorites: %w", err)
	}
	if count > 0 {
		return nil, domain.Invalid("favorites", "favorites already set, delete before recreating")
	}

	beerIDs := make([]int64, 0, len(references))
	for _, reference := range references {
		beerID, ok, err := s.resolver.Resolve(ctx, KindBeer, reference)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.Invalid("beer", "beer reference does not resolve")
		}
		beerIDs = append(beerIDs, beerID)
	}

	for _, beerID := range beerIDs {
		if _, err := s.favorites.Add(ctx, userID, beerID); err != nil {
			return nil, fmt.Errorf("add favorite: %w", err)
		}
	}

	return s.List(ctx, userID)
}

// Update applies one add or remove action. A no-op outcome (adding a beer
// already in the set, removing one that is not) is surfaced as a validation
// error so repeated identical calls are visible to the caller.
func (s *FavoriteService) Update(ctx context.Context, userID int64, action, reference string) ([]domain.Beer, error) {
	if action != FavoriteActionAdd && action != FavoriteActionRemove {
		return nil, domain.Invalid("action", "action must be add or remove")
	}

	beerID, ok, err := s.resolver.Resolve(ctx, KindBeer, reference)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.Invalid("beer", "beer reference does not resolve")
	}

	var changed bool
	if action == FavoriteActionAdd {
		changed, err = s.favorites.Add(ctx, userID, beerID)
	} else {
		changed, err = s.favorites.Remove(ctx, userID, beerID)
	}
	if err != nil {
		return nil, fmt.Errorf("%s favorite: %w", action, err)
	}
	if !changed {
		if action == FavoriteActionAdd {
			return nil, domain.Invalid("beer", "beer is already a favorite")
		}
		return nil, domain.Invalid("beer", "beer is not a favorite")
	}

	return s.List(ctx, userID)
}

// Clear empties the user's set. Clearing an already empty set succeeds.
func (s *FavoriteService) Clear(ctx context.Context, userID int64) error {
	if _, err := s.favorites.Clear(ctx, userID); err != nil {
		return fmt.Errorf("clear favorites: %w", err)
	}
	return nil
}

// List returns the user's favorite beers.
func (s *FavoriteService) List(ctx context.Context, userID int64) ([]domain.Beer, error) {
	beers, err := s.favorites.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return beers, nil
}
