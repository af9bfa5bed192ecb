package usecase

import (
	"context"
	"testing"

	"github.com/binaryatrocity/beer-api/internal/core/domain"
)

func newTestFavoriteService(favorites *mockFavoriteRepository, beers *mockBeerRepository) *FavoriteService {
	resolver := NewResolverService(beers, newMockGlassRepository())
	return NewFavoriteService(favorites, resolver)
}

func TestReplaceAllSeedsEmptySet(t *testing.T) {
	favorites := newMockFavoriteRepository()
	beers := newMockBeerRepository(domain.Beer{ID: 1}, domain.Beer{ID: 2})
	svc := newTestFavoriteService(favorites, beers)

	result, err := svc.ReplaceAll(context.Background(), 5, []string{"1", "/beers/2"})
	if err != nil {
		t.Fatalf("ReplaceAll returned error: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 favorites, got %d", len(result))
	}
}

func TestReplaceAllRejectsNonEmptySet(t *testing.T) {
	favorites := newMockFavoriteRepository()
	beers := newMockBeerRepository(domain.Beer{ID: 1})
	svc := newTestFavoriteService(favorites, beers)

	if _, err := svc.ReplaceAll(context.Background(), 5, []string{"1"}); err != nil {
		t.Fatalf("first ReplaceAll returned error: %v", err)
	}
	_, err := svc.ReplaceAll(context.Background(), 5, []string{"1"})
	verr, ok := asValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, found := verr.Fields["favorites"]; !found {
		t.Fatalf("expected favorites violation, got %v", verr.Fields)
	}
}

func TestReplaceAllUnresolvedReferenceWritesNothing(t *testing.T) {
	favorites := newMockFavoriteRepository()
	beers := newMockBeerRepository(domain.Beer{ID: 1})
	svc := newTestFavoriteService(favorites, beers)

	_, err := svc.ReplaceAll(context.Background(), 5, []string{"1", "99"})
	if _, ok := asValidation(err); !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if count, _ := favorites.Count(context.Background(), 5); count != 0 {
		t.Fatalf("expected empty set after rejected request, got %d links", count)
	}
}

func TestUpdateAddAndRemove(t *testing.T) {
	favorites := newMockFavoriteRepository()
	beers := newMockBeerRepository(domain.Beer{ID: 1})
	svc := newTestFavoriteService(favorites, beers)

	if _, err := svc.Update(context.Background(), 5, FavoriteActionAdd, "1"); err != nil {
		t.Fatalf("add returned error: %v", err)
	}
	if count, _ := favorites.Count(context.Background(), 5); count != 1 {
		t.Fatalf("expected 1 link, got %d", count)
	}
	if _, err := svc.Update(context.Background(), 5, FavoriteActionRemove, "1"); err != nil {
		t.Fatalf("remove returned error: %v", err)
	}
	if count, _ := favorites.Count(context.Background(), 5); count != 0 {
		t.Fatalf("expected empty set, got %d links", count)
	}
}

func TestUpdateAddExistingIsConflict(t *testing.T) {
	favorites := newMockFavoriteRepository()
	beers := newMockBeerRepository(domain.Beer{ID: 1})
	svc := newTestFavoriteService(favorites, beers)

	if _, err := svc.Update(context.Background(), 5, FavoriteActionAdd, "1"); err != nil {
		t.Fatalf("add returned error: %v", err)
	}
	before, _ := favorites.Count(context.Background(), 5)

	_, err := svc.Update(context.Background(), 5, FavoriteActionAdd, "1")
	if _, ok := asValidation(err); !ok {
		t.Fatalf("expected validation error for repeated add, got %v", err)
	}

	after, _ := favorites.Count(context.Background(), 5)
	if before != after {
		t.Fatalf("repeated add changed the set: before=%d after=%d", before, after)
	}
}

func TestUpdateRemoveAbsentIsConflict(t *testing.T) {
	beers := newMockBeerRepository(domain.Beer{ID: 1})
	svc := newTestFavoriteService(newMockFavoriteRepository(), beers)

	_, err := svc.Update(context.Background(), 5, FavoriteActionRemove, "1")
	if _, ok := asValidation(err); !ok {
		t.Fatalf("expected validation error for absent remove, got %v", err)
	}
}

func TestUpdateRejectsUnknownAction(t *testing.T) {
	beers := newMockBeerRepository(domain.Beer{ID: 1})
	svc := newTestFavoriteService(newMockFavoriteRepository(), beers)

	_, err := svc.Update(context.Background(), 5, "toggle", "1")
	verr, ok := asValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, found := verr.Fields["action"]; !found {
		t.Fatalf("expected action violation, got %v", verr.Fields)
	}
}

func TestClearIsIdempotent(t *testing.T) {
	favorites := newMockFavoriteRepository()
	beers := newMockBeerRepository(domain.Beer{ID: 1})
	svc := newTestFavoriteService(favorites, beers)

	if _, err := svc.Update(context.Background(), 5, FavoriteActionAdd, "1"); err != nil {
		t.Fatalf("add returned error: %v", err)
	}
	if err := svc.Clear(context.Background(), 5); err != nil {
		t.Fatalf("first clear returned error: %v", err)
	}
	if err := svc.Clear(context.Background(), 5); err != nil {
		t.Fatalf("clearing an empty set must succeed: %v", err)
	}
}
