package usecase

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/binaryatrocity/beer-api/internal/core/domain"
	"github.com/binaryatrocity/beer-api/internal/core/port"
	"github.com/binaryatrocity/beer-api/internal/repository"
)

func newTestBeerService(t *testing.T, beers *mockBeerRepository, glasses *mockGlassRepository, events *mockEventPublisher) *BeerService {
	t.Helper()
	resolver := NewResolverService(beers, glasses)
	var publisher port.EventPublisher
	if events != nil {
		publisher = events
	}
	return NewBeerService(beers, resolver, publisher, zaptest.NewLogger(t), 24*time.Hour)
}

func TestCreateBeer(t *testing.T) {
	beers := newMockBeerRepository()
	events := &mockEventPublisher{}
	svc := newTestBeerService(t, beers, newMockGlassRepository(), events)

	beer, err := svc.Create(context.Background(), 3, map[string]any{
		"name":  "Pale",
		"style": "IPA",
		"abv":   5.5,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if beer.ID == 0 || beer.Name != "Pale" || beer.ABV != 5.5 {
		t.Fatalf("unexpected beer: %+v", beer)
	}
	if beers.createAuthor != 3 || beers.createWindow != 24*time.Hour {
		t.Fatalf("window claim wired wrong: author=%d window=%v", beers.createAuthor, beers.createWindow)
	}
	if len(events.beerEvents) != 1 || events.beerEvents[0].AuthorID != 3 {
		t.Fatalf("expected one beer created event, got %+v", events.beerEvents)
	}
}

func TestCreateBeerMissingName(t *testing.T) {
	beers := newMockBeerRepository()
	svc := newTestBeerService(t, beers, newMockGlassRepository(), nil)

	_, err := svc.Create(context.Background(), 3, map[string]any{"style": "IPA"})
	verr, ok := asValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, found := verr.Fields["name"]; !found {
		t.Fatalf("expected name violation, got %v", verr.Fields)
	}
	if beers.createCalls != 0 {
		t.Fatal("invalid payload must be rejected before any write")
	}
}

func TestCreateBeerNegativeABV(t *testing.T) {
	svc := newTestBeerService(t, newMockBeerRepository(), newMockGlassRepository(), nil)

	_, err := svc.Create(context.Background(), 3, map[string]any{
		"name": "Pale",
		"abv":  -1.0,
	})
	verr, ok := asValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, found := verr.Fields["abv"]; !found {
		t.Fatalf("expected abv violation, got %v", verr.Fields)
	}
}

func TestCreateBeerRateLimited(t *testing.T) {
	beers := newMockBeerRepository()
	beers.createErr = repository.ErrRateLimited
	svc := newTestBeerService(t, beers, newMockGlassRepository(), nil)

	_, err := svc.Create(context.Background(), 3, map[string]any{"name": "Pale"})
	verr, ok := asValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, found := verr.Fields["rate_limit"]; !found {
		t.Fatalf("expected rate_limit violation, got %v", verr.Fields)
	}
}

func TestCreateBeerDuplicateName(t *testing.T) {
	beers := newMockBeerRepository()
	beers.createErr = repository.ErrDuplicate
	svc := newTestBeerService(t, beers, newMockGlassRepository(), nil)

	_, err := svc.Create(context.Background(), 3, map[string]any{"name": "Pale"})
	verr, ok := asValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, found := verr.Fields["name"]; !found {
		t.Fatalf("expected name violation, got %v", verr.Fields)
	}
}

func TestCreateBeerResolvesGlassReference(t *testing.T) {
	glasses := newMockGlassRepository(domain.Glass{ID: 2, Name: "Pint"})
	beers := newMockBeerRepository()
	svc := newTestBeerService(t, beers, glasses, nil)

	beer, err := svc.Create(context.Background(), 3, map[string]any{
		"name":  "Pale",
		"glass": "/glasses/2",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if beer.GlassID == nil || *beer.GlassID != 2 {
		t.Fatalf("expected glass 2, got %v", beer.GlassID)
	}
}

func TestCreateBeerUnresolvedGlassReference(t *testing.T) {
	beers := newMockBeerRepository()
	svc := newTestBeerService(t, beers, newMockGlassRepository(), nil)

	_, err := svc.Create(context.Background(), 3, map[string]any{
		"name":  "Pale",
		"glass": "/glasses/99",
	})
	verr, ok := asValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, found := verr.Fields["glass"]; !found {
		t.Fatalf("expected glass violation, got %v", verr.Fields)
	}
	if beers.createCalls != 0 {
		t.Fatal("unresolved reference must be rejected before any write")
	}
}
