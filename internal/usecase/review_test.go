package usecase

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/binaryatrocity/beer-api/internal/core/domain"
	"github.com/binaryatrocity/beer-api/internal/core/port"
)

func fullScorePayload(beerID any) map[string]any {
	return map[string]any{
		"beer_id":      beerID,
		"aroma":        4,
		"appearance":   3,
		"taste":        8,
		"palate":       2,
		"bottle_style": 5,
	}
}

func newTestReviewService(t *testing.T, reviews *mockReviewRepository, beers *mockBeerRepository, events *mockEventPublisher) *ReviewService {
	t.Helper()
	resolver := NewResolverService(beers, newMockGlassRepository())
	var publisher port.EventPublisher
	if events != nil {
		publisher = events
	}
	return NewReviewService(reviews, resolver, publisher, zaptest.NewLogger(t), 7*24*time.Hour)
}

func TestValidateScoresAcceptsBounds(t *testing.T) {
	verr := ValidateScores(map[string]any{
		"aroma":        0,
		"appearance":   5,
		"taste":        10,
		"palate":       0,
		"bottle_style": 5,
	})
	if !verr.Empty() {
		t.Fatalf("boundary values must validate, got %v", verr.Fields)
	}
}

func TestValidateScoresRejectsOutOfRange(t *testing.T) {
	cases := map[string]any{
		"aroma":        6,
		"appearance":   -1,
		"taste":        11,
		"palate":       100,
		"bottle_style": -5,
	}
	for category, value := range cases {
		verr := ValidateScores(map[string]any{category: value})
		if verr.Empty() {
			t.Fatalf("%s=%v must be rejected", category, value)
		}
		if _, found := verr.Fields[category]; !found {
			t.Fatalf("expected %s violation, got %v", category, verr.Fields)
		}
	}
}

func TestValidateScoresRejectsNonInteger(t *testing.T) {
	verr := ValidateScores(map[string]any{"taste": "great"})
	if _, found := verr.Fields["taste"]; !found {
		t.Fatalf("expected taste violation, got %v", verr.Fields)
	}

	verr = ValidateScores(map[string]any{"taste": 7.5})
	if _, found := verr.Fields["taste"]; !found {
		t.Fatalf("fractional score must be rejected, got %v", verr.Fields)
	}
}

func TestValidateScoresIgnoresAbsentCategories(t *testing.T) {
	if verr := ValidateScores(map[string]any{"taste": 7}); !verr.Empty() {
		t.Fatalf("partial map must validate, got %v", verr.Fields)
	}
}

func TestApplyScoresLeavesAbsentUntouched(t *testing.T) {
	review := domain.Review{Aroma: 2, Taste: 3}
	ApplyScores(&review, map[string]any{"taste": 9})
	if review.Taste != 9 || review.Aroma != 2 {
		t.Fatalf("expected taste=9 aroma=2, got %+v", review)
	}
}

func TestCreateReviewComputesOverall(t *testing.T) {
	beers := newMockBeerRepository(domain.Beer{ID: 7, Name: "Pale"})
	reviews := newMockReviewRepository()
	events := &mockEventPublisher{}
	svc := newTestReviewService(t, reviews, beers, events)

	review, err := svc.Create(context.Background(), 1, fullScorePayload(7))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if got := review.Overall(); got != 4+3+8+2+5 {
		t.Fatalf("expected overall %d, got %d", 4+3+8+2+5, got)
	}
	if len(events.reviewEvents) != 1 || events.reviewEvents[0].Overall != review.Overall() {
		t.Fatalf("expected one review event carrying the overall, got %+v", events.reviewEvents)
	}
}

func TestCreateReviewResolvesLinkReference(t *testing.T) {
	beers := newMockBeerRepository(domain.Beer{ID: 7, Name: "Pale"})
	svc := newTestReviewService(t, newMockReviewRepository(), beers, nil)

	review, err := svc.Create(context.Background(), 1, fullScorePayload("http://host/api/beers/7"))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if review.BeerID != 7 {
		t.Fatalf("expected beer 7, got %d", review.BeerID)
	}
}

func TestCreateReviewUnresolvedBeer(t *testing.T) {
	reviews := newMockReviewRepository()
	svc := newTestReviewService(t, reviews, newMockBeerRepository(), nil)

	_, err := svc.Create(context.Background(), 1, fullScorePayload(99))
	verr, ok := asValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, found := verr.Fields["beer_id"]; !found {
		t.Fatalf("expected beer_id violation, got %v", verr.Fields)
	}
	if reviews.createCalls != 0 {
		t.Fatal("unresolved reference must be rejected before any write")
	}
}

func TestCreateReviewOutOfRangeScoreSkipsAllWrites(t *testing.T) {
	beers := newMockBeerRepository(domain.Beer{ID: 7, Name: "Pale"})
	reviews := newMockReviewRepository()
	svc := newTestReviewService(t, reviews, beers, nil)

	payload := fullScorePayload(7)
	payload["taste"] = 11
	_, err := svc.Create(context.Background(), 1, payload)
	if _, ok := asValidation(err); !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if reviews.createCalls != 0 {
		t.Fatal("no mutation may happen on a failed validation")
	}
}

func TestCreateReviewDuplicateWithinWindow(t *testing.T) {
	beers := newMockBeerRepository(domain.Beer{ID: 7, Name: "Pale"})
	reviews := newMockReviewRepository()
	reviews.recentCount = 1
	svc := newTestReviewService(t, reviews, beers, nil)

	_, err := svc.Create(context.Background(), 1, fullScorePayload(7))
	verr, ok := asValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, found := verr.Fields["rate_limit"]; !found {
		t.Fatalf("expected rate_limit violation, got %v", verr.Fields)
	}
	if reviews.createCalls != 0 {
		t.Fatal("duplicate within window must not be written")
	}
}
