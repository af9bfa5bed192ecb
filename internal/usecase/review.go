package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/binaryatrocity/beer-api/internal/core/domain"
	"github.com/binaryatrocity/beer-api/internal/core/port"
	"github.com/binaryatrocity/beer-api/internal/repository"
)

// ErrReviewNotFound indicates no review exists at the requested identifier.
var ErrReviewNotFound = errors.New("review not found")

// ReviewService handles review submission and reads. Sub-scores are range
// checked against the declared category bounds, and an author may file at
// most one review per beer inside the trailing window.
type ReviewService struct {
	reviews  port.ReviewRepository
	resolver *ResolverService
	events   port.EventPublisher
	logger   *zap.Logger
	window   time.Duration
	now      func() time.Time
}

// NewReviewService constructs a ReviewService instance.
func NewReviewService(reviews port.ReviewRepository, resolver *ResolverService, events port.EventPublisher, logger *zap.Logger, window time.Duration) *ReviewService {
	return &ReviewService{
		reviews:  reviews,
		resolver: resolver,
		events:   events,
		logger:   logger,
		window:   window,
		now:      time.Now,
	}
}

// ValidateScores checks every sub-score category present in the payload
// against its declared inclusive range. Absent categories are legal. The
// collected violations are returned as one field-keyed validation error.
func ValidateScores(payload map[string]any) *domain.ValidationError {
	verr := domain.NewValidationError()

	for _, r := range domain.ScoreRanges {
		raw, present := payload[r.Name]
		if !present || raw == nil {
			continue
		}
		value, ok := asInt(raw)
		if !ok {
			verr.Add(r.Name, fmt.Sprintf("%s must be an integer", r.Name))
			continue
		}
		if value < r.Min || value > r.Max {
			verr.Add(r.Name, fmt.Sprintf("%s must be between %d and %d", r.Name, r.Min, r.Max))
		}
	}

	return verr
}

// ApplyScores copies the present sub-score categories onto the review.
// Callers must have run ValidateScores first; apply never runs on a payload
// that failed validation, so a rejected request leaves the target untouched.
func ApplyScores(review *domain.Review, payload map[string]any) {
	for _, r := range domain.ScoreRanges {
		raw, present := payload[r.Name]
		if !present || raw == nil {
			continue
		}
		if value, ok := asInt(raw); ok {
			review.SetScore(r.Name, value)
		}
	}
}

// Create validates the payload, resolves the beer reference, enforces the
// one-review-per-beer window, and persists the review.
//
// The window check is a read before the insert; two concurrent submissions
// from the same author can both pass it and both commit. Known limitation,
// accepted for this write rate.
func (s *ReviewService) Create(ctx context.Context, authorID int64, payload map[string]any) (*domain.Review, error) {
	verr := ValidateScores(payload)

	reference, present := referenceField(payload, "beer_id")
	if !present {
		verr.Add("beer_id", "beer_id is required")
	}
	if !verr.Empty() {
		return nil, verr
	}

	beerID, ok, err := s.resolver.Resolve(ctx, KindBeer, reference)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.Invalid("beer_id", "beer reference does not resolve")
	}

	now := s.now().UTC()
	recent, err := s.reviews.CountRecent(ctx, authorID, beerID, now.Add(-s.window))
	if err != nil {
		return nil, fmt.Errorf("count recent reviews: %w", err)
	}
	if recent > 0 {
		return nil, domain.Invalid("rate_limit", "beer already reviewed this week")
	}

	review := domain.Review{
		AuthorID:  authorID,
		BeerID:    beerID,
		CreatedOn: now,
	}
	ApplyScores(&review, payload)

	id, err := s.reviews.Create(ctx, review)
	if err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	review.ID = id

	s.publishCreated(ctx, review)

	return &review, nil
}

// Get returns the review at the identifier.
func (s *ReviewService) Get(ctx context.Context, id int64) (*domain.Review, error) {
	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("get review: %w", err)
	}
	return review, nil
}

// List returns every review.
func (s *ReviewService) List(ctx context.Context) ([]domain.Review, error) {
	reviews, err := s.reviews.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

// ListByBeer returns the reviews filed against one beer.
func (s *ReviewService) ListByBeer(ctx context.Context, beerID int64) ([]domain.Review, error) {
	reviews, err := s.reviews.ListByBeer(ctx, beerID)
	if err != nil {
		return nil, fmt.Errorf("list reviews for beer: %w", err)
	}
	return reviews, nil
}

func (s *ReviewService) publishCreated(ctx context.Context, review domain.Review) {
	if s.events == nil {
		return
	}
	event := domain.ReviewCreatedEvent{
		ReviewID:  review.ID,
		AuthorID:  review.AuthorID,
		BeerID:    review.BeerID,
		Overall:   review.Overall(),
		CreatedAt: review.CreatedOn,
	}
	if err := s.events.PublishReviewCreated(ctx, event); err != nil && s.logger != nil {
		s.logger.Warn("publish review created event failed",
			zap.Int64("review_id", review.ID),
			zap.Error(err),
		)
	}
}
