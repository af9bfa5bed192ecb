package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/binaryatrocity/beer-api/internal/core/domain"
	"github.com/binaryatrocity/beer-api/internal/core/port"
	"github.com/binaryatrocity/beer-api/internal/repository"
)

// ErrBeerNotFound indicates no beer exists at the requested identifier.
var ErrBeerNotFound = errors.New("beer not found")

var beerSchema = Schema{
	RequiredString("name"),
	OptionalString("brewer"),
	OptionalString("style"),
	OptionalString("brew_location"),
	OptionalInt("ibu"),
	OptionalInt("calories"),
	{Name: "abv", Kind: FieldFloat, HasMin: true, Min: 0},
}

// BeerService handles beer catalogue writes and reads. Creation is capped
// at one beer per author per trailing window; the repository claims the
// author's slot inside the insert transaction, so concurrent attempts
// degrade to a storage-level write conflict rather than a double create.
type BeerService struct {
	beers    port.BeerRepository
	resolver *ResolverService
	events   port.EventPublisher
	logger   *zap.Logger
	window   time.Duration
	now      func() time.Time
}

// NewBeerService constructs a BeerService instance.
func NewBeerService(beers port.BeerRepository, resolver *ResolverService, events port.EventPublisher, logger *zap.Logger, window time.Duration) *BeerService {
	return &BeerService{
		beers:    beers,
		resolver: resolver,
		events:   events,
		logger:   logger,
		window:   window,
		now:      time.Now,
	}
}

// Create validates the payload, resolves the optional glass reference, and
// persists the beer under the author's creation window.
func (s *BeerService) Create(ctx context.Context, authorID int64, payload map[string]any) (*domain.Beer, error) {
	verr := beerSchema.Validate(payload)
	if !verr.Empty() {
		return nil, verr
	}

	beer := domain.Beer{
		Name:         stringField(payload, "name"),
		Brewer:       stringField(payload, "brewer"),
		Style:        stringField(payload, "style"),
		BrewLocation: stringField(payload, "brew_location"),
		IBU:          intField(payload, "ibu"),
		Calories:     intField(payload, "calories"),
		ABV:          floatField(payload, "abv"),
	}

	if reference, present := referenceField(payload, "glass"); present {
		glassID, ok, err := s.resolver.Resolve(ctx, KindGlass, reference)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.Invalid("glass", "glass reference does not resolve")
		}
		beer.GlassID = &glassID
	}

	id, err := s.beers.Create(ctx, beer, authorID, s.window)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRateLimited):
			return nil, domain.Invalid("rate_limit", "only one beer may be added per day")
		case errors.Is(err, repository.ErrDuplicate):
			return nil, domain.Invalid("name", "a beer with that name already exists")
		}
		return nil, fmt.Errorf("create beer: %w", err)
	}
	beer.ID = id

	s.publishCreated(ctx, beer, authorID)

	return &beer, nil
}

// Get returns the beer at the identifier.
func (s *BeerService) Get(ctx context.Context, id int64) (*domain.Beer, error) {
	beer, err := s.beers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBeerNotFound
		}
		return nil, fmt.Errorf("get beer: %w", err)
	}
	return beer, nil
}

// List returns the full beer catalogue.
func (s *BeerService) List(ctx context.Context) ([]domain.Beer, error) {
	beers, err := s.beers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list beers: %w", err)
	}
	return beers, nil
}

func (s *BeerService) publishCreated(ctx context.Context, beer domain.Beer, authorID int64) {
	if s.events == nil {
		return
	}
	event := domain.BeerCreatedEvent{
		BeerID:    beer.ID,
		Name:      beer.Name,
		AuthorID:  authorID,
		CreatedAt: s.now().UTC(),
	}
	if err := s.events.PublishBeerCreated(ctx, event); err != nil && s.logger != nil {
		s.logger.Warn("publish beer created event failed",
			zap.Int64("beer_id", beer.ID),
			zap.Error(err),
		)
	}
}

// referenceField extracts a cross-resource reference from the payload. The
// wire accepts either a bare number or a link string.
func referenceField(payload map[string]any, name string) (string, bool) {
	raw, ok := payload[name]
	if !ok || raw == nil {
		return "", false
	}
	switch v := raw.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatInt(int64(v), 10), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	}
	return fmt.Sprintf("%v", raw), true
}
