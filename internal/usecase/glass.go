package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/binaryatrocity/beer-api/internal/core/domain"
	"github.com/binaryatrocity/beer-api/internal/core/port"
	"github.com/binaryatrocity/beer-api/internal/repository"
)

// ErrGlassNotFound indicates no glass exists at the requested identifier.
var ErrGlassNotFound = errors.New("glass not found")

var glassSchema = Schema{
	RequiredString("name"),
}

// GlassService handles glassware styles. Glasses are weak references:
// deleting one clears the link on every beer that carried it and nothing
// else.
type GlassService struct {
	glasses port.GlassRepository
}

// NewGlassService constructs a GlassService instance.
func NewGlassService(glasses port.GlassRepository) *GlassService {
	return &GlassService{glasses: glasses}
}

// Create validates the payload and persists the glass.
func (s *GlassService) Create(ctx context.Context, payload map[string]any) (*domain.Glass, error) {
	verr := glassSchema.Validate(payload)
	if !verr.Empty() {
		return nil, verr
	}

	glass := domain.Glass{Name: stringField(payload, "name")}

	id, err := s.glasses.Create(ctx, glass)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domain.Invalid("name", "a glass with that name already exists")
		}
		return nil, fmt.Errorf("create glass: %w", err)
	}
	glass.ID = id

	return &glass, nil
}

// Get returns the glass at the identifier.
func (s *GlassService) Get(ctx context.Context, id int64) (*domain.Glass, error) {
	glass, err := s.glasses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGlassNotFound
		}
		return nil, fmt.Errorf("get glass: %w", err)
	}
	return glass, nil
}

// List returns every glass.
func (s *GlassService) List(ctx context.Context) ([]domain.Glass, error) {
	glasses, err := s.glasses.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list glasses: %w", err)
	}
	return glasses, nil
}

// Delete removes the glass. Beers referencing it keep existing with the
// link cleared.
func (s *GlassService) Delete(ctx context.Context, id int64) error {
	if err := s.glasses.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrGlassNotFound
		}
		return fmt.Errorf("delete glass: %w", err)
	}
	return nil
}
