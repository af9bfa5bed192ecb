package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/binaryatrocity/beer-api/internal/core/port"
)

// Resource kinds accepted by the resolver.
const (
	KindBeer  = "beer"
	KindGlass = "glass"
)

// ResolverService normalizes caller-supplied references into validated
// internal identifiers. A reference is either a bare decimal identifier or
// a URI-like string whose final path segment is one. Resolution failure is
// a validation problem, never a not-found: the reference arrives inside a
// request body, not as a resource path.
type ResolverService struct {
	beers   port.BeerRepository
	glasses port.GlassRepository
}

// NewResolverService constructs a resolver over the referenced repositories.
func NewResolverService(beers port.BeerRepository, glasses port.GlassRepository) *ResolverService {
	return &ResolverService{beers: beers, glasses: glasses}
}

// Resolve returns the internal identifier for the reference, or (0, false)
// when the reference is non-numeric in both interpretations or no record
// of the kind exists at that identifier.
func (s *ResolverService) Resolve(ctx context.Context, kind, reference string) (int64, bool, error) {
	id, ok := parseReference(reference)
	if !ok {
		return 0, false, nil
	}

	exists, err := s.exists(ctx, kind, id)
	if err != nil {
		return 0, false, fmt.Errorf("resolve %s reference: %w", kind, err)
	}
	if !exists {
		return 0, false, nil
	}
	return id, true, nil
}

func (s *ResolverService) exists(ctx context.Context, kind string, id int64) (bool, error) {
	switch kind {
	case KindBeer:
		return s.beers.Exists(ctx, id)
	case KindGlass:
		return s.glasses.Exists(ctx, id)
	}
	return false, fmt.Errorf("unknown resource kind %q", kind)
}

// parseReference extracts the decimal identifier from a bare number or the
// last path segment of a link.
func parseReference(reference string) (int64, bool) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return 0, false
	}

	if id, err := strconv.ParseInt(reference, 10, 64); err == nil {
		return id, true
	}

	trimmed := strings.TrimRight(reference, "/")
	segment := trimmed[strings.LastIndex(trimmed, "/")+1:]
	id, err := strconv.ParseInt(segment, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
