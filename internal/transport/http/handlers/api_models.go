package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/binaryatrocity/beer-api/internal/core/domain"
)

// ErrorResponse represents a generic error payload with trace ID for debugging.
type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

// NewErrorResponse creates an error response with trace ID from context
func NewErrorResponse(c *gin.Context, errorMsg string) ErrorResponse {
	traceID, _ := c.Get("trace_id")
	traceIDStr, _ := traceID.(string)

	return ErrorResponse{
		Error:   errorMsg,
		TraceID: traceIDStr,
	}
}

// MessageResponse represents a simple message payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse carries a freshly issued identity token.
type TokenResponse struct {
	Token string `json:"token"`
}

// UserView is the wire representation of an account. The created-on key
// spells its separator differently from last_activity; both are part of
// the published API. The email key is always present, empty when the
// account registered without one.
type UserView struct {
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	CreatedOn    time.Time `json:"created-on"`
	LastActivity time.Time `json:"last_activity"`
}

func newUserView(user domain.User) UserView {
	return UserView{
		Username:     user.Username,
		Email:        user.Email,
		CreatedOn:    user.CreatedOn,
		LastActivity: user.LastActivity,
	}
}

// BeerView is the wire representation of a catalogued beer.
type BeerView struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Brewer       string  `json:"brewer,omitempty"`
	IBU          int     `json:"ibu"`
	Calories     int     `json:"calories"`
	ABV          float64 `json:"abv"`
	Style        string  `json:"style,omitempty"`
	BrewLocation string  `json:"brew_location,omitempty"`
	GlassID      *int64  `json:"glass_id,omitempty"`
}

func newBeerView(beer domain.Beer) BeerView {
	return BeerView{
		ID:           beer.ID,
		Name:         beer.Name,
		Brewer:       beer.Brewer,
		IBU:          beer.IBU,
		Calories:     beer.Calories,
		ABV:          beer.ABV,
		Style:        beer.Style,
		BrewLocation: beer.BrewLocation,
		GlassID:      beer.GlassID,
	}
}

func newBeerViews(beers []domain.Beer) []BeerView {
	views := make([]BeerView, 0, len(beers))
	for _, beer := range beers {
		views = append(views, newBeerView(beer))
	}
	return views
}

// GlassView is the wire representation of a glassware style.
type GlassView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ReviewView is the wire representation of a review. Overall is computed
// from the five sub-scores on the way out, never stored.
type ReviewView struct {
	ID          int64     `json:"id"`
	BeerID      int64     `json:"beer_id"`
	Aroma       int       `json:"aroma"`
	Appearance  int       `json:"appearance"`
	Taste       int       `json:"taste"`
	Palate      int       `json:"palate"`
	BottleStyle int       `json:"bottle_style"`
	Overall     int       `json:"overall"`
	CreatedOn   time.Time `json:"created_on"`
}

func newReviewView(review domain.Review) ReviewView {
	return ReviewView{
		ID:          review.ID,
		BeerID:      review.BeerID,
		Aroma:       review.Aroma,
		Appearance:  review.Appearance,
		Taste:       review.Taste,
		Palate:      review.Palate,
		BottleStyle: review.BottleStyle,
		Overall:     review.Overall(),
		CreatedOn:   review.CreatedOn,
	}
}

// HealthResponse reports service liveness.
type HealthResponse struct {
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
}
