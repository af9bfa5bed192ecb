package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/binaryatrocity/beer-api/internal/transport/http/middleware"
	"github.com/binaryatrocity/beer-api/internal/usecase"
)

// BeerHandler exposes the beer catalogue.
type BeerHandler struct {
	beers    *usecase.BeerService
	reviews  *usecase.ReviewService
	basePath string
	logger   *zap.Logger
}

// NewBeerHandler builds a beer handler instance.
func NewBeerHandler(beers *usecase.BeerService, reviews *usecase.ReviewService, basePath string, logger *zap.Logger) *BeerHandler {
	return &BeerHandler{
		beers:    beers,
		reviews:  reviews,
		basePath: basePath,
		logger:   logger,
	}
}

// Create catalogues a new beer under the caller's creation window.
func (h *BeerHandler) Create(c *gin.Context) {
	user, ok := middleware.Identity(c)
	if !ok {
		c.JSON(http.StatusForbidden, NewErrorResponse(c, bodyAccessDenied))
		return
	}

	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	beer, err := h.beers.Create(c.Request.Context(), user.ID, payload)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Header("Location", fmt.Sprintf("%s/beers/%d", h.basePath, beer.ID))
	c.JSON(http.StatusCreated, newBeerView(*beer))
}

// List returns the full catalogue.
func (h *BeerHandler) List(c *gin.Context) {
	beers, err := h.beers.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": newBeerViews(beers)})
}

// Get returns one beer.
func (h *BeerHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	beer, err := h.beers.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, newBeerView(*beer))
}

// ListReviews returns the reviews filed against one beer.
func (h *BeerHandler) ListReviews(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if _, err := h.beers.Get(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	reviews, err := h.reviews.ListByBeer(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	views := make([]ReviewView, 0, len(reviews))
	for _, review := range reviews {
		views = append(views, newReviewView(review))
	}
	c.JSON(http.StatusOK, gin.H{"results": views})
}
