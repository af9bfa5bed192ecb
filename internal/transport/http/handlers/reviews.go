package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/binaryatrocity/beer-api/internal/transport/http/middleware"
	"github.com/binaryatrocity/beer-api/internal/usecase"
)

// ReviewHandler exposes review submission and reads.
type ReviewHandler struct {
	reviews  *usecase.ReviewService
	basePath string
	logger   *zap.Logger
}

// NewReviewHandler builds a review handler instance.
func NewReviewHandler(reviews *usecase.ReviewService, basePath string, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, basePath: basePath, logger: logger}
}

// Create files a review against the referenced beer.
func (h *ReviewHandler) Create(c *gin.Context) {
	user, ok := middleware.Identity(c)
	if !ok {
		c.JSON(http.StatusForbidden, NewErrorResponse(c, bodyAccessDenied))
		return
	}

	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	review, err := h.reviews.Create(c.Request.Context(), user.ID, payload)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Header("Location", fmt.Sprintf("%s/reviews/%d", h.basePath, review.ID))
	c.JSON(http.StatusCreated, newReviewView(*review))
}

// List returns every review.
func (h *ReviewHandler) List(c *gin.Context) {
	reviews, err := h.reviews.List(c.Request.Context())
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

// Get returns one review.
func (h *ReviewHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	review, err := h.reviews.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, newReviewView(*review))
}
