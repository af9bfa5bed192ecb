package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/binaryatrocity/beer-api/internal/usecase"
)

// GlassHandler exposes glassware styles.
type GlassHandler struct {
	glasses  *usecase.GlassService
	basePath string
	logger   *zap.Logger
}

// NewGlassHandler builds a glass handler instance.
func NewGlassHandler(glasses *usecase.GlassService, basePath string, logger *zap.Logger) *GlassHandler {
	return &GlassHandler{glasses: glasses, basePath: basePath, logger: logger}
}

// Create adds a new glassware style.
func (h *GlassHandler) Create(c *gin.Context) {
	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	glass, err := h.glasses.Create(c.Request.Context(), payload)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Header("Location", fmt.Sprintf("%s/glasses/%d", h.basePath, glass.ID))
	c.JSON(http.StatusCreated, GlassView{ID: glass.ID, Name: glass.Name})
}

// List returns every glassware style.
func (h *GlassHandler) List(c *gin.Context) {
	glasses, err := h.glasses.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	views := make([]GlassView, 0, len(glasses))
	for _, glass := range glasses {
		views = append(views, GlassView{ID: glass.ID, Name: glass.Name})
	}
	c.JSON(http.StatusOK, gin.H{"results": views})
}

// Get returns one glassware style.
func (h *GlassHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	glass, err := h.glasses.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, GlassView{ID: glass.ID, Name: glass.Name})
}

// Delete removes a glassware style. Beers referencing it keep existing
// with the link cleared.
func (h *GlassHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.glasses.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Glass deleted"})
}
