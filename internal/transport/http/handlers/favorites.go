package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/binaryatrocity/beer-api/internal/transport/http/middleware"
	"github.com/binaryatrocity/beer-api/internal/usecase"
)

// FavoriteHandler exposes each user's favorite beer set. Mutations are
// scoped to the caller's own set; reads are open to any authenticated
// caller.
type FavoriteHandler struct {
	favorites *usecase.FavoriteService
	logger    *zap.Logger
}

// NewFavoriteHandler builds a favorite handler instance.
func NewFavoriteHandler(favorites *usecase.FavoriteService, logger *zap.Logger) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites, logger: logger}
}

// owner resolves the path user and enforces that the caller is acting on
// their own set.
func (h *FavoriteHandler) owner(c *gin.Context) (int64, bool) {
	id, ok := pathID(c, "id")
	if !ok {
		return 0, false
	}

	user, ok := middleware.Identity(c)
	if !ok || user.ID != id {
		c.JSON(http.StatusForbidden, NewErrorResponse(c, bodyAccessDenied))
		return 0, false
	}
	return id, true
}

// Replace seeds the set from scratch. Rejected when the set is non-empty;
// callers delete first and recreate.
func (h *FavoriteHandler) Replace(c *gin.Context) {
	userID, ok := h.owner(c)
	if !ok {
		return
	}

	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	references, ok := referenceList(payload, "beers")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"beers": "beers must be a list of beer references"})
		return
	}

	beers, err := h.favorites.ReplaceAll(c.Request.Context(), userID, references)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"favorites": newBeerViews(beers)})
}

// Update applies one add or remove action to the set.
func (h *FavoriteHandler) Update(c *gin.Context) {
	userID, ok := h.owner(c)
	if !ok {
		return
	}

	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	action, _ := payload["action"].(string)
	reference, refOK := referenceValue(payload["beer"])
	if !refOK {
		c.JSON(http.StatusBadRequest, gin.H{"beer": "beer reference is required"})
		return
	}

	beers, err := h.favorites.Update(c.Request.Context(), userID, action, reference)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": newBeerViews(beers)})
}

// Clear empties the set. Clearing an empty set succeeds.
func (h *FavoriteHandler) Clear(c *gin.Context) {
	userID, ok := h.owner(c)
	if !ok {
		return
	}

	if err := h.favorites.Clear(c.Request.Context(), userID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Favorites cleared"})
}

// List returns the set. Any authenticated caller may read any user's
// favorites.
func (h *FavoriteHandler) List(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	beers, err := h.favorites.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": newBeerViews(beers)})
}

// referenceList pulls a list of beer references (bare identifiers or
// links) out of the payload.
func referenceList(payload map[string]any, key string) ([]string, bool) {
	raw, present := payload[key]
	if !present || raw == nil {
		return nil, false
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, false
	}

	references := make([]string, 0, len(items))
	for _, item := range items {
		reference, ok := referenceValue(item)
		if !ok {
			return nil, false
		}
		references = append(references, reference)
	}
	return references, true
}

// referenceValue normalizes a single reference, which may arrive as a
// string link or a bare JSON number.
func referenceValue(raw any) (string, bool) {
	switch v := raw.(type) {
	case string:
		return v, v != ""
	case float64:
		return strconv.FormatInt(int64(v), 10), true
	}
	return "", false
}
