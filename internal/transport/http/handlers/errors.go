package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/binaryatrocity/beer-api/internal/core/domain"
	"github.com/binaryatrocity/beer-api/internal/usecase"
)

// Published error bodies. These strings are part of the wire contract.
const (
	bodyNotFound     = "404: Not Found"
	bodyInternal     = "500: The application is drunk"
	bodyAccessDenied = "403: Access denied"
)

// respondError maps a usecase failure onto the published error taxonomy.
// Validation problems come back as a flat category-to-message object;
// everything unexpected collapses to the uniform 500 body after logging.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, verr.Fields)
		return
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidCredentials):
		c.JSON(http.StatusForbidden, NewErrorResponse(c, bodyAccessDenied))
	case errors.Is(err, usecase.ErrUserNotFound),
		errors.Is(err, usecase.ErrBeerNotFound),
		errors.Is(err, usecase.ErrGlassNotFound),
		errors.Is(err, usecase.ErrReviewNotFound):
		c.JSON(http.StatusNotFound, NewErrorResponse(c, bodyNotFound))
	default:
		if log != nil {
			log.Error("request failed",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
		}
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, bodyInternal))
	}
}

// NotFound is the catch-all for unmatched routes.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, NewErrorResponse(c, bodyNotFound))
}

// MethodNotAllowed answers a known route hit with the wrong verb.
func MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, NewErrorResponse(c, "405: Method Not Allowed"))
}

// bindPayload decodes the JSON body into a generic payload map so the
// usecase layer can run its own field schema over it.
func bindPayload(c *gin.Context) (map[string]any, bool) {
	payload := make(map[string]any)
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "400: Malformed request"})
		return nil, false
	}
	return payload, true
}

// pathID extracts a numeric path parameter, answering 404 when it does not
// parse: a non-numeric path is a miss, not a bad reference.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, ok := parsePathInt(c.Param(name))
	if !ok {
		NotFound(c)
		return 0, false
	}
	return id, true
}

func parsePathInt(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}
