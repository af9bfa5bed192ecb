package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/binaryatrocity/beer-api/internal/transport/http/middleware"
	"github.com/binaryatrocity/beer-api/internal/usecase"
)

// TokenHandler exchanges an authenticated request for a fresh signed token.
type TokenHandler struct {
	auth   *usecase.AuthService
	logger *zap.Logger
}

// NewTokenHandler builds a token handler instance.
func NewTokenHandler(auth *usecase.AuthService, logger *zap.Logger) *TokenHandler {
	return &TokenHandler{auth: auth, logger: logger}
}

// Issue mints a token for the caller established by the auth middleware.
// A token in the credential slot works too, so callers can refresh before
// expiry without re-sending the password.
func (h *TokenHandler) Issue(c *gin.Context) {
	user, ok := middleware.Identity(c)
	if !ok {
		c.JSON(http.StatusForbidden, NewErrorResponse(c, bodyAccessDenied))
		return
	}

	token, err := h.auth.IssueToken(user)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Token: token})
}
