package middleware

import (
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/binaryatrocity/beer-api/internal/usecase"
)

// ErrorResponse matches the handlers.ErrorResponse structure
type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

func newErrorResponse(c *gin.Context, errorMsg string) ErrorResponse {
	return ErrorResponse{
		Error:   errorMsg,
		TraceID: GetTraceID(c),
	}
}

// accessDenied is the single body every authentication failure produces.
// Which path failed (token vs password, missing vs wrong) is logged but
// never exposed.
const accessDenied = "403: Access denied"

// RequireAuth establishes the caller's identity from the basic credential
// pair. The username slot doubles as a token carrier: a valid signed token
// there authenticates on its own, otherwise the pair is tried as handle
// plus password.
func RequireAuth(auth *usecase.AuthService, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		username, password, ok := basicCredentials(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, newErrorResponse(c, accessDenied))
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), username, password)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, newErrorResponse(c, accessDenied))
			return
		}

		c.Set(IdentityKey, user)

		if err := auth.TouchActivity(c.Request.Context(), user.ID, time.Now().UTC()); err != nil {
			log.Warn("touch last activity failed",
				zap.Int64("user_id", user.ID),
				zap.Error(err),
			)
		}

		c.Next()
	}
}

// basicCredentials decodes an "Authorization: Basic base64(user:pass)"
// header into its two slots.
func basicCredentials(header string) (string, string, bool) {
	if header == "" {
		return "", "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Basic") {
		return "", "", false
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(parts[1]))
	if err != nil {
		return "", "", false
	}

	username, password, found := strings.Cut(string(decoded), ":")
	if !found || username == "" {
		return "", "", false
	}
	return username, password, true
}
