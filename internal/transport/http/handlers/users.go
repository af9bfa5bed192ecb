package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/binaryatrocity/beer-api/internal/usecase"
)

// UserHandler exposes account creation and reads.
type UserHandler struct {
	registration *usecase.RegistrationService
	users        *usecase.UserService
	basePath     string
	logger       *zap.Logger
}

// NewUserHandler builds a user handler instance. basePath is the mounted
// API prefix, used to build Location headers.
func NewUserHandler(registration *usecase.RegistrationService, users *usecase.UserService, basePath string, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		registration: registration,
		users:        users,
		basePath:     basePath,
		logger:       logger,
	}
}

// Create registers a new account. Registration is the one unauthenticated
// write: there is no identity to present yet.
func (h *UserHandler) Create(c *gin.Context) {
	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	user, err := h.registration.Register(c.Request.Context(), payload)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Header("Location", fmt.Sprintf("%s/users/%d", h.basePath, user.ID))
	c.JSON(http.StatusCreated, gin.H{
		"username": user.Username,
		"message":  "User created successfully",
	})
}

// List returns every account.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	views := make([]UserView, 0, len(users))
	for _, user := range users {
		views = append(views, newUserView(user))
	}
	c.JSON(http.StatusOK, gin.H{"results": views})
}

// Get returns one account.
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	user, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, newUserView(*user))
}
