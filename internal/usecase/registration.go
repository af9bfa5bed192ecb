package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/binaryatrocity/beer-api/internal/core/domain"
	"github.com/binaryatrocity/beer-api/internal/core/port"
	applogger "github.com/binaryatrocity/beer-api/internal/infra/logger"
	"github.com/binaryatrocity/beer-api/internal/infra/security"
	"github.com/binaryatrocity/beer-api/internal/repository"
)

// registrationSchema gates the user creation payload before any domain
// logic runs.
var registrationSchema = Schema{
	RequiredString("username"),
	RequiredString("password"),
	OptionalString("email"),
}

// RegistrationService handles new account creation.
type RegistrationService struct {
	users             port.UserRepository
	passwordValidator *security.PasswordValidator
	events            port.EventPublisher
	logger            *zap.Logger
	now               func() time.Time
}

// NewRegistrationService constructs a registration service.
func NewRegistrationService(users port.UserRepository, validator *security.PasswordValidator, events port.EventPublisher, logger *zap.Logger) *RegistrationService {
	if validator == nil {
		validator = security.DefaultPasswordValidator()
	}
	return &RegistrationService{
		users:             users,
		passwordValidator: validator,
		events:            events,
		logger:            logger,
		now:               time.Now,
	}
}

// Register validates the payload, hashes the password, and persists the new
// account. Every rule violation surfaces as a field-keyed validation error
// before anything is written.
func (s *RegistrationService) Register(ctx context.Context, payload map[string]any) (*domain.User, error) {
	verr := registrationSchema.Validate(payload)
	if !verr.Empty() {
		return nil, verr
	}

	username := stringField(payload, "username")
	password := stringField(payload, "password")
	email := stringField(payload, "email")

	if err := s.passwordValidator.Validate(password, username, email); err != nil {
		return nil, domain.Invalid("password", err.Error())
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	user := domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedOn:    now,
		LastActivity: now,
	}

	id, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domain.Invalid("username", "username or email already taken")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	user.ID = id

	if s.logger != nil {
		s.logger.Info("user registered",
			zap.Int64("user_id", user.ID),
			zap.String("username", user.Username),
			zap.String("email", applogger.MaskEmail(user.Email)),
		)
	}

	s.publishRegistered(ctx, user)

	return &user, nil
}

func (s *RegistrationService) publishRegistered(ctx context.Context, user domain.User) {
	if s.events == nil {
		return
	}
	event := domain.UserRegisteredEvent{
		UserID:       user.ID,
		Username:     user.Username,
		Email:        user.Email,
		RegisteredAt: user.CreatedOn,
	}
	if err := s.events.PublishUserRegistered(ctx, event); err != nil && s.logger != nil {
		s.logger.Warn("publish user registered event failed",
			zap.Int64("user_id", user.ID),
			zap.Error(err),
		)
	}
}
