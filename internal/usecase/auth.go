package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/binaryatrocity/beer-api/internal/core/domain"
	"github.com/binaryatrocity/beer-api/internal/core/port"
	"github.com/binaryatrocity/beer-api/internal/infra/security"
	"github.com/binaryatrocity/beer-api/internal/repository"
)

// ErrInvalidCredentials indicates the presented credential pair did not
// establish an identity. The message is uniform on purpose: callers must
// not be able to tell a missing account from a wrong password or a dead
// token.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService establishes the caller's identity from a credential pair and
// issues fresh tokens for it.
type AuthService struct {
	users  port.UserRepository
	tokens *security.TokenAuthenticator
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(users port.UserRepository, tokens *security.TokenAuthenticator) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Authenticate resolves the credential pair to a user. The username slot is
// overloaded: it is tried as a signed token first, and only on failure is
// the pair treated as handle plus password. Exactly one path may succeed;
// every failure collapses to ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" {
		return nil, ErrInvalidCredentials
	}

	if userID, err := s.tokens.Validate(username); err == nil {
		user, err := s.users.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrInvalidCredentials
			}
			return nil, fmt.Errorf("load token subject: %w", err)
		}
		return user, nil
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// IssueToken mints a fresh signed token for the user.
func (s *AuthService) IssueToken(user *domain.User) (string, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// TouchActivity records the moment of the latest authenticated request.
// Failures are reported but never block the request itself.
func (s *AuthService) TouchActivity(ctx context.Context, userID int64, at time.Time) error {
	return s.users.TouchActivity(ctx, userID, at)
}
