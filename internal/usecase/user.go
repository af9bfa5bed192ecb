package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/binaryatrocity/beer-api/internal/core/domain"
	"github.com/binaryatrocity/beer-api/internal/core/port"
	"github.com/binaryatrocity/beer-api/internal/repository"
)

// ErrUserNotFound indicates no account exists at the requested identifier.
var ErrUserNotFound = errors.New("user not found")

// UserService exposes account reads for the resource handlers.
type UserService struct {
	users port.UserRepository
}

// NewUserService constructs a UserService instance.
func NewUserService(users port.UserRepository) *UserService {
	return &UserService{users: users}
}

// Get returns the account at the identifier.
func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// List returns every account.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
