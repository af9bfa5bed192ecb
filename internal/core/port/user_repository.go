package port

import (
	"context"
	"time"

	"github.com/binaryatrocity/beer-api/internal/core/domain"
)

// UserRepository persists user accounts.
type UserRepository interface {
	// Create inserts a new user row and returns its identifier.
	// Returns repository.ErrDuplicate when the username or email is taken.
	Create(ctx context.Context, user domain.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	// TouchActivity records the moment of the latest authenticated request.
	TouchActivity(ctx context.Context, id int64, at time.Time) error
}
