package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/binaryatrocity/beer-api/internal/core/domain"
	"github.com/binaryatrocity/beer-api/internal/repository"
)

var userColumns = []string{
	"id",
	"username",
	"email",
	"password_hash",
	"created_on",
	"last_activity",
	"last_beer_added",
}

// UserRepository implements port.UserRepository using PostgreSQL.
type UserRepository struct {
	pool    PgxPool
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewUserRepository wires a PostgreSQL-backed user repository.
func NewUserRepository(pool PgxPool) *UserRepository {
	return &UserRepository{
		pool:    pool,
		exec:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// WithExecutor returns a repository instance bound to the supplied executor,
// typically a transaction.
func (r *UserRepository) WithExecutor(exec pgExecutor) *UserRepository {
	if exec == nil {
		return r
	}
	return &UserRepository{pool: r.pool, exec: exec, builder: r.builder}
}

// Create inserts a new user row and returns the generated identifier.
func (r *UserRepository) Create(ctx context.Context, user domain.User) (int64, error) {
	var emailValue any
	if user.Email != "" {
		emailValue = user.Email
	}

	stmt, args, err := r.builder.Insert("users").
		Columns("username", "email", "password_hash", "created_on", "last_activity", "last_beer_added").
		Values(user.Username, emailValue, user.PasswordHash, user.CreatedOn, user.LastActivity, user.LastBeerAdded).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert user sql: %w", err)
	}

	var id int64
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&id); err != nil {
		if uniqueViolation(err) {
			return 0, repository.ErrDuplicate
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}

	return id, nil
}

// GetByID retrieves a user by identifier.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	stmt, args, err := r.builder.
		Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select user sql: %w", err)
	}

	return r.scanUser(r.exec.QueryRow(ctx, stmt, args...))
}

// GetByUsername retrieves a user by unique handle.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	stmt, args, err := r.builder.
		Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"username": username}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select user sql: %w", err)
	}

	return r.scanUser(r.exec.QueryRow(ctx, stmt, args...))
}

// List returns all users ordered by identifier.
func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	stmt, args, err := r.builder.
		Select(userColumns...).
		From("users").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list users sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := r.scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return users, nil
}

// TouchActivity records the moment of the latest authenticated request.
func (r *UserRepository) TouchActivity(ctx context.Context, id int64, at time.Time) error {
	stmt, args, err := r.builder.Update("users").
		Set("last_activity", at).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build touch activity sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("touch activity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// claimBeerSlot conditionally advances last_beer_added when the trailing
// window has elapsed. Returns false without touching the row otherwise.
// Runs inside the beer-creation transaction so concurrent claims resolve as
// an ordinary write conflict instead of a double success.
func (r *UserRepository) claimBeerSlot(ctx context.Context, id int64, at time.Time, window time.Duration) (bool, error) {
	stmt, args, err := r.builder.Update("users").
		Set("last_beer_added", at).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Or{
			squirrel.Eq{"last_beer_added": nil},
			squirrel.LtOrEq{"last_beer_added": at.Add(-window)},
		}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build claim beer slot sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return false, fmt.Errorf("claim beer slot: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

func (r *UserRepository) scanUser(row pgx.Row) (*domain.User, error) {
	var (
		user          domain.User
		email         sql.NullString
		lastBeerAdded *time.Time
	)

	if err := row.Scan(
		&user.ID,
		&user.Username,
		&email,
		&user.PasswordHash,
		&user.CreatedOn,
		&user.LastActivity,
		&lastBeerAdded,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}

	if email.Valid {
		user.Email = email.String
	}
	user.LastBeerAdded = lastBeerAdded

	return &user, nil
}
