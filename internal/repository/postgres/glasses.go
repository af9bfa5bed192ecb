package postgres

import (
	"context"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/binaryatrocity/beer-api/internal/core/domain"
	"github.com/binaryatrocity/beer-api/internal/repository"
)

// GlassRepository implements port.GlassRepository using PostgreSQL.
type GlassRepository struct {
	pool    PgxPool
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewGlassRepository wires a PostgreSQL-backed glassware repository.
func NewGlassRepository(pool PgxPool) *GlassRepository {
	return &GlassRepository{
		pool:    pool,
		exec:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new glassware style.
func (r *GlassRepository) Create(ctx context.Context, glass domain.Glass) (int64, error) {
	stmt, args, err := r.builder.Insert("glasses").
		Columns("name").
		Values(glass.Name).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert glass sql: %w", err)
	}

	var id int64
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&id); err != nil {
		if uniqueViolation(err) {
			return 0, repository.ErrDuplicate
		}
		return 0, fmt.Errorf("insert glass: %w", err)
	}

	return id, nil
}

// GetByID retrieves a glass by identifier.
func (r *GlassRepository) GetByID(ctx context.Context, id int64) (*domain.Glass, error) {
	stmt, args, err := r.builder.
		Select("id", "name").
		From("glasses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select glass sql: %w", err)
	}

	var glass domain.Glass
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&glass.ID, &glass.Name); err != nil {
		if err == pgx.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan glass: %w", err)
	}

	return &glass, nil
}

// List returns all glassware styles ordered by identifier.
func (r *GlassRepository) List(ctx context.Context) ([]domain.Glass, error) {
	stmt, args, err := r.builder.
		Select("id", "name").
		From("glasses").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list glasses sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list glasses: %w", err)
	}
	defer rows.Close()

	var glasses []domain.Glass
	for rows.Next() {
		var glass domain.Glass
		if err := rows.Scan(&glass.ID, &glass.Name); err != nil {
			return nil, fmt.Errorf("scan glass: %w", err)
		}
		glasses = append(glasses, glass)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate glasses: %w", err)
	}

	return glasses, nil
}

// Exists reports whether a glass with the identifier is on record.
func (r *GlassRepository) Exists(ctx context.Context, id int64) (bool, error) {
	stmt, args, err := r.builder.
		Select("1").
		From("glasses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build glass exists sql: %w", err)
	}

	var one int
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&one); err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check glass exists: %w", err)
	}

	return true, nil
}

// Delete removes the glassware style. beers.glass_id carries ON DELETE SET
// NULL, so linked beers survive with the reference cleared.
func (r *GlassRepository) Delete(ctx context.Context, id int64) error {
	stmt, args, err := r.builder.Delete("glasses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete glass sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("delete glass: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}
