package postgres

import (
	"context"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"

	"github.com/binaryatrocity/beer-api/internal/core/domain"
)

// FavoriteRepository implements port.FavoriteRepository using PostgreSQL.
//
// The relation lives in a single join table, user_favorites, with a
// composite primary key over (user_id, beer_id). Neither side owns the
// link, both sides query it, and the key makes duplicates impossible by
// construction.
type FavoriteRepository struct {
	pool    PgxPool
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewFavoriteRepository wires a PostgreSQL-backed favorites repository.
func NewFavoriteRepository(pool PgxPool) *FavoriteRepository {
	return &FavoriteRepository{
		pool:    pool,
		exec:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Add links the beer to the user's favorites. ON CONFLICT DO NOTHING makes
// the call idempotent; the affected-row count distinguishes a fresh link
// from a no-op.
func (r *FavoriteRepository) Add(ctx context.Context, userID, beerID int64) (bool, error) {
	stmt, args, err := r.builder.Insert("user_favorites").
		Columns("user_id", "beer_id").
		Values(userID, beerID).
		Suffix("ON CONFLICT DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build add favorite sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return false, fmt.Errorf("add favorite: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// Remove unlinks the beer from the user's favorites.
func (r *FavoriteRepository) Remove(ctx context.Context, userID, beerID int64) (bool, error) {
	stmt, args, err := r.builder.Delete("user_favorites").
		Where(squirrel.Eq{"user_id": userID, "beer_id": beerID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build remove favorite sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return false, fmt.Errorf("remove favorite: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// Clear empties the user's favorites set.
func (r *FavoriteRepository) Clear(ctx context.Context, userID int64) (bool, error) {
	stmt, args, err := r.builder.Delete("user_favorites").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build clear favorites sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return false, fmt.Errorf("clear favorites: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Count returns the size of the user's favorites set.
func (r *FavoriteRepository) Count(ctx context.Context, userID int64) (int, error) {
	stmt, args, err := r.builder.
		Select("COUNT(*)").
		From("user_favorites").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count favorites sql: %w", err)
	}

	var count int
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count favorites: %w", err)
	}

	return count, nil
}

// List returns the favorited beers, joined through the relation.
func (r *FavoriteRepository) List(ctx context.Context, userID int64) ([]domain.Beer, error) {
	columns := make([]string, 0, len(beerColumns))
	for _, col := range beerColumns {
		columns = append(columns, "b."+col)
	}

	stmt, args, err := r.builder.
		Select(columns...).
		From("user_favorites uf").
		Join("beers b ON b.id = uf.beer_id").
		Where(squirrel.Eq{"uf.user_id": userID}).
		OrderBy("b.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list favorites sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	return collectBeers(rows)
}
