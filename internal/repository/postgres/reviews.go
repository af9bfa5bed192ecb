package postgres

import (
	"context"
	"fmt"
	"time"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/binaryatrocity/beer-api/internal/core/domain"
	"github.com/binaryatrocity/beer-api/internal/repository"
)

var reviewColumns = []string{
	"id",
	"author_id",
	"beer_id",
	"aroma",
	"appearance",
	"taste",
	"palate",
	"bottle_style",
	"created_on",
}

// ReviewRepository implements port.ReviewRepository using PostgreSQL.
type ReviewRepository struct {
	pool    PgxPool
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewReviewRepository wires a PostgreSQL-backed review repository.
func NewReviewRepository(pool PgxPool) *ReviewRepository {
	return &ReviewRepository{
		pool:    pool,
		exec:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new review row.
func (r *ReviewRepository) Create(ctx context.Context, review domain.Review) (int64, error) {
	stmt, args, err := r.builder.Insert("reviews").
		Columns("author_id", "beer_id", "aroma", "appearance", "taste", "palate", "bottle_style", "created_on").
		Values(review.AuthorID, review.BeerID, review.Aroma, review.Appearance, review.Taste, review.Palate, review.BottleStyle, review.CreatedOn).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert review sql: %w", err)
	}

	var id int64
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert review: %w", err)
	}

	return id, nil
}

// GetByID retrieves a review by identifier.
func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	stmt, args, err := r.builder.
		Select(reviewColumns...).
		From("reviews").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select review sql: %w", err)
	}

	return scanReview(r.exec.QueryRow(ctx, stmt, args...))
}

// List returns all reviews ordered by identifier.
func (r *ReviewRepository) List(ctx context.Context) ([]domain.Review, error) {
	return r.list(ctx, nil)
}

// ListByBeer returns the reviews filed against a single beer.
func (r *ReviewRepository) ListByBeer(ctx context.Context, beerID int64) ([]domain.Review, error) {
	return r.list(ctx, squirrel.Eq{"beer_id": beerID})
}

// CountRecent reports how many reviews the author filed against the beer
// since the given instant.
func (r *ReviewRepository) CountRecent(ctx context.Context, authorID, beerID int64, since time.Time) (int, error) {
	stmt, args, err := r.builder.
		Select("COUNT(*)").
		From("reviews").
		Where(squirrel.Eq{"author_id": authorID, "beer_id": beerID}).
		Where(squirrel.GtOrEq{"created_on": since}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count recent reviews sql: %w", err)
	}

	var count int
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count recent reviews: %w", err)
	}

	return count, nil
}

func (r *ReviewRepository) list(ctx context.Context, where any) ([]domain.Review, error) {
	query := r.builder.
		Select(reviewColumns...).
		From("reviews").
		OrderBy("id")
	if where != nil {
		query = query.Where(where)
	}

	stmt, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list reviews sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, *review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}

	return reviews, nil
}

func scanReview(row pgx.Row) (*domain.Review, error) {
	var review domain.Review
	if err := row.Scan(
		&review.ID,
		&review.AuthorID,
		&review.BeerID,
		&review.Aroma,
		&review.Appearance,
		&review.Taste,
		&review.Palate,
		&review.BottleStyle,
		&review.CreatedOn,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan review: %w", err)
	}

	return &review, nil
}
