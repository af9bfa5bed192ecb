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

var beerColumns = []string{
	"id",
	"name",
	"brewer",
	"ibu",
	"calories",
	"abv",
	"style",
	"brew_location",
	"glass_id",
}

// BeerRepository implements port.BeerRepository using PostgreSQL.
type BeerRepository struct {
	pool    PgxPool
	exec    pgExecutor
	builder squirrel.StatementBuilderType
	users   *UserRepository
}

// NewBeerRepository wires a PostgreSQL-backed beer repository.
func NewBeerRepository(pool PgxPool, users *UserRepository) *BeerRepository {
	return &BeerRepository{
		pool:    pool,
		exec:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		users:   users,
	}
}

// Create inserts the beer after claiming the author's creation slot. Both
// writes share one transaction: if the conditional update on
// users.last_beer_added matches no row the window has not elapsed and the
// whole attempt rolls back with ErrRateLimited.
func (r *BeerRepository) Create(ctx context.Context, beer domain.Beer, authorID int64, window time.Duration) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin beer creation: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	claimed, err := r.users.WithExecutor(tx).claimBeerSlot(ctx, authorID, time.Now().UTC(), window)
	if err != nil {
		return 0, err
	}
	if !claimed {
		return 0, repository.ErrRateLimited
	}

	var glassValue any
	if beer.GlassID != nil {
		glassValue = *beer.GlassID
	}

	stmt, args, err := r.builder.Insert("beers").
		Columns("name", "brewer", "ibu", "calories", "abv", "style", "brew_location", "glass_id").
		Values(beer.Name, beer.Brewer, beer.IBU, beer.Calories, beer.ABV, beer.Style, beer.BrewLocation, glassValue).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert beer sql: %w", err)
	}

	var id int64
	if err := tx.QueryRow(ctx, stmt, args...).Scan(&id); err != nil {
		if uniqueViolation(err) {
			return 0, repository.ErrDuplicate
		}
		return 0, fmt.Errorf("insert beer: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit beer creation: %w", err)
	}

	return id, nil
}

// GetByID retrieves a beer by identifier.
func (r *BeerRepository) GetByID(ctx context.Context, id int64) (*domain.Beer, error) {
	stmt, args, err := r.builder.
		Select(beerColumns...).
		From("beers").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select beer sql: %w", err)
	}

	return scanBeer(r.exec.QueryRow(ctx, stmt, args...))
}

// List returns all beers ordered by identifier.
func (r *BeerRepository) List(ctx context.Context) ([]domain.Beer, error) {
	stmt, args, err := r.builder.
		Select(beerColumns...).
		From("beers").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list beers sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list beers: %w", err)
	}
	defer rows.Close()

	return collectBeers(rows)
}

// Exists reports whether a beer with the identifier is on record.
func (r *BeerRepository) Exists(ctx context.Context, id int64) (bool, error) {
	stmt, args, err := r.builder.
		Select("1").
		From("beers").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build beer exists sql: %w", err)
	}

	var one int
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&one); err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check beer exists: %w", err)
	}

	return true, nil
}

func scanBeer(row pgx.Row) (*domain.Beer, error) {
	var (
		beer         domain.Beer
		brewer       sql.NullString
		style        sql.NullString
		brewLocation sql.NullString
		glassID      *int64
	)

	if err := row.Scan(
		&beer.ID,
		&beer.Name,
		&brewer,
		&beer.IBU,
		&beer.Calories,
		&beer.ABV,
		&style,
		&brewLocation,
		&glassID,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan beer: %w", err)
	}

	beer.Brewer = brewer.String
	beer.Style = style.String
	beer.BrewLocation = brewLocation.String
	beer.GlassID = glassID

	return &beer, nil
}

func collectBeers(rows pgx.Rows) ([]domain.Beer, error) {
	var beers []domain.Beer
	for rows.Next() {
		beer, err := scanBeer(rows)
		if err != nil {
			return nil, err
		}
		beers = append(beers, *beer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate beers: %w", err)
	}

	return beers, nil
}
