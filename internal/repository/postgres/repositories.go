package postgres

import "github.com/jackc/pgx/v5/pgxpool"

// Repositories bundles the PostgreSQL-backed repository implementations.
type Repositories struct {
	Users     *UserRepository
	Glasses   *GlassRepository
	Beers     *BeerRepository
	Reviews   *ReviewRepository
	Favorites *FavoriteRepository
}

// NewRepositories constructs every repository over a shared pool.
func NewRepositories(pool *pgxpool.Pool) *Repositories {
	users := NewUserRepository(pool)
	return &Repositories{
		Users:     users,
		Glasses:   NewGlassRepository(pool),
		Beers:     NewBeerRepository(pool, users),
		Reviews:   NewReviewRepository(pool),
		Favorites: NewFavoriteRepository(pool),
	}
}
