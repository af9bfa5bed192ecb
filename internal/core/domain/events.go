package domain

import "time"

// UserRegisteredEvent announces a newly created account.
type UserRegisteredEvent struct {
	UserID       int64     `json:"user_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	RegisteredAt time.Time `json:"registered_at"`
}

// BeerCreatedEvent announces a newly catalogued beer.
type BeerCreatedEvent struct {
	BeerID    int64     `json:"beer_id"`
	Name      string    `json:"name"`
	AuthorID  int64     `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ReviewCreatedEvent announces a newly submitted review.
type ReviewCreatedEvent struct {
	ReviewID  int64     `json:"review_id"`
	AuthorID  int64     `json:"author_id"`
	BeerID    int64     `json:"beer_id"`
	Overall   int       `json:"overall"`
	CreatedAt time.Time `json:"created_at"`
}
