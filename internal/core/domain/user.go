package domain

import "time"

// User mirrors the persisted representation in the users table.
type User struct {
	ID            int64
	Username      string
	Email         string
	PasswordHash  string
	CreatedOn     time.Time
	LastActivity  time.Time
	LastBeerAdded *time.Time
}

// CanAddBeer reports whether the user's beer-creation window has elapsed at
// the supplied instant. The window caps creation at one beer per trailing
// interval, keyed on LastBeerAdded.
func (u User) CanAddBeer(at time.Time, window time.Duration) bool {
	if u.LastBeerAdded == nil {
		return true
	}
	return !u.LastBeerAdded.Add(window).After(at)
}
