package port

import (
	"context"
	"time"
)

// RateLimitStore records request attempts for the transport-level sliding
// window abuse limiter. This is distinct from the domain rate limits on
// beer and review creation, which live on the rows themselves.
type RateLimitStore interface {
	TrimWindow(ctx context.Context, identifier string, window time.Duration, reference time.Time) error
	CountAttempts(ctx context.Context, identifier string, window time.Duration, reference time.Time) (int, error)
	RecordAttempt(ctx context.Context, identifier string, at time.Time) error
}
