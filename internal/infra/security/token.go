package security

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultTokenTTL = 20 * time.Minute

var (
	// ErrTokenExpired indicates the token was well-formed and correctly
	// signed but its validity window has elapsed.
	ErrTokenExpired = errors.New("token: expired")
	// ErrTokenMalformed indicates the token failed to parse or its
	// signature did not verify. Forged and truncated tokens land here,
	// never in ErrTokenExpired.
	ErrTokenMalformed = errors.New("token: malformed")
)

// IdentityClaims embeds the user reference into the registered claim set.
type IdentityClaims struct {
	UserID int64 `json:"uid"`
	jwt.RegisteredClaims
}

// TokenAuthenticator issues and validates signed, time-limited identity
// tokens. Tokens are stateless: expiry is the only bound on their lifetime
// and there is no server-side revocation list.
type TokenAuthenticator struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenAuthenticator constructs an authenticator around the process-wide
// signing secret established at startup.
func NewTokenAuthenticator(secret, issuer string, ttl time.Duration) (*TokenAuthenticator, error) {
	if secret == "" {
		return nil, fmt.Errorf("token: signing secret is required")
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	return &TokenAuthenticator{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// WithClock allows injection of a custom clock (primarily for testing).
func (a *TokenAuthenticator) WithClock(now func() time.Time) *TokenAuthenticator {
	if now != nil {
		a.now = now
	}
	return a
}

// TTL exposes the configured token lifetime.
func (a *TokenAuthenticator) TTL() time.Duration {
	return a.ttl
}

// Issue signs a token embedding the identity reference and an expiry.
func (a *TokenAuthenticator) Issue(userID int64) (string, error) {
	if userID <= 0 {
		return "", fmt.Errorf("token: user id is required")
	}

	now := a.now().UTC()
	claims := IdentityClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    a.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}

	return signed, nil
}

// Validate verifies signature and expiry and returns the embedded identity
// reference. The expired/malformed distinction is for logging only; callers
// must respond identically to either failure.
func (a *TokenAuthenticator) Validate(token string) (int64, error) {
	if token == "" {
		return 0, ErrTokenMalformed
	}

	claims := &IdentityClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	}, jwt.WithTimeFunc(a.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrTokenExpired
		}
		return 0, ErrTokenMalformed
	}

	if !parsed.Valid || claims.UserID <= 0 {
		return 0, ErrTokenMalformed
	}

	return claims.UserID, nil
}
