package ports

import (
	"context"
	"time"
)

// PasswordHasher abstracts the adaptive password hash. Hash is deliberately
// slow; callers must account for the cost on latency-sensitive paths.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Check(password, hash string) bool
}

// TokenClaims is the decoded, verified content of a session token.
type TokenClaims struct {
	Subject   int64 // user id
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenProvider issues and verifies signed, time-limited session tokens.
// Validate and Claims fail with domain.ErrInvalidToken on any parse,
// signature, or expiry problem.
type TokenProvider interface {
	Issue(userID int64, ttl time.Duration) (string, error)
	Validate(token string) error
	Claims(token string) (*TokenClaims, error)
}

// TokenRevoker tracks tokens invalidated before their natural expiry,
// keyed by token id (jti).
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
