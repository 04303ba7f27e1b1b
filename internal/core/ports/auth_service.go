package ports

import (
	"context"

	"github.com/mithai/sweet-shop-api/internal/core/domain"
)

// LoginResult is the payload returned on a successful login.
type LoginResult struct {
	Email       string      `json:"email"`
	AccessToken string      `json:"accessToken"`
	Role        domain.Role `json:"role"`
}

// AuthService handles registration, login, and token revocation.
type AuthService interface {
	// Register creates a USER account from an email and password. The role
	// can never be ADMIN through this path.
	Register(ctx context.Context, email, password string) error

	// Login verifies credentials and issues a session token. Failures caused
	// by an unknown email and by a wrong password are indistinguishable.
	Login(ctx context.Context, email, password string) (*LoginResult, error)

	// Logout invalidates the given token for the rest of its lifetime.
	Logout(ctx context.Context, token string) error
}
