package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/mithai/sweet-shop-api/internal/core/domain"
	"github.com/mithai/sweet-shop-api/internal/core/ports"
)

// usernamePrefixLen is the number of leading email characters used for the
// derived username on registration.
const usernamePrefixLen = 5

// AuthService implements registration, login, and logout.
type AuthService struct {
	users    ports.UserRepository
	hasher   ports.PasswordHasher
	tokens   ports.TokenProvider
	revoker  ports.TokenRevoker
	tokenTTL time.Duration
	log      zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenProvider,
	revoker ports.TokenRevoker,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		revoker:  revoker,
		tokenTTL: tokenTTL,
		log:      log,
	}
}

// Register validates the credentials, rejects duplicate emails, and persists
// a new USER account. The store's unique email constraint remains the source
// of truth for the duplicate check; ExistsByEmail is only a fast path.
func (s *AuthService) Register(ctx context.Context, email, password string) error {
	email, err := domain.ValidateEmail(email)
	if err != nil {
		return err
	}
	if err := domain.ValidatePassword(password); err != nil {
		return err
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrEmailExists
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}

	user, err := domain.NewUser(defaultUsername(email), email, hash, domain.RoleUser)
	if err != nil {
		return err
	}

	if _, err := s.users.Save(ctx, user); err != nil {
		return err
	}

	s.log.Info().Str("email", email).Msg("user registered")
	return nil
}

// Login verifies credentials and issues a session token. An unknown email
// and a wrong password produce the same generic failure so the endpoint
// cannot be used to enumerate accounts. Format and strength validation run
// first and never touch the store.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email, err := domain.ValidateEmail(email)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidatePassword(password); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Check(password, user.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, s.tokenTTL)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", user.ID).Str("role", string(user.Role)).Msg("user logged in")

	return &ports.LoginResult{
		Email:       user.EmailID,
		AccessToken: token,
		Role:        user.Role,
	}, nil
}

// Logout puts the token's id on the revocation list for the remainder of its
// lifetime. Already-expired tokens need no entry.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.Claims(token)
	if err != nil {
		return err
	}

	remaining := time.Until(claims.ExpiresAt)
	if remaining <= 0 {
		return nil
	}
	if err := s.revoker.Revoke(ctx, claims.TokenID, remaining); err != nil {
		return err
	}

	s.log.Info().Int64("user_id", claims.Subject).Msg("token revoked")
	return nil
}

// defaultUsername derives a username from the leading characters of the
// validated email. Short emails use the whole address rather than risking an
// out-of-range slice.
func defaultUsername(email string) string {
	if len(email) <= usernamePrefixLen {
		return email
	}
	return email[:usernamePrefixLen]
}
