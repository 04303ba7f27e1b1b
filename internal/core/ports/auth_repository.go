package ports

import (
	"context"

	"github.com/mithai/sweet-shop-api/internal/core/domain"
)

// UserRepository defines the persistence contract for user accounts.
//
// FindByEmail and FindByID return domain.ErrUserNotFound when no row matches.
// Save assigns the id on first save; the store's unique constraint on the
// email column is the source of truth for duplicates (the service-level
// existence check is only a fast path), so Save returns domain.ErrEmailExists
// when the constraint fires.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
}
