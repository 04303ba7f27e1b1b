// Package seed populates the store with the baseline data the shop needs on
// first boot: one ADMIN account and the default category list.
package seed

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mithai/sweet-shop-api/internal/core/domain"
	"github.com/mithai/sweet-shop-api/internal/core/ports"
)

// defaultCategories is the catalog taxonomy created on first boot.
var defaultCategories = []string{
	"Milk Sweets",
	"Dry Fruits Sweets",
	"Traditional Sweets",
	"Modern Sweets",
	"Sugar-Free Sweets",
	"Festival Special",
	"Bengali Sweets",
	"Gujarati Sweets",
	"Rajasthani Sweets",
	"South Indian Sweets",
}

type Seeder struct {
	users      ports.UserRepository
	categories ports.CategoryRepository
	hasher     ports.PasswordHasher
	log        zerolog.Logger
}

func NewSeeder(users ports.UserRepository, categories ports.CategoryRepository, hasher ports.PasswordHasher, log zerolog.Logger) *Seeder {
	return &Seeder{users: users, categories: categories, hasher: hasher, log: log}
}

// Run is idempotent: existing rows are left untouched, so it is safe on
// every startup.
func (s *Seeder) Run(ctx context.Context, adminEmail, adminPassword string) error {
	if err := s.ensureAdmin(ctx, adminEmail, adminPassword); err != nil {
		return err
	}
	return s.ensureCategories(ctx)
}

// ensureAdmin creates the ADMIN account when credentials are configured and
// no account with that email exists. Registration can never produce an ADMIN,
// so seeding is the only path that does.
func (s *Seeder) ensureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		s.log.Debug().Msg("admin seeding skipped: no credentials configured")
		return nil
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		s.log.Debug().Str("email", email).Msg("admin user already exists")
		return nil
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}
	admin, err := domain.NewUser("admin", email, hash, domain.RoleAdmin)
	if err != nil {
		return err
	}
	if _, err := s.users.Save(ctx, admin); err != nil {
		return err
	}

	s.log.Info().Str("email", email).Msg("admin user initialized")
	return nil
}

func (s *Seeder) ensureCategories(ctx context.Context) error {
	for _, name := range defaultCategories {
		exists, err := s.categories.ExistsByName(ctx, name)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		category, err := domain.NewSweetCategory(name)
		if err != nil {
			return err
		}
		if _, err := s.categories.Save(ctx, category); err != nil {
			return err
		}
		s.log.Info().Str("category", name).Msg("sweet category initialized")
	}
	return nil
}
