package ports

import (
	"context"

	"github.com/mithai/sweet-shop-api/internal/core/domain"
)

// ListSweetsFilter is the normalized query handed to the store. The service
// layer has already clamped page/size and resolved the sort allow-list, so
// repositories apply it verbatim.
type ListSweetsFilter struct {
	// Search matches sweet name OR category name, case-insensitive substring.
	Search    string
	MinPrice  *float64
	MaxPrice  *float64
	Page      int
	Size      int
	SortField string // one of: id, name, price, quantity
	SortOrder string // ASC or DESC
}

// SweetRepository defines the persistence contract for the sweet catalog.
//
// FindByID returns domain.ErrSweetNotFound when no row matches. Create
// assigns the id. AdjustQuantity applies delta to the stored quantity as a
// single atomic compare-and-swap: the write only happens when the resulting
// quantity stays non-negative, so two concurrent purchases can never both
// pass the bounds check. A rejected decrement returns
// domain.ErrPurchaseExceedsStock.
type SweetRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Sweet, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	ExistsByNameIgnoreCase(ctx context.Context, name string) (bool, error)
	ExistsByNameIgnoreCaseExcludingID(ctx context.Context, name string, id int64) (bool, error)
	Create(ctx context.Context, sweet *domain.Sweet) (*domain.Sweet, error)
	Update(ctx context.Context, sweet *domain.Sweet) (*domain.Sweet, error)
	DeleteByID(ctx context.Context, id int64) error
	AdjustQuantity(ctx context.Context, id int64, delta int) (*domain.Sweet, error)
	List(ctx context.Context, filter ListSweetsFilter) ([]*domain.Sweet, int64, error)
}

// CategoryRepository defines the persistence contract for sweet categories.
// FindByID returns domain.ErrCategoryNotFound when no row matches.
type CategoryRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.SweetCategory, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	FindAll(ctx context.Context) ([]*domain.SweetCategory, error)
	Save(ctx context.Context, category *domain.SweetCategory) (*domain.SweetCategory, error)
}
