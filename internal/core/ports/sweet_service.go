package ports

import "context"

// SweetInput carries the four writable attributes of a sweet. Numeric fields
// are pointers so a missing field is distinguishable from a zero value.
type SweetInput struct {
	Name       string
	CategoryID *int64
	Price      *float64
	Quantity   *int
}

// SweetResult is the read-only projection returned by every catalog and
// inventory operation, with the category name denormalized for display.
type SweetResult struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	CategoryID   int64   `json:"categoryId"`
	CategoryName string  `json:"categoryName"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
}

// ListSweetsInput is the raw, un-normalized listing request. Out-of-range
// values are clamped by the service, never rejected.
type ListSweetsInput struct {
	Search    string
	MinPrice  *float64
	MaxPrice  *float64
	Page      *int
	Size      *int
	SortField string
	SortOrder string
}

// SweetPage is one page of catalog projections.
type SweetPage struct {
	Items        []SweetResult `json:"items"`
	TotalRecords int64         `json:"totalRecords"`
	CurrentPage  int           `json:"currentPage"`
}

// SweetService implements catalog mutation and querying with the
// duplicate-name policy.
type SweetService interface {
	Create(ctx context.Context, in SweetInput) (*SweetResult, error)
	Update(ctx context.Context, id int64, in SweetInput) (*SweetResult, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*SweetResult, error)
	List(ctx context.Context, in ListSweetsInput) (*SweetPage, error)
}

// InventoryService implements the quantity state transitions.
type InventoryService interface {
	// Purchase decrements stock; the amount may not exceed the available
	// quantity. Either the full decrement succeeds or nothing changes.
	Purchase(ctx context.Context, id int64, quantity *int) (*SweetResult, error)

	// Restock increments stock with no upper bound.
	Restock(ctx context.Context, id int64, quantity *int) (*SweetResult, error)
}

// CategoryResult is the read-only projection of a sweet category.
type CategoryResult struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CategoryService lists the categories available for catalog entries.
type CategoryService interface {
	GetAll(ctx context.Context) ([]CategoryResult, error)
}
