package domain

// SweetCategory groups sweets. Categories are created by seeding only and
// referenced by id from sweets.
type SweetCategory struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// NewSweetCategory validates the name and returns a category ready to persist.
func NewSweetCategory(name string) (*SweetCategory, error) {
	trimmed, err := ValidateSweetName(name)
	if err != nil {
		return nil, err
	}
	return &SweetCategory{Name: trimmed}, nil
}

// Sweet is the catalog aggregate. CategoryName is denormalized from the
// referenced category at write time so projections and free-text search never
// need a join. Invariants: Price > 0, Quantity >= 0, Name unique across the
// catalog ignoring case.
type Sweet struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	CategoryID   int64   `json:"categoryId"`
	CategoryName string  `json:"categoryName"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
}

// NewSweet validates every attribute against the shared rules and resolves
// the category reference into the denormalized fields.
func NewSweet(name string, category *SweetCategory, price *float64, quantity *int) (*Sweet, error) {
	trimmed, err := ValidateSweetName(name)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, NewValidationError("Category ID is required")
	}
	p, err := ValidatePrice(price)
	if err != nil {
		return nil, err
	}
	q, err := ValidateQuantity(quantity)
	if err != nil {
		return nil, err
	}
	return &Sweet{
		Name:         trimmed,
		CategoryID:   category.ID,
		CategoryName: category.Name,
		Price:        p,
		Quantity:     q,
	}, nil
}
