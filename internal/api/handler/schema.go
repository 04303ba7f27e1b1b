package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx
// responses.
type errorResponse struct {
	Error string `json:"error"`
}

// baseResponse wraps every successful payload.
type baseResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// paginatedResponse is the list envelope: one page of data plus the total
// record count across all pages and the zero-based current page index.
type paginatedResponse struct {
	Message      string `json:"message"`
	Data         any    `json:"data"`
	TotalRecords int64  `json:"totalRecords"`
	CurrentPage  int    `json:"currentPage"`
}

// --- Auth ---

type registerRequest struct {
	EmailID  string `json:"emailId"  validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// --- Catalog ---

// sweetRequest uses pointers for the numeric fields so a missing field stays
// distinguishable from an explicit zero; the domain rules depend on that.
type sweetRequest struct {
	Name       string   `json:"name"       validate:"required"`
	CategoryID *int64   `json:"categoryId" validate:"required"`
	Price      *float64 `json:"price"      validate:"required"`
	Quantity   *int     `json:"quantity"   validate:"required"`
}

// listSweetsRequest carries the query parameters of the list/search
// endpoints. All fields are optional; out-of-range values are clamped by the
// service, never rejected.
type listSweetsRequest struct {
	SearchValue string   `query:"searchValue"`
	MinValue    *float64 `query:"minValue"`
	MaxValue    *float64 `query:"maxValue"`
	Page        *int     `query:"page"`
	Size        *int     `query:"size"`
	SortField   string   `query:"sortField"`
	SortOrder   string   `query:"sortOrder"`
}

// --- Inventory ---

type purchaseRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

type restockRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}
