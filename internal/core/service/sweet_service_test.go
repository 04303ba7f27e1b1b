package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mithai/sweet-shop-api/internal/core/domain"
	"github.com/mithai/sweet-shop-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubSweetRepo struct {
	byID        map[int64]*domain.Sweet
	nextID      int64
	adjustCalls []int // deltas passed to AdjustQuantity
	lastFilter  ports.ListSweetsFilter
}

func newStubSweetRepo() *stubSweetRepo {
	return &stubSweetRepo{byID: make(map[int64]*domain.Sweet), nextID: 1}
}

func (r *stubSweetRepo) FindByID(_ context.Context, id int64) (*domain.Sweet, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrSweetNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubSweetRepo) ExistsByID(_ context.Context, id int64) (bool, error) {
	_, ok := r.byID[id]
	return ok, nil
}

func (r *stubSweetRepo) ExistsByNameIgnoreCase(_ context.Context, name string) (bool, error) {
	for _, s := range r.byID {
		if strings.EqualFold(s.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubSweetRepo) ExistsByNameIgnoreCaseExcludingID(_ context.Context, name string, id int64) (bool, error) {
	for _, s := range r.byID {
		if s.ID != id && strings.EqualFold(s.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubSweetRepo) Create(_ context.Context, sweet *domain.Sweet) (*domain.Sweet, error) {
	clone := *sweet
	clone.ID = r.nextID
	r.nextID++
	r.byID[clone.ID] = &clone
	copy := clone
	return &copy, nil
}

func (r *stubSweetRepo) Update(_ context.Context, sweet *domain.Sweet) (*domain.Sweet, error) {
	if _, ok := r.byID[sweet.ID]; !ok {
		return nil, domain.ErrSweetNotFound
	}
	clone := *sweet
	r.byID[clone.ID] = &clone
	copy := clone
	return &copy, nil
}

func (r *stubSweetRepo) DeleteByID(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrSweetNotFound
	}
	delete(r.byID, id)
	return nil
}

// AdjustQuantity mirrors the real repository's compare-and-swap: the
// decrement only applies when the resulting quantity stays non-negative.
func (r *stubSweetRepo) AdjustQuantity(_ context.Context, id int64, delta int) (*domain.Sweet, error) {
	r.adjustCalls = append(r.adjustCalls, delta)
	s, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrSweetNotFound
	}
	if s.Quantity+delta < 0 {
		return nil, domain.ErrPurchaseExceedsStock
	}
	s.Quantity += delta
	clone := *s
	return &clone, nil
}

func (r *stubSweetRepo) List(_ context.Context, f ports.ListSweetsFilter) ([]*domain.Sweet, int64, error) {
	r.lastFilter = f

	var matched []*domain.Sweet
	for _, s := range r.byID {
		if f.Search != "" {
			needle := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(s.Name), needle) &&
				!strings.Contains(strings.ToLower(s.CategoryName), needle) {
				continue
			}
		}
		if f.MinPrice != nil && s.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && s.Price > *f.MaxPrice {
			continue
		}
		clone := *s
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	start := f.Page * f.Size
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + f.Size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

type stubCategoryRepo struct {
	byID      map[int64]*domain.SweetCategory
	findCalls int
}

func newStubCategoryRepo(categories ...*domain.SweetCategory) *stubCategoryRepo {
	r := &stubCategoryRepo{byID: make(map[int64]*domain.SweetCategory)}
	for _, c := range categories {
		r.byID[c.ID] = c
	}
	return r
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id int64) (*domain.SweetCategory, error) {
	r.findCalls++
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCategoryRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	for _, c := range r.byID {
		if c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubCategoryRepo) FindAll(_ context.Context) ([]*domain.SweetCategory, error) {
	out := make([]*domain.SweetCategory, 0, len(r.byID))
	for _, c := range r.byID {
		clone := *c
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubCategoryRepo) Save(_ context.Context, category *domain.SweetCategory) (*domain.SweetCategory, error) {
	clone := *category
	if clone.ID == 0 {
		clone.ID = int64(len(r.byID) + 1)
	}
	r.byID[clone.ID] = &clone
	copy := clone
	return &copy, nil
}

func float64Ptr(v float64) *float64 { return &v }
func intPtr(v int) *int             { return &v }
func int64Ptr(v int64) *int64       { return &v }

func sweetInput(name string, categoryID int64, price float64, quantity int) ports.SweetInput {
	return ports.SweetInput{
		Name:       name,
		CategoryID: int64Ptr(categoryID),
		Price:      float64Ptr(price),
		Quantity:   intPtr(quantity),
	}
}

func newSweetService(sweets *stubSweetRepo, categories *stubCategoryRepo) *SweetService {
	return NewSweetService(sweets, categories, zerolog.Nop())
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestSweetService_Create_Success(t *testing.T) {
	repo := newStubSweetRepo()
	categories := newStubCategoryRepo(&domain.SweetCategory{ID: 2, Name: "Milk Sweets"})
	svc := newSweetService(repo, categories)

	result, err := svc.Create(context.Background(), sweetInput("Rasgulla", 2, 15.0, 40))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if result.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if result.CategoryName != "Milk Sweets" {
		t.Fatalf("expected denormalized category name, got %q", result.CategoryName)
	}
	if result.Quantity != 40 {
		t.Fatalf("unexpected quantity: %d", result.Quantity)
	}
}

func TestSweetService_Create_DuplicateNameIgnoresCase(t *testing.T) {
	repo := newStubSweetRepo()
	categories := newStubCategoryRepo(&domain.SweetCategory{ID: 2, Name: "Milk Sweets"})
	svc := newSweetService(repo, categories)

	if _, err := svc.Create(context.Background(), sweetInput("Kaju Katli", 2, 30.0, 10)); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	calls := categories.findCalls

	_, err := svc.Create(context.Background(), sweetInput("KAJU KATLI", 2, 25.0, 5))
	if !errors.Is(err, domain.ErrSweetNameExists) {
		t.Fatalf("expected ErrSweetNameExists, got %v", err)
	}
	// The duplicate check fires before the category lookup.
	if categories.findCalls != calls {
		t.Fatal("category store must not be consulted for a duplicate name")
	}
}

func TestSweetService_Create_UnknownCategory(t *testing.T) {
	svc := newSweetService(newStubSweetRepo(), newStubCategoryRepo())

	_, err := svc.Create(context.Background(), sweetInput("Ladoo", 99, 10.0, 5))
	if !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestSweetService_Create_Validation(t *testing.T) {
	repo := newStubSweetRepo()
	svc := newSweetService(repo, newStubCategoryRepo())

	cases := []ports.SweetInput{
		{Name: "  ", CategoryID: int64Ptr(1), Price: float64Ptr(5), Quantity: intPtr(1)},
		{Name: "Ladoo", CategoryID: nil, Price: float64Ptr(5), Quantity: intPtr(1)},
		{Name: "Ladoo", CategoryID: int64Ptr(1), Price: nil, Quantity: intPtr(1)},
		{Name: "Ladoo", CategoryID: int64Ptr(1), Price: float64Ptr(-2), Quantity: intPtr(1)},
		{Name: "Ladoo", CategoryID: int64Ptr(1), Price: float64Ptr(5), Quantity: intPtr(-1)},
	}
	for i, in := range cases {
		if _, err := svc.Create(context.Background(), in); !domain.IsKind(err, domain.KindValidation) {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
	}
	if len(repo.byID) != 0 {
		t.Fatal("invalid input must not be persisted")
	}
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func TestSweetService_Update_Success(t *testing.T) {
	repo := newStubSweetRepo()
	categories := newStubCategoryRepo(
		&domain.SweetCategory{ID: 1, Name: "Milk Sweets"},
		&domain.SweetCategory{ID: 2, Name: "Dry Fruit Sweets"},
	)
	svc := newSweetService(repo, categories)

	created, err := svc.Create(context.Background(), sweetInput("Peda", 1, 10.0, 20))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.Update(context.Background(), created.ID, sweetInput("Kesar Peda", 2, 18.0, 25))
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Name != "Kesar Peda" || updated.CategoryID != 2 || updated.CategoryName != "Dry Fruit Sweets" {
		t.Fatalf("unexpected result: %+v", updated)
	}
	if updated.Price != 18.0 || updated.Quantity != 25 {
		t.Fatalf("price/quantity not updated: %+v", updated)
	}
}

// Re-saving a sweet under its own name, even with different casing, must not
// trip the collision check.
func TestSweetService_Update_SameNameIsIdempotent(t *testing.T) {
	repo := newStubSweetRepo()
	categories := newStubCategoryRepo(&domain.SweetCategory{ID: 1, Name: "Milk Sweets"})
	svc := newSweetService(repo, categories)

	created, err := svc.Create(context.Background(), sweetInput("Barfi", 1, 12.0, 10))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.Update(context.Background(), created.ID, sweetInput("BARFI", 1, 14.0, 12)); err != nil {
		t.Fatalf("same-name update failed: %v", err)
	}
}

func TestSweetService_Update_NameCollision(t *testing.T) {
	repo := newStubSweetRepo()
	categories := newStubCategoryRepo(&domain.SweetCategory{ID: 1, Name: "Milk Sweets"})
	svc := newSweetService(repo, categories)

	if _, err := svc.Create(context.Background(), sweetInput("Barfi", 1, 12.0, 10)); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	second, err := svc.Create(context.Background(), sweetInput("Halwa", 1, 8.0, 10))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err = svc.Update(context.Background(), second.ID, sweetInput("barfi", 1, 8.0, 10))
	if !errors.Is(err, domain.ErrSweetNameExists) {
		t.Fatalf("expected ErrSweetNameExists, got %v", err)
	}
}

func TestSweetService_Update_NotFound(t *testing.T) {
	svc := newSweetService(newStubSweetRepo(), newStubCategoryRepo())

	_, err := svc.Update(context.Background(), 404, sweetInput("Ladoo", 1, 5.0, 5))
	if !errors.Is(err, domain.ErrSweetNotFound) {
		t.Fatalf("expected ErrSweetNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Delete / Get
// ---------------------------------------------------------------------------

func TestSweetService_Delete(t *testing.T) {
	repo := newStubSweetRepo()
	categories := newStubCategoryRepo(&domain.SweetCategory{ID: 1, Name: "Milk Sweets"})
	svc := newSweetService(repo, categories)

	created, err := svc.Create(context.Background(), sweetInput("Jalebi", 1, 6.0, 30))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID); !errors.Is(err, domain.ErrSweetNotFound) {
		t.Fatalf("expected ErrSweetNotFound on second delete, got %v", err)
	}
}

func TestSweetService_Get_NotFound(t *testing.T) {
	svc := newSweetService(newStubSweetRepo(), newStubCategoryRepo())

	if _, err := svc.Get(context.Background(), 404); !errors.Is(err, domain.ErrSweetNotFound) {
		t.Fatalf("expected ErrSweetNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// List
// ---------------------------------------------------------------------------

func TestSweetService_List_ClampsParameters(t *testing.T) {
	repo := newStubSweetRepo()
	svc := newSweetService(repo, newStubCategoryRepo())

	page := -1
	size := 500
	_, err := svc.List(context.Background(), ports.ListSweetsInput{
		Page:      &page,
		Size:      &size,
		SortField: "no-such-field",
		SortOrder: "sideways",
	})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	f := repo.lastFilter
	if f.Page != 0 {
		t.Fatalf("expected page clamped to 0, got %d", f.Page)
	}
	if f.Size != 100 {
		t.Fatalf("expected size clamped to 100, got %d", f.Size)
	}
	if f.SortField != "id" {
		t.Fatalf("expected sort field fallback to id, got %q", f.SortField)
	}
	if f.SortOrder != "ASC" {
		t.Fatalf("expected sort order fallback to ASC, got %q", f.SortOrder)
	}
}

func TestSweetService_List_Defaults(t *testing.T) {
	repo := newStubSweetRepo()
	svc := newSweetService(repo, newStubCategoryRepo())

	if _, err := svc.List(context.Background(), ports.ListSweetsInput{SortOrder: "desc"}); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	f := repo.lastFilter
	if f.Page != 0 || f.Size != 10 {
		t.Fatalf("expected defaults page=0 size=10, got page=%d size=%d", f.Page, f.Size)
	}
	if f.SortOrder != "DESC" {
		t.Fatalf("expected lowercase desc to normalize to DESC, got %q", f.SortOrder)
	}
}

func TestSweetService_List_SearchAndPriceRange(t *testing.T) {
	repo := newStubSweetRepo()
	categories := newStubCategoryRepo(&domain.SweetCategory{ID: 1, Name: "Milk Sweets"})
	svc := newSweetService(repo, categories)

	for _, in := range []ports.SweetInput{
		sweetInput("Rasgulla", 1, 15.0, 10),
		sweetInput("Rasmalai", 1, 25.0, 10),
		sweetInput("Jalebi", 1, 6.0, 10),
	} {
		if _, err := svc.Create(context.Background(), in); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	page, err := svc.List(context.Background(), ports.ListSweetsInput{
		Search:   "ras",
		MinPrice: float64Ptr(10.0),
		MaxPrice: float64Ptr(20.0),
	})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if page.TotalRecords != 1 || len(page.Items) != 1 {
		t.Fatalf("expected exactly one match, got %+v", page)
	}
	if page.Items[0].Name != "Rasgulla" {
		t.Fatalf("unexpected match: %q", page.Items[0].Name)
	}
}

func TestSweetService_List_EmptyPageBeyondEnd(t *testing.T) {
	repo := newStubSweetRepo()
	categories := newStubCategoryRepo(&domain.SweetCategory{ID: 1, Name: "Milk Sweets"})
	svc := newSweetService(repo, categories)

	if _, err := svc.Create(context.Background(), sweetInput("Halwa", 1, 8.0, 10)); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	page := 5
	result, err := svc.List(context.Background(), ports.ListSweetsInput{Page: &page})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(result.Items) != 0 {
		t.Fatalf("expected empty page, got %d items", len(result.Items))
	}
	if result.TotalRecords != 1 {
		t.Fatalf("total must still count all records, got %d", result.TotalRecords)
	}
	if result.CurrentPage != 5 {
		t.Fatalf("expected requested page echoed back, got %d", result.CurrentPage)
	}
}
