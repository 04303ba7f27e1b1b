package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mithai/sweet-shop-api/internal/core/domain"
	"github.com/mithai/sweet-shop-api/internal/core/ports"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

var allowedSortFields = map[string]struct{}{
	"id":       {},
	"name":     {},
	"price":    {},
	"quantity": {},
}

// SweetService implements catalog mutation and querying.
type SweetService struct {
	sweets     ports.SweetRepository
	categories ports.CategoryRepository
	log        zerolog.Logger
}

func NewSweetService(sweets ports.SweetRepository, categories ports.CategoryRepository, log zerolog.Logger) *SweetService {
	return &SweetService{sweets: sweets, categories: categories, log: log}
}

// Create validates all fields, rejects case-insensitive name collisions, and
// persists a new sweet. The category store is only consulted after the
// duplicate check has passed.
func (s *SweetService) Create(ctx context.Context, in ports.SweetInput) (*ports.SweetResult, error) {
	name, err := domain.ValidateSweetName(in.Name)
	if err != nil {
		return nil, err
	}
	categoryID, err := domain.ValidateCategoryID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if _, err := domain.ValidatePrice(in.Price); err != nil {
		return nil, err
	}
	if _, err := domain.ValidateQuantity(in.Quantity); err != nil {
		return nil, err
	}

	exists, err := s.sweets.ExistsByNameIgnoreCase(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrSweetNameExists
	}

	category, err := s.categories.FindByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	sweet, err := domain.NewSweet(name, category, in.Price, in.Quantity)
	if err != nil {
		return nil, err
	}

	created, err := s.sweets.Create(ctx, sweet)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("sweet_id", created.ID).Str("name", created.Name).Msg("sweet created")
	return toSweetResult(created), nil
}

// Update re-validates all four fields and persists them. The collision check
// is skipped entirely when the name is unchanged ignoring case, so re-saving
// a sweet under its own name is always idempotent.
func (s *SweetService) Update(ctx context.Context, id int64, in ports.SweetInput) (*ports.SweetResult, error) {
	existing, err := s.sweets.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name, err := domain.ValidateSweetName(in.Name)
	if err != nil {
		return nil, err
	}
	categoryID, err := domain.ValidateCategoryID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	price, err := domain.ValidatePrice(in.Price)
	if err != nil {
		return nil, err
	}
	quantity, err := domain.ValidateQuantity(in.Quantity)
	if err != nil {
		return nil, err
	}

	if !strings.EqualFold(name, existing.Name) {
		taken, err := s.sweets.ExistsByNameIgnoreCaseExcludingID(ctx, name, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrSweetNameExists
		}
	}

	category, err := s.categories.FindByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	existing.Name = name
	existing.CategoryID = category.ID
	existing.CategoryName = category.Name
	existing.Price = price
	existing.Quantity = quantity

	updated, err := s.sweets.Update(ctx, existing)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("sweet_id", id).Msg("sweet updated")
	return toSweetResult(updated), nil
}

// Delete removes a sweet. Missing ids are reported, never silently ignored.
func (s *SweetService) Delete(ctx context.Context, id int64) error {
	exists, err := s.sweets.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrSweetNotFound
	}
	if err := s.sweets.DeleteByID(ctx, id); err != nil {
		return err
	}

	s.log.Info().Int64("sweet_id", id).Msg("sweet deleted")
	return nil
}

// Get returns the projection for a single sweet.
func (s *SweetService) Get(ctx context.Context, id int64) (*ports.SweetResult, error) {
	sweet, err := s.sweets.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSweetResult(sweet), nil
}

// List normalizes the query parameters and returns one page of projections.
// Out-of-range paging values are clamped and unknown sort fields fall back
// to "id"; listing never fails on bad parameters.
func (s *SweetService) List(ctx context.Context, in ports.ListSweetsInput) (*ports.SweetPage, error) {
	page := 0
	if in.Page != nil {
		page = *in.Page
	}
	if page < 0 {
		page = 0
	}

	size := defaultPageSize
	if in.Size != nil {
		size = *in.Size
	}
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	sortField := in.SortField
	if _, ok := allowedSortFields[sortField]; !ok {
		sortField = "id"
	}

	sortOrder := strings.ToUpper(in.SortOrder)
	if sortOrder != "DESC" {
		sortOrder = "ASC"
	}

	items, total, err := s.sweets.List(ctx, ports.ListSweetsFilter{
		Search:    strings.TrimSpace(in.Search),
		MinPrice:  in.MinPrice,
		MaxPrice:  in.MaxPrice,
		Page:      page,
		Size:      size,
		SortField: sortField,
		SortOrder: sortOrder,
	})
	if err != nil {
		return nil, err
	}

	results := make([]ports.SweetResult, 0, len(items))
	for _, sweet := range items {
		results = append(results, *toSweetResult(sweet))
	}

	return &ports.SweetPage{
		Items:        results,
		TotalRecords: total,
		CurrentPage:  page,
	}, nil
}
