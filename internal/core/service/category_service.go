package service

import (
	"context"

	"github.com/mithai/sweet-shop-api/internal/core/ports"
)

// CategoryService exposes the read-only category listing.
type CategoryService struct {
	categories ports.CategoryRepository
}

func NewCategoryService(categories ports.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

func (s *CategoryService) GetAll(ctx context.Context) ([]ports.CategoryResult, error) {
	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]ports.CategoryResult, 0, len(categories))
	for _, c := range categories {
		results = append(results, ports.CategoryResult{ID: c.ID, Name: c.Name})
	}
	return results, nil
}
