package service

import (
	"context"
	"testing"

	"github.com/mithai/sweet-shop-api/internal/core/domain"
)

func TestCategoryService_GetAll(t *testing.T) {
	repo := newStubCategoryRepo(
		&domain.SweetCategory{ID: 2, Name: "Dry Fruit Sweets"},
		&domain.SweetCategory{ID: 1, Name: "Milk Sweets"},
	)
	svc := NewCategoryService(repo)

	results, err := svc.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll returned error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(results))
	}
	if results[0].ID != 1 || results[0].Name != "Milk Sweets" {
		t.Fatalf("expected id-ordered categories, got %+v", results)
	}
}

func TestCategoryService_GetAll_Empty(t *testing.T) {
	svc := NewCategoryService(newStubCategoryRepo())

	results, err := svc.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll returned error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no categories, got %d", len(results))
	}
}
