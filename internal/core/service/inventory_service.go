package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mithai/sweet-shop-api/internal/core/domain"
	"github.com/mithai/sweet-shop-api/internal/core/ports"
)

// InventoryService implements the purchase/restock quantity transitions.
//
// The bounds check below is only a fast path: the repository applies the
// delta as an atomic compare-and-swap, so a concurrent purchase that empties
// the stock between the read and the write is still rejected.
type InventoryService struct {
	sweets ports.SweetRepository
	log    zerolog.Logger
}

func NewInventoryService(sweets ports.SweetRepository, log zerolog.Logger) *InventoryService {
	return &InventoryService{sweets: sweets, log: log}
}

// Purchase decrements stock by quantity. Either the full decrement succeeds
// or nothing is mutated.
func (s *InventoryService) Purchase(ctx context.Context, id int64, quantity *int) (*ports.SweetResult, error) {
	sweet, err := s.sweets.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	qty, err := domain.ValidatePurchaseQuantity(quantity)
	if err != nil {
		return nil, err
	}
	if qty > sweet.Quantity {
		return nil, domain.ErrPurchaseExceedsStock
	}

	updated, err := s.sweets.AdjustQuantity(ctx, id, -qty)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("sweet_id", id).Int("quantity", qty).Int("remaining", updated.Quantity).Msg("sweet purchased")
	return toSweetResult(updated), nil
}

// Restock increments stock by quantity. No upper bound applies.
func (s *InventoryService) Restock(ctx context.Context, id int64, quantity *int) (*ports.SweetResult, error) {
	if _, err := s.sweets.FindByID(ctx, id); err != nil {
		return nil, err
	}

	qty, err := domain.ValidateRestockQuantity(quantity)
	if err != nil {
		return nil, err
	}

	updated, err := s.sweets.AdjustQuantity(ctx, id, qty)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("sweet_id", id).Int("quantity", qty).Int("stock", updated.Quantity).Msg("sweet restocked")
	return toSweetResult(updated), nil
}

func toSweetResult(s *domain.Sweet) *ports.SweetResult {
	return &ports.SweetResult{
		ID:           s.ID,
		Name:         s.Name,
		CategoryID:   s.CategoryID,
		CategoryName: s.CategoryName,
		Price:        s.Price,
		Quantity:     s.Quantity,
	}
}
