package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mithai/sweet-shop-api/internal/core/domain"
	"github.com/mithai/sweet-shop-api/internal/core/ports"
)

type stubInventoryService struct {
	purchaseFn func(ctx context.Context, id int64, quantity *int) (*ports.SweetResult, error)
	restockFn  func(ctx context.Context, id int64, quantity *int) (*ports.SweetResult, error)
}

func (s *stubInventoryService) Purchase(ctx context.Context, id int64, quantity *int) (*ports.SweetResult, error) {
	return s.purchaseFn(ctx, id, quantity)
}

func (s *stubInventoryService) Restock(ctx context.Context, id int64, quantity *int) (*ports.SweetResult, error) {
	return s.restockFn(ctx, id, quantity)
}

func TestInventoryHandler_Purchase_Success(t *testing.T) {
	e := newTestEcho()
	h := NewInventoryHandler(&stubInventoryService{
		purchaseFn: func(_ context.Context, id int64, quantity *int) (*ports.SweetResult, error) {
			if id != 3 || quantity == nil || *quantity != 10 {
				t.Fatalf("unexpected args: id=%d quantity=%v", id, quantity)
			}
			return &ports.SweetResult{ID: 3, Name: "Rasgulla", Quantity: 40}, nil
		},
	})

	req := jsonRequest(http.MethodPost, "/api/sweets/3/purchase", `{"quantity":10}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("3")

	if err := h.Purchase(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	data := resp["data"].(map[string]any)
	if data["quantity"] != float64(40) {
		t.Fatalf("expected remaining quantity 40, got %v", data["quantity"])
	}
}

func TestInventoryHandler_Purchase_MissingQuantity(t *testing.T) {
	e := newTestEcho()
	h := NewInventoryHandler(&stubInventoryService{
		purchaseFn: func(context.Context, int64, *int) (*ports.SweetResult, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	})

	req := jsonRequest(http.MethodPost, "/api/sweets/3/purchase", `{}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("3")

	err := h.Purchase(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestInventoryHandler_Purchase_ExceedsStockPropagates(t *testing.T) {
	e := newTestEcho()
	h := NewInventoryHandler(&stubInventoryService{
		purchaseFn: func(context.Context, int64, *int) (*ports.SweetResult, error) {
			return nil, domain.ErrPurchaseExceedsStock
		},
	})

	req := jsonRequest(http.MethodPost, "/api/sweets/3/purchase", `{"quantity":100}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("3")

	if err := h.Purchase(c); !errors.Is(err, domain.ErrPurchaseExceedsStock) {
		t.Fatalf("expected ErrPurchaseExceedsStock to propagate, got %v", err)
	}
}

func TestInventoryHandler_Restock_Success(t *testing.T) {
	e := newTestEcho()
	h := NewInventoryHandler(&stubInventoryService{
		restockFn: func(_ context.Context, id int64, quantity *int) (*ports.SweetResult, error) {
			if id != 3 || quantity == nil || *quantity != 20 {
				t.Fatalf("unexpected args: id=%d quantity=%v", id, quantity)
			}
			return &ports.SweetResult{ID: 3, Name: "Rasgulla", Quantity: 70}, nil
		},
	})

	req := jsonRequest(http.MethodPost, "/api/sweets/3/restock", `{"quantity":20}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("3")

	if err := h.Restock(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestInventoryHandler_Restock_InvalidID(t *testing.T) {
	e := newTestEcho()
	h := NewInventoryHandler(&stubInventoryService{
		restockFn: func(context.Context, int64, *int) (*ports.SweetResult, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	})

	req := jsonRequest(http.MethodPost, "/api/sweets/x/restock", `{"quantity":20}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("x")

	err := h.Restock(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}
