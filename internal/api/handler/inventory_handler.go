package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mithai/sweet-shop-api/internal/api/metrics"
	"github.com/mithai/sweet-shop-api/internal/core/domain"
	"github.com/mithai/sweet-shop-api/internal/core/ports"
)

// InventoryHandler handles the purchase/restock quantity transitions.
type InventoryHandler struct {
	service ports.InventoryService
}

func NewInventoryHandler(service ports.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: service}
}

// Purchase decrements stock for a sweet.
//
// @Summary      Purchase a sweet
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int              true  "Sweet id"
// @Param        body  body      purchaseRequest  true  "Purchase quantity"
// @Success      200   {object}  baseResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/sweets/{id}/purchase [post]
func (h *InventoryHandler) Purchase(c echo.Context) error {
	id, err := sweetID(c)
	if err != nil {
		return err
	}

	var req purchaseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Purchase(c.Request().Context(), id, req.Quantity)
	if err != nil {
		if domain.IsKind(err, domain.KindValidation) {
			metrics.PurchasesTotal.WithLabelValues("rejected").Inc()
		}
		return err
	}

	metrics.PurchasesTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, baseResponse{Message: "Sweet purchased successfully", Data: result})
}

// Restock increments stock for a sweet.
//
// @Summary      Restock a sweet
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Sweet id"
// @Param        body  body      restockRequest  true  "Restock quantity"
// @Success      200   {object}  baseResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/sweets/{id}/restock [post]
func (h *InventoryHandler) Restock(c echo.Context) error {
	id, err := sweetID(c)
	if err != nil {
		return err
	}

	var req restockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Restock(c.Request().Context(), id, req.Quantity)
	if err != nil {
		return err
	}

	metrics.RestocksTotal.Inc()
	return c.JSON(http.StatusOK, baseResponse{Message: "Sweet restocked successfully", Data: result})
}
