package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mithai/sweet-shop-api/internal/core/ports"
)

// CategoryHandler exposes the read-only category listing.
type CategoryHandler struct {
	service ports.CategoryService
}

func NewCategoryHandler(service ports.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// GetAll lists the available sweet categories.
//
// @Summary      List sweet categories
// @Tags         sweets
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  baseResponse
// @Router       /api/sweets/category [get]
func (h *CategoryHandler) GetAll(c echo.Context) error {
	categories, err := h.service.GetAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, baseResponse{Message: "Categories retrieved successfully", Data: categories})
}
