package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mithai/sweet-shop-api/internal/api/metrics"
	"github.com/mithai/sweet-shop-api/internal/core/ports"
)

// SweetHandler handles catalog CRUD and listing.
type SweetHandler struct {
	service ports.SweetService
}

func NewSweetHandler(service ports.SweetService) *SweetHandler {
	return &SweetHandler{service: service}
}

func sweetID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid sweet id")
	}
	return id, nil
}

// Create adds a sweet to the catalog.
//
// @Summary      Create a sweet
// @Tags         sweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      sweetRequest  true  "Sweet details"
// @Success      201   {object}  baseResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/sweets [post]
func (h *SweetHandler) Create(c echo.Context) error {
	var req sweetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Create(c.Request().Context(), ports.SweetInput{
		Name:       req.Name,
		CategoryID: req.CategoryID,
		Price:      req.Price,
		Quantity:   req.Quantity,
	})
	if err != nil {
		return err
	}

	metrics.CatalogWritesTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, baseResponse{Message: "Sweet created successfully", Data: result})
}

// Update replaces all writable fields of a sweet.
//
// @Summary      Update a sweet
// @Tags         sweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int           true  "Sweet id"
// @Param        body  body      sweetRequest  true  "Sweet details"
// @Success      200   {object}  baseResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/sweets/{id} [put]
func (h *SweetHandler) Update(c echo.Context) error {
	id, err := sweetID(c)
	if err != nil {
		return err
	}

	var req sweetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Update(c.Request().Context(), id, ports.SweetInput{
		Name:       req.Name,
		CategoryID: req.CategoryID,
		Price:      req.Price,
		Quantity:   req.Quantity,
	})
	if err != nil {
		return err
	}

	metrics.CatalogWritesTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, baseResponse{Message: "Sweet updated successfully", Data: result})
}

// Delete removes a sweet from the catalog.
//
// @Summary      Delete a sweet
// @Tags         sweets
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Sweet id"
// @Success      200  {object}  baseResponse
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/sweets/{id} [delete]
func (h *SweetHandler) Delete(c echo.Context) error {
	id, err := sweetID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	metrics.CatalogWritesTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, baseResponse{Message: "Sweet deleted successfully"})
}

// Get returns a single sweet.
//
// @Summary      Get a sweet
// @Tags         sweets
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Sweet id"
// @Success      200  {object}  baseResponse
// @Failure      400  {object}  errorResponse
// @Router       /api/sweets/{id} [get]
func (h *SweetHandler) Get(c echo.Context) error {
	id, err := sweetID(c)
	if err != nil {
		return err
	}

	result, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, baseResponse{Message: "Sweet retrieved successfully", Data: result})
}

// List returns one page of the catalog, optionally filtered and sorted.
// The same handler backs GET /api/sweets and GET /api/sweets/search.
//
// @Summary      List and search sweets
// @Tags         sweets
// @Produce      json
// @Security     BearerAuth
// @Param        searchValue  query  string  false  "Substring matched against sweet or category name"
// @Param        minValue     query  number  false  "Minimum price"
// @Param        maxValue     query  number  false  "Maximum price"
// @Param        page         query  int     false  "Zero-based page index"
// @Param        size         query  int     false  "Page size (max 100)"
// @Param        sortField    query  string  false  "One of id, name, price, quantity"
// @Param        sortOrder    query  string  false  "ASC or DESC"
// @Success      200  {object}  paginatedResponse
// @Router       /api/sweets [get]
func (h *SweetHandler) List(c echo.Context) error {
	var req listSweetsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	page, err := h.service.List(c.Request().Context(), ports.ListSweetsInput{
		Search:    req.SearchValue,
		MinPrice:  req.MinValue,
		MaxPrice:  req.MaxValue,
		Page:      req.Page,
		Size:      req.Size,
		SortField: req.SortField,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, paginatedResponse{
		Message:      "Sweets retrieved successfully",
		Data:         page.Items,
		TotalRecords: page.TotalRecords,
		CurrentPage:  page.CurrentPage,
	})
}
