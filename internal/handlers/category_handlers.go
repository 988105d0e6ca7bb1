package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"stockflow/internal/models"
	"stockflow/internal/services"
)

type CategoryHandlers struct {
	categoryService services.CategoryService
}

func NewCategoryHandlers(categoryService services.CategoryService) *CategoryHandlers {
	return &CategoryHandlers{categoryService: categoryService}
}

type categoryRequest struct {
	Name     string     `json:"name" validate:"required"`
	ParentID *uuid.UUID `json:"parent_id"`
}

// Create handles POST /categories
func (h *CategoryHandlers) Create(c echo.Context) error {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	category := &models.Category{Name: req.Name, ParentID: req.ParentID}
	if err := h.categoryService.Create(c.Request().Context(), category); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, category)
}

// Get handles GET /categories/:id
func (h *CategoryHandlers) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	category, err := h.categoryService.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, category)
}

// Update handles PUT /categories/:id
func (h *CategoryHandlers) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	category := &models.Category{ID: id, Name: req.Name, ParentID: req.ParentID}
	if err := h.categoryService.Update(c.Request().Context(), category); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, category)
}

// Delete handles DELETE /categories/:id
func (h *CategoryHandlers) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.categoryService.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// List handles GET /categories
func (h *CategoryHandlers) List(c echo.Context) error {
	limit, offset := pagination(c)
	categories, err := h.categoryService.List(c.Request().Context(), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categories)
}
