package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"stockflow/internal/models"
	"stockflow/internal/services"
)

type CustomerHandlers struct {
	customerService services.CustomerService
}

func NewCustomerHandlers(customerService services.CustomerService) *CustomerHandlers {
	return &CustomerHandlers{customerService: customerService}
}

type customerRequest struct {
	UserID       uuid.UUID `json:"user_id" validate:"required"`
	Name         string    `json:"name" validate:"required"`
	ContactEmail *string   `json:"contact_email" validate:"omitempty,email"`
	ContactPhone *string   `json:"contact_phone"`
	Address      *string   `json:"address"`
}

// Create handles POST /customers
func (h *CustomerHandlers) Create(c echo.Context) error {
	var req customerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	customer := &models.Customer{
		UserID:       req.UserID,
		Name:         req.Name,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Address:      req.Address,
	}
	if err := h.customerService.Create(c.Request().Context(), customer); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, customer)
}

// Get handles GET /customers/:id
func (h *CustomerHandlers) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	customer, err := h.customerService.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customer)
}

// Update handles PUT /customers/:id
func (h *CustomerHandlers) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req customerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	customer := &models.Customer{
		ID:           id,
		UserID:       req.UserID,
		Name:         req.Name,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Address:      req.Address,
	}
	if err := h.customerService.Update(c.Request().Context(), customer); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customer)
}

// Delete handles DELETE /customers/:id
func (h *CustomerHandlers) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.customerService.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// List handles GET /customers
func (h *CustomerHandlers) List(c echo.Context) error {
	limit, offset := pagination(c)
	customers, err := h.customerService.List(c.Request().Context(), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customers)
}
