package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"stockflow/internal/models"
	"stockflow/internal/services"
)

type EmployeeHandlers struct {
	employeeService services.EmployeeService
}

func NewEmployeeHandlers(employeeService services.EmployeeService) *EmployeeHandlers {
	return &EmployeeHandlers{employeeService: employeeService}
}

type employeeRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
	Name   string    `json:"name" validate:"required"`
	Role   string    `json:"role" validate:"required"`
}

// Create handles POST /employees
func (h *EmployeeHandlers) Create(c echo.Context) error {
	var req employeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	employee := &models.Employee{UserID: req.UserID, Name: req.Name, Role: models.Role(req.Role)}
	if err := h.employeeService.Create(c.Request().Context(), employee); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, employee)
}

// Get handles GET /employees/:id
func (h *EmployeeHandlers) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	employee, err := h.employeeService.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, employee)
}

// Update handles PUT /employees/:id
func (h *EmployeeHandlers) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req employeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	employee := &models.Employee{ID: id, UserID: req.UserID, Name: req.Name, Role: models.Role(req.Role)}
	if err := h.employeeService.Update(c.Request().Context(), employee); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, employee)
}

// Delete handles DELETE /employees/:id
func (h *EmployeeHandlers) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.employeeService.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// List handles GET /employees
func (h *EmployeeHandlers) List(c echo.Context) error {
	limit, offset := pagination(c)
	employees, err := h.employeeService.List(c.Request().Context(), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, employees)
}
