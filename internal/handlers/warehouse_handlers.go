package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"stockflow/internal/models"
	"stockflow/internal/services"
)

type WarehouseHandlers struct {
	warehouseService services.WarehouseService
}

func NewWarehouseHandlers(warehouseService services.WarehouseService) *WarehouseHandlers {
	return &WarehouseHandlers{warehouseService: warehouseService}
}

type warehouseRequest struct {
	Name     string  `json:"name" validate:"required"`
	Address  *string `json:"address"`
	Capacity int     `json:"capacity" validate:"gte=0"`
}

// Create handles POST /warehouses
func (h *WarehouseHandlers) Create(c echo.Context) error {
	var req warehouseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	warehouse := &models.Warehouse{Name: req.Name, Address: req.Address, Capacity: req.Capacity}
	if err := h.warehouseService.Create(c.Request().Context(), warehouse); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, warehouse)
}

// Get handles GET /warehouses/:id
func (h *WarehouseHandlers) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	warehouse, err := h.warehouseService.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, warehouse)
}

// Update handles PUT /warehouses/:id
func (h *WarehouseHandlers) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req warehouseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	warehouse := &models.Warehouse{ID: id, Name: req.Name, Address: req.Address, Capacity: req.Capacity}
	if err := h.warehouseService.Update(c.Request().Context(), warehouse); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, warehouse)
}

// Delete handles DELETE /warehouses/:id
func (h *WarehouseHandlers) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.warehouseService.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// List handles GET /warehouses
func (h *WarehouseHandlers) List(c echo.Context) error {
	limit, offset := pagination(c)
	warehouses, err := h.warehouseService.List(c.Request().Context(), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, warehouses)
}

type locationRequest struct {
	WarehouseID uuid.UUID `json:"warehouse_id" validate:"required"`
	Name        string    `json:"name" validate:"required"`
	Type        string    `json:"type"`
}

// CreateLocation handles POST /locations
func (h *WarehouseHandlers) CreateLocation(c echo.Context) error {
	var req locationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	location := &models.Location{WarehouseID: req.WarehouseID, Name: req.Name, Type: req.Type}
	if err := h.warehouseService.CreateLocation(c.Request().Context(), location); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, location)
}

// GetLocation handles GET /locations/:id
func (h *WarehouseHandlers) GetLocation(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	location, err := h.warehouseService.GetLocation(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, location)
}

// UpdateLocation handles PUT /locations/:id
func (h *WarehouseHandlers) UpdateLocation(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req locationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	location := &models.Location{ID: id, WarehouseID: req.WarehouseID, Name: req.Name, Type: req.Type}
	if err := h.warehouseService.UpdateLocation(c.Request().Context(), location); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, location)
}

// DeleteLocation handles DELETE /locations/:id
func (h *WarehouseHandlers) DeleteLocation(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.warehouseService.DeleteLocation(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListLocations handles GET /locations
func (h *WarehouseHandlers) ListLocations(c echo.Context) error {
	limit, offset := pagination(c)
	locations, err := h.warehouseService.ListLocations(c.Request().Context(), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, locations)
}
