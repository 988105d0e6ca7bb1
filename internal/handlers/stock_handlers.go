package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"stockflow/internal/models"
	"stockflow/internal/services"
)

type StockHandlers struct {
	stockService services.StockService
}

func NewStockHandlers(stockService services.StockService) *StockHandlers {
	return &StockHandlers{stockService: stockService}
}

type stockRequest struct {
	ProductID  uuid.UUID `json:"product_id" validate:"required"`
	LocationID uuid.UUID `json:"location_id" validate:"required"`
	Quantity   int       `json:"quantity" validate:"gte=0"`
}

// Create handles POST /stocks
func (h *StockHandlers) Create(c echo.Context) error {
	var req stockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	stock := &models.Stock{ProductID: req.ProductID, LocationID: req.LocationID, Quantity: req.Quantity}
	if err := h.stockService.Create(c.Request().Context(), stock); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, stock)
}

// Get handles GET /stocks/:id
func (h *StockHandlers) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	stock, err := h.stockService.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stock)
}

type stockUpdateRequest struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

// Update handles PUT /stocks/:id. Only the quantity is mutable; the
// product/location pair is fixed at creation.
func (h *StockHandlers) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req stockUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	stock, err := h.stockService.Update(c.Request().Context(), id, req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stock)
}

// Delete handles DELETE /stocks/:id
func (h *StockHandlers) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.stockService.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// List handles GET /stocks
func (h *StockHandlers) List(c echo.Context) error {
	limit, offset := pagination(c)
	stocks, err := h.stockService.List(c.Request().Context(), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stocks)
}

// Availability handles GET /products/:id/availability
func (h *StockHandlers) Availability(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	total, err := h.stockService.Availability(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"product_id": id, "available": total})
}

type movementRequest struct {
	StockID      uuid.UUID `json:"stock_id" validate:"required"`
	MovementType string    `json:"movement_type" validate:"required"`
	Quantity     int       `json:"quantity" validate:"required,gt=0"`
	Reference    *string   `json:"reference"`
}

// CreateMovement handles POST /stock-movements
func (h *StockHandlers) CreateMovement(c echo.Context) error {
	var req movementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	movement := &models.StockMovement{
		StockID:      req.StockID,
		MovementType: req.MovementType,
		Quantity:     req.Quantity,
		Reference:    req.Reference,
	}
	if err := h.stockService.RecordMovement(c.Request().Context(), movement); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, movement)
}

// GetMovement handles GET /stock-movements/:id
func (h *StockHandlers) GetMovement(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	movement, err := h.stockService.GetMovement(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, movement)
}

// ListMovements handles GET /stock-movements
func (h *StockHandlers) ListMovements(c echo.Context) error {
	limit, offset := pagination(c)
	movements, err := h.stockService.ListMovements(c.Request().Context(), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, movements)
}

type adjustmentRequest struct {
	StockID        uuid.UUID  `json:"stock_id" validate:"required"`
	AdjustmentType string     `json:"adjustment_type" validate:"required"`
	Quantity       int        `json:"quantity" validate:"required,gt=0"`
	Reason         *string    `json:"reason"`
	ApprovedBy     *uuid.UUID `json:"approved_by"`
}

// CreateAdjustment handles POST /stock-adjustments
func (h *StockHandlers) CreateAdjustment(c echo.Context) error {
	var req adjustmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	adjustment := &models.StockAdjustment{
		StockID:        req.StockID,
		AdjustmentType: req.AdjustmentType,
		Quantity:       req.Quantity,
		Reason:         req.Reason,
		ApprovedBy:     req.ApprovedBy,
	}
	if err := h.stockService.RecordAdjustment(c.Request().Context(), adjustment); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, adjustment)
}

// GetAdjustment handles GET /stock-adjustments/:id
func (h *StockHandlers) GetAdjustment(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	adjustment, err := h.stockService.GetAdjustment(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adjustment)
}

// ListAdjustments handles GET /stock-adjustments
func (h *StockHandlers) ListAdjustments(c echo.Context) error {
	limit, offset := pagination(c)
	adjustments, err := h.stockService.ListAdjustments(c.Request().Context(), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adjustments)
}

// DeleteAdjustment handles DELETE /stock-adjustments/:id
func (h *StockHandlers) DeleteAdjustment(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.stockService.DeleteAdjustment(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
