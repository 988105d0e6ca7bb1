package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"stockflow/internal/common"
	"stockflow/internal/models"
	"stockflow/internal/services"
)

type SalesOrderHandlers struct {
	salesService services.SalesOrderService
}

func NewSalesOrderHandlers(salesService services.SalesOrderService) *SalesOrderHandlers {
	return &SalesOrderHandlers{salesService: salesService}
}

type salesOrderItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type salesOrderRequest struct {
	CustomerID uuid.UUID               `json:"customer_id" validate:"required"`
	Items      []salesOrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// Create handles POST /sales-orders
func (h *SalesOrderHandlers) Create(c echo.Context) error {
	var req salesOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	order := &models.SalesOrder{CustomerID: req.CustomerID}
	if principal, ok := common.GetPrincipal(c.Request().Context()); ok {
		createdBy := principal.UserID
		order.CreatedBy = &createdBy
	}
	for _, item := range req.Items {
		order.Items = append(order.Items, &models.SalesOrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	if err := h.salesService.Create(c.Request().Context(), order); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, order)
}

// Get handles GET /sales-orders/:id
func (h *SalesOrderHandlers) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	order, err := h.salesService.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

type salesOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateStatus handles PATCH /sales-orders/:id/status
func (h *SalesOrderHandlers) UpdateStatus(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req salesOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.salesService.UpdateStatus(c.Request().Context(), id, req.Status); err != nil {
		return err
	}
	return detail(c, http.StatusOK, "Status updated")
}

// Delete handles DELETE /sales-orders/:id
func (h *SalesOrderHandlers) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.salesService.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// List handles GET /sales-orders
func (h *SalesOrderHandlers) List(c echo.Context) error {
	limit, offset := pagination(c)
	orders, err := h.salesService.List(c.Request().Context(), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// AddItem handles POST /sales-orders/:id/items
func (h *SalesOrderHandlers) AddItem(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req salesOrderItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	item := &models.SalesOrderItem{
		SalesOrderID: id,
		ProductID:    req.ProductID,
		Quantity:     req.Quantity,
		UnitPrice:    req.UnitPrice,
	}
	if err := h.salesService.AddItem(c.Request().Context(), item); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, item)
}

// GetItem handles GET /sales-orders/:id/items/:itemID
func (h *SalesOrderHandlers) GetItem(c echo.Context) error {
	itemID, err := parseID(c, "itemID")
	if err != nil {
		return err
	}
	item, err := h.salesService.GetItem(c.Request().Context(), itemID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// UpdateItem handles PUT /sales-orders/:id/items/:itemID
func (h *SalesOrderHandlers) UpdateItem(c echo.Context) error {
	itemID, err := parseID(c, "itemID")
	if err != nil {
		return err
	}
	var req orderItemUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	item, err := h.salesService.UpdateItem(c.Request().Context(), itemID, req.Quantity, req.UnitPrice)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// RemoveItem handles DELETE /sales-orders/:id/items/:itemID
func (h *SalesOrderHandlers) RemoveItem(c echo.Context) error {
	itemID, err := parseID(c, "itemID")
	if err != nil {
		return err
	}
	if err := h.salesService.RemoveItem(c.Request().Context(), itemID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListItems handles GET /sales-orders/:id/items
func (h *SalesOrderHandlers) ListItems(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	items, err := h.salesService.ListItems(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}
