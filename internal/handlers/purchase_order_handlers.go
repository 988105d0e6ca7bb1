package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"stockflow/internal/common"
	"stockflow/internal/models"
	"stockflow/internal/services"
)

type PurchaseOrderHandlers struct {
	purchaseService services.PurchaseOrderService
}

func NewPurchaseOrderHandlers(purchaseService services.PurchaseOrderService) *PurchaseOrderHandlers {
	return &PurchaseOrderHandlers{purchaseService: purchaseService}
}

type purchaseOrderItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type purchaseOrderRequest struct {
	SupplierID   uuid.UUID                  `json:"supplier_id" validate:"required"`
	ExpectedDate *time.Time                 `json:"expected_date"`
	Items        []purchaseOrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// Create handles POST /purchase-orders
func (h *PurchaseOrderHandlers) Create(c echo.Context) error {
	var req purchaseOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	order := &models.PurchaseOrder{
		SupplierID:   req.SupplierID,
		ExpectedDate: req.ExpectedDate,
	}
	if principal, ok := common.GetPrincipal(c.Request().Context()); ok {
		createdBy := principal.UserID
		order.CreatedBy = &createdBy
	}
	for _, item := range req.Items {
		order.Items = append(order.Items, &models.PurchaseOrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	if err := h.purchaseService.Create(c.Request().Context(), order); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, order)
}

// Get handles GET /purchase-orders/:id
func (h *PurchaseOrderHandlers) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	order, err := h.purchaseService.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

type purchaseOrderUpdateRequest struct {
	SupplierID   uuid.UUID  `json:"supplier_id" validate:"required"`
	Status       string     `json:"status" validate:"required"`
	ExpectedDate *time.Time `json:"expected_date"`
}

// Update handles PUT /purchase-orders/:id
func (h *PurchaseOrderHandlers) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req purchaseOrderUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	order := &models.PurchaseOrder{
		ID:           id,
		SupplierID:   req.SupplierID,
		Status:       req.Status,
		ExpectedDate: req.ExpectedDate,
	}
	if err := h.purchaseService.Update(c.Request().Context(), order); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// Delete handles DELETE /purchase-orders/:id
func (h *PurchaseOrderHandlers) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.purchaseService.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// List handles GET /purchase-orders
func (h *PurchaseOrderHandlers) List(c echo.Context) error {
	limit, offset := pagination(c)
	orders, err := h.purchaseService.List(c.Request().Context(), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// Receive handles POST /purchase-orders/:id/receive
func (h *PurchaseOrderHandlers) Receive(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.purchaseService.Receive(c.Request().Context(), id); err != nil {
		return err
	}
	return detail(c, http.StatusOK, "Stock incremented and PO marked as received")
}

// AddItem handles POST /purchase-orders/:id/items
func (h *PurchaseOrderHandlers) AddItem(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req purchaseOrderItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	item := &models.PurchaseOrderItem{
		PurchaseOrderID: id,
		ProductID:       req.ProductID,
		Quantity:        req.Quantity,
		UnitPrice:       req.UnitPrice,
	}
	if err := h.purchaseService.AddItem(c.Request().Context(), item); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, item)
}

// RemoveItem handles DELETE /purchase-orders/:id/items/:itemID
func (h *PurchaseOrderHandlers) RemoveItem(c echo.Context) error {
	itemID, err := parseID(c, "itemID")
	if err != nil {
		return err
	}
	if err := h.purchaseService.RemoveItem(c.Request().Context(), itemID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GetItem handles GET /purchase-orders/:id/items/:itemID
func (h *PurchaseOrderHandlers) GetItem(c echo.Context) error {
	itemID, err := parseID(c, "itemID")
	if err != nil {
		return err
	}
	item, err := h.purchaseService.GetItem(c.Request().Context(), itemID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

type orderItemUpdateRequest struct {
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// UpdateItem handles PUT /purchase-orders/:id/items/:itemID
func (h *PurchaseOrderHandlers) UpdateItem(c echo.Context) error {
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

	item, err := h.purchaseService.UpdateItem(c.Request().Context(), itemID, req.Quantity, req.UnitPrice)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// ListItems handles GET /purchase-orders/:id/items
func (h *PurchaseOrderHandlers) ListItems(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	items, err := h.purchaseService.ListItems(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}
