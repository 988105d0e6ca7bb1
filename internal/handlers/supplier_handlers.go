package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"stockflow/internal/models"
	"stockflow/internal/services"
)

type SupplierHandlers struct {
	supplierService services.SupplierService
}

func NewSupplierHandlers(supplierService services.SupplierService) *SupplierHandlers {
	return &SupplierHandlers{supplierService: supplierService}
}

type supplierRequest struct {
	Name               string  `json:"name" validate:"required"`
	ContactName        *string `json:"contact_name"`
	ContactEmail       *string `json:"contact_email" validate:"omitempty,email"`
	ContactPhone       *string `json:"contact_phone"`
	Address            *string `json:"address"`
	PerformanceMetrics *string `json:"performance_metrics"`
}

func (req *supplierRequest) toModel() *models.Supplier {
	return &models.Supplier{
		Name:               req.Name,
		ContactName:        req.ContactName,
		ContactEmail:       req.ContactEmail,
		ContactPhone:       req.ContactPhone,
		Address:            req.Address,
		PerformanceMetrics: req.PerformanceMetrics,
	}
}

// Create handles POST /suppliers
func (h *SupplierHandlers) Create(c echo.Context) error {
	var req supplierRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	supplier := req.toModel()
	if err := h.supplierService.Create(c.Request().Context(), supplier); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, supplier)
}

// Get handles GET /suppliers/:id
func (h *SupplierHandlers) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	supplier, err := h.supplierService.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, supplier)
}

// Update handles PUT /suppliers/:id
func (h *SupplierHandlers) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req supplierRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	supplier := req.toModel()
	supplier.ID = id
	if err := h.supplierService.Update(c.Request().Context(), supplier); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, supplier)
}

// Delete handles DELETE /suppliers/:id
func (h *SupplierHandlers) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.supplierService.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// List handles GET /suppliers
func (h *SupplierHandlers) List(c echo.Context) error {
	limit, offset := pagination(c)
	suppliers, err := h.supplierService.List(c.Request().Context(), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, suppliers)
}

type supplierProductRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
}

// LinkProduct handles POST /suppliers/:id/products
func (h *SupplierHandlers) LinkProduct(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req supplierProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	link := &models.SupplierProduct{SupplierID: id, ProductID: req.ProductID}
	if err := h.supplierService.LinkProduct(c.Request().Context(), link); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, link)
}

// UnlinkProduct handles DELETE /suppliers/:id/products/:linkID
func (h *SupplierHandlers) UnlinkProduct(c echo.Context) error {
	linkID, err := parseID(c, "linkID")
	if err != nil {
		return err
	}
	if err := h.supplierService.UnlinkProduct(c.Request().Context(), linkID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListProducts handles GET /suppliers/:id/products
func (h *SupplierHandlers) ListProducts(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	links, err := h.supplierService.ListProducts(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, links)
}
