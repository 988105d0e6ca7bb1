package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"stockflow/internal/models"
	"stockflow/internal/services"
)

type ProductHandlers struct {
	productService services.ProductService
}

func NewProductHandlers(productService services.ProductService) *ProductHandlers {
	return &ProductHandlers{productService: productService}
}

type productRequest struct {
	Name        string           `json:"name" validate:"required"`
	Description *string          `json:"description"`
	SKU         string           `json:"sku" validate:"required"`
	Barcode     string           `json:"barcode"`
	CategoryID  uuid.UUID        `json:"category_id" validate:"required"`
	UnitPrice   decimal.Decimal  `json:"unit_price"`
	Weight      *decimal.Decimal `json:"weight"`
	Dimensions  *string          `json:"dimensions"`
}

func (req *productRequest) toModel() *models.Product {
	return &models.Product{
		Name:        req.Name,
		Description: req.Description,
		SKU:         req.SKU,
		Barcode:     req.Barcode,
		CategoryID:  req.CategoryID,
		UnitPrice:   req.UnitPrice,
		Weight:      req.Weight,
		Dimensions:  req.Dimensions,
	}
}

// Create handles POST /products
func (h *ProductHandlers) Create(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	product := req.toModel()
	if err := h.productService.Create(c.Request().Context(), product); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, product)
}

// Get handles GET /products/:id
func (h *ProductHandlers) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	product, err := h.productService.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Update handles PUT /products/:id
func (h *ProductHandlers) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	product := req.toModel()
	product.ID = id
	if err := h.productService.Update(c.Request().Context(), product); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Delete handles DELETE /products/:id
func (h *ProductHandlers) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.productService.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// List handles GET /products. Query params switch it into search mode.
func (h *ProductHandlers) List(c echo.Context) error {
	limit, offset := pagination(c)

	query := c.QueryParam("q")
	categoryParam := c.QueryParam("category_id")
	barcode := c.QueryParam("barcode")
	if query == "" && categoryParam == "" && barcode == "" {
		products, err := h.productService.List(c.Request().Context(), limit, offset)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, products)
	}

	filter := &models.ProductSearchFilter{
		Query:     query,
		SortBy:    c.QueryParam("sort_by"),
		SortOrder: c.QueryParam("sort_order"),
		Limit:     limit,
		Offset:    offset,
	}
	if categoryParam != "" {
		categoryID, err := uuid.Parse(categoryParam)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid category_id")
		}
		filter.CategoryID = &categoryID
	}
	if barcode != "" {
		filter.Barcode = &barcode
	}

	products, err := h.productService.Search(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// UploadImage handles POST /products/:id/image
func (h *ProductHandlers) UploadImage(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	file, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Image file is required")
	}
	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Unable to read image file")
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectName, err := h.productService.UploadImage(c.Request().Context(), id, file.Filename, contentType, src, file.Size)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]string{"object": objectName})
}

// ImageURL handles GET /products/:id/image
func (h *ProductHandlers) ImageURL(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	url, err := h.productService.ImageURL(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"url": url})
}

type variantRequest struct {
	Name  string `json:"name" validate:"required"`
	Value string `json:"value" validate:"required"`
}

// ListVariants handles GET /products/:id/variants
func (h *ProductHandlers) ListVariants(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	variants, err := h.productService.ListVariants(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, variants)
}

// CreateVariant handles POST /products/:id/variants
func (h *ProductHandlers) CreateVariant(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req variantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	variant := &models.ProductVariant{ProductID: id, Name: req.Name, Value: req.Value}
	if err := h.productService.CreateVariant(c.Request().Context(), variant); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, variant)
}

// DeleteVariant handles DELETE /products/:id/variants/:variantID
func (h *ProductHandlers) DeleteVariant(c echo.Context) error {
	variantID, err := parseID(c, "variantID")
	if err != nil {
		return err
	}
	if err := h.productService.DeleteVariant(c.Request().Context(), variantID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
