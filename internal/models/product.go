package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Category struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	Name      string     `json:"name" db:"name"`
	ParentID  *uuid.UUID `json:"parent_id" db:"parent_id"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

type Product struct {
	ID          uuid.UUID        `json:"id" db:"id"`
	Name        string           `json:"name" db:"name"`
	Description *string          `json:"description" db:"description"`
	SKU         string           `json:"sku" db:"sku"`
	Barcode     string           `json:"barcode" db:"barcode"`
	CategoryID  uuid.UUID        `json:"category_id" db:"category_id"`
	UnitPrice   decimal.Decimal  `json:"unit_price" db:"unit_price"`
	Weight      *decimal.Decimal `json:"weight" db:"weight"`
	Dimensions  *string          `json:"dimensions" db:"dimensions"`
	ImageObject *string          `json:"image_object,omitempty" db:"image_object"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at" db:"updated_at"`
}

type ProductVariant struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ProductID uuid.UUID `json:"product_id" db:"product_id"`
	Name      string    `json:"name" db:"name"`
	Value     string    `json:"value" db:"value"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ProductSearchFilter holds search and filter criteria for product queries
type ProductSearchFilter struct {
	Query      string     `json:"query,omitempty"`       // Full-text search across name, description, sku, barcode
	CategoryID *uuid.UUID `json:"category_id,omitempty"` // Filter by category
	Barcode    *string    `json:"barcode,omitempty"`     // Exact barcode match
	SortBy     string     `json:"sort_by,omitempty"`     // Sort field: name, created_at, unit_price
	SortOrder  string     `json:"sort_order,omitempty"`  // Sort order: asc, desc
	Limit      int        `json:"limit,omitempty"`
	Offset     int        `json:"offset,omitempty"`
}
