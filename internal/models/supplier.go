package models

import (
	"time"

	"github.com/google/uuid"
)

type Supplier struct {
	ID                 uuid.UUID `json:"id" db:"id"`
	Name               string    `json:"name" db:"name"`
	ContactName        *string   `json:"contact_name" db:"contact_name"`
	ContactEmail       *string   `json:"contact_email" db:"contact_email"`
	ContactPhone       *string   `json:"contact_phone" db:"contact_phone"`
	Address            *string   `json:"address" db:"address"`
	PerformanceMetrics *string   `json:"performance_metrics" db:"performance_metrics"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

// SupplierProduct links a supplier to a product it can source.
type SupplierProduct struct {
	ID         uuid.UUID `json:"id" db:"id"`
	SupplierID uuid.UUID `json:"supplier_id" db:"supplier_id"`
	ProductID  uuid.UUID `json:"product_id" db:"product_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
