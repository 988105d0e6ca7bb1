package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purchase order statuses. open -> received is one-way; cancelled is terminal.
const (
	PurchaseOrderOpen      = "open"
	PurchaseOrderReceived  = "received"
	PurchaseOrderCancelled = "cancelled"
)

func ValidPurchaseOrderStatus(s string) bool {
	switch s {
	case PurchaseOrderOpen, PurchaseOrderReceived, PurchaseOrderCancelled:
		return true
	default:
		return false
	}
}

type PurchaseOrder struct {
	ID           uuid.UUID            `json:"id" db:"id"`
	SupplierID   uuid.UUID            `json:"supplier_id" db:"supplier_id"`
	CreatedBy    *uuid.UUID           `json:"created_by" db:"created_by"`
	Status       string               `json:"status" db:"status"`
	OrderDate    time.Time            `json:"order_date" db:"order_date"`
	ExpectedDate *time.Time           `json:"expected_date" db:"expected_date"`
	Items        []*PurchaseOrderItem `json:"items,omitempty" db:"-"`
}

type PurchaseOrderItem struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	PurchaseOrderID uuid.UUID       `json:"purchase_order_id" db:"purchase_order_id"`
	ProductID       uuid.UUID       `json:"product_id" db:"product_id"`
	Quantity        int             `json:"quantity" db:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price" db:"unit_price"`
}

// Sales order statuses.
const (
	SalesOrderOpen      = "open"
	SalesOrderShipped   = "shipped"
	SalesOrderCancelled = "cancelled"
)

func ValidSalesOrderStatus(s string) bool {
	switch s {
	case SalesOrderOpen, SalesOrderShipped, SalesOrderCancelled:
		return true
	default:
		return false
	}
}

type SalesOrder struct {
	ID          uuid.UUID         `json:"id" db:"id"`
	CustomerID  uuid.UUID         `json:"customer_id" db:"customer_id"`
	CreatedBy   *uuid.UUID        `json:"created_by" db:"created_by"`
	Status      string            `json:"status" db:"status"`
	OrderDate   time.Time         `json:"order_date" db:"order_date"`
	ShippedDate *time.Time        `json:"shipped_date" db:"shipped_date"`
	Items       []*SalesOrderItem `json:"items,omitempty" db:"-"`
}

type SalesOrderItem struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	SalesOrderID uuid.UUID       `json:"sales_order_id" db:"sales_order_id"`
	ProductID    uuid.UUID       `json:"product_id" db:"product_id"`
	Quantity     int             `json:"quantity" db:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price" db:"unit_price"`
}
