package models

import (
	"time"

	"github.com/google/uuid"
)

// Stock is the on-hand quantity of one product at one location. The
// (product, location) pair is unique and quantity never goes negative.
type Stock struct {
	ID         uuid.UUID `json:"id" db:"id"`
	ProductID  uuid.UUID `json:"product_id" db:"product_id"`
	LocationID uuid.UUID `json:"location_id" db:"location_id"`
	Quantity   int       `json:"quantity" db:"quantity"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// Movement types accepted by the ledger.
const (
	MovementIn       = "IN"
	MovementOut      = "OUT"
	MovementTransfer = "TRANSFER"
)

func ValidMovementType(t string) bool {
	switch t {
	case MovementIn, MovementOut, MovementTransfer:
		return true
	default:
		return false
	}
}

// StockMovement is an append-only audit entry. Recording one never changes
// Stock.Quantity.
type StockMovement struct {
	ID           uuid.UUID `json:"id" db:"id"`
	StockID      uuid.UUID `json:"stock_id" db:"stock_id"`
	MovementType string    `json:"movement_type" db:"movement_type"`
	Quantity     int       `json:"quantity" db:"quantity"`
	Reference    *string   `json:"reference" db:"reference"`
	Timestamp    time.Time `json:"timestamp" db:"timestamp"`
}

// Adjustment types.
const (
	AdjustmentAdd     = "ADD"
	AdjustmentRemove  = "REMOVE"
	AdjustmentCorrect = "CORRECT"
)

func ValidAdjustmentType(t string) bool {
	switch t {
	case AdjustmentAdd, AdjustmentRemove, AdjustmentCorrect:
		return true
	default:
		return false
	}
}

// StockAdjustment records an approved correction. Creating one does not
// apply the correction to Stock.Quantity.
type StockAdjustment struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	StockID        uuid.UUID  `json:"stock_id" db:"stock_id"`
	AdjustmentType string     `json:"adjustment_type" db:"adjustment_type"`
	Quantity       int        `json:"quantity" db:"quantity"`
	Reason         *string    `json:"reason" db:"reason"`
	ApprovedBy     *uuid.UUID `json:"approved_by" db:"approved_by"`
	Timestamp      time.Time  `json:"timestamp" db:"timestamp"`
}
