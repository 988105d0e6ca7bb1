package models

import (
	"time"

	"github.com/google/uuid"
)

type Warehouse struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Address   *string   `json:"address" db:"address"`
	Capacity  int       `json:"capacity" db:"capacity"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Location is a storage spot (bin, shelf, dock) inside a warehouse.
type Location struct {
	ID          uuid.UUID `json:"id" db:"id"`
	WarehouseID uuid.UUID `json:"warehouse_id" db:"warehouse_id"`
	Name        string    `json:"name" db:"name"`
	Type        string    `json:"type" db:"type"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Defaults used when receiving stock into a warehouse that has no locations yet.
const (
	DefaultLocationName = "Default"
	DefaultLocationType = "Bin"
)
