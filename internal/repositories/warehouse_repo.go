package repositories

import (
	"context"

	"github.com/google/uuid"

	"stockflow/internal/models"
)

type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *models.Warehouse) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Warehouse, error)
	// First returns the oldest warehouse, used as the receiving destination
	// when a purchase order lands.
	First(ctx context.Context) (*models.Warehouse, error)
	Update(ctx context.Context, warehouse *models.Warehouse) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Warehouse, error)
}

type warehouseRepo struct {
	db DBTX
}

func NewWarehouseRepository(db DBTX) WarehouseRepository {
	return &warehouseRepo{db: db}
}

func (r *warehouseRepo) Create(ctx context.Context, warehouse *models.Warehouse) error {
	query := `
		INSERT INTO warehouses (id, name, address, capacity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, warehouse.ID, warehouse.Name, warehouse.Address, warehouse.Capacity)
	return err
}

func (r *warehouseRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Warehouse, error) {
	w := &models.Warehouse{}
	query := `SELECT id, name, address, capacity, created_at, updated_at FROM warehouses WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(&w.ID, &w.Name, &w.Address, &w.Capacity, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (r *warehouseRepo) First(ctx context.Context) (*models.Warehouse, error) {
	w := &models.Warehouse{}
	query := `SELECT id, name, address, capacity, created_at, updated_at FROM warehouses ORDER BY created_at, id LIMIT 1`
	err := r.db.QueryRow(ctx, query).Scan(&w.ID, &w.Name, &w.Address, &w.Capacity, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (r *warehouseRepo) Update(ctx context.Context, warehouse *models.Warehouse) error {
	query := `
		UPDATE warehouses
		SET name = $1, address = $2, capacity = $3, updated_at = NOW()
		WHERE id = $4
	`
	_, err := r.db.Exec(ctx, query, warehouse.Name, warehouse.Address, warehouse.Capacity, warehouse.ID)
	return err
}

func (r *warehouseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM warehouses WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *warehouseRepo) List(ctx context.Context, limit, offset int) ([]*models.Warehouse, error) {
	query := `SELECT id, name, address, capacity, created_at, updated_at FROM warehouses ORDER BY created_at LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var warehouses []*models.Warehouse
	for rows.Next() {
		w := &models.Warehouse{}
		if err := rows.Scan(&w.ID, &w.Name, &w.Address, &w.Capacity, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, err
		}
		warehouses = append(warehouses, w)
	}
	return warehouses, rows.Err()
}
