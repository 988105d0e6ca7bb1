package repositories

import (
	"context"

	"github.com/google/uuid"

	"stockflow/internal/models"
)

type LocationRepository interface {
	Create(ctx context.Context, location *models.Location) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Location, error)
	// FirstByWarehouse returns the oldest location in a warehouse, or a
	// pgx.ErrNoRows error when the warehouse has none.
	FirstByWarehouse(ctx context.Context, warehouseID uuid.UUID) (*models.Location, error)
	Update(ctx context.Context, location *models.Location) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Location, error)
}

type locationRepo struct {
	db DBTX
}

func NewLocationRepository(db DBTX) LocationRepository {
	return &locationRepo{db: db}
}

func (r *locationRepo) Create(ctx context.Context, location *models.Location) error {
	query := `
		INSERT INTO locations (id, warehouse_id, name, type, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`
	_, err := r.db.Exec(ctx, query, location.ID, location.WarehouseID, location.Name, location.Type)
	return err
}

func (r *locationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Location, error) {
	l := &models.Location{}
	query := `SELECT id, warehouse_id, name, type, created_at FROM locations WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(&l.ID, &l.WarehouseID, &l.Name, &l.Type, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *locationRepo) FirstByWarehouse(ctx context.Context, warehouseID uuid.UUID) (*models.Location, error) {
	l := &models.Location{}
	query := `
		SELECT id, warehouse_id, name, type, created_at
		FROM locations
		WHERE warehouse_id = $1
		ORDER BY created_at, id
		LIMIT 1
	`
	err := r.db.QueryRow(ctx, query, warehouseID).Scan(&l.ID, &l.WarehouseID, &l.Name, &l.Type, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *locationRepo) Update(ctx context.Context, location *models.Location) error {
	query := `UPDATE locations SET warehouse_id = $1, name = $2, type = $3 WHERE id = $4`
	_, err := r.db.Exec(ctx, query, location.WarehouseID, location.Name, location.Type, location.ID)
	return err
}

func (r *locationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM locations WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *locationRepo) List(ctx context.Context, limit, offset int) ([]*models.Location, error) {
	query := `SELECT id, warehouse_id, name, type, created_at FROM locations ORDER BY created_at LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []*models.Location
	for rows.Next() {
		l := &models.Location{}
		if err := rows.Scan(&l.ID, &l.WarehouseID, &l.Name, &l.Type, &l.CreatedAt); err != nil {
			return nil, err
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}
