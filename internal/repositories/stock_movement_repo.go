package repositories

import (
	"context"

	"github.com/google/uuid"

	"stockflow/internal/models"
)

// StockMovementRepository is append-only: movements are never updated or
// deleted once recorded.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *models.StockMovement) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.StockMovement, error)
	List(ctx context.Context, limit, offset int) ([]*models.StockMovement, error)
	ListByStock(ctx context.Context, stockID uuid.UUID) ([]*models.StockMovement, error)
}

type stockMovementRepo struct {
	db DBTX
}

func NewStockMovementRepository(db DBTX) StockMovementRepository {
	return &stockMovementRepo{db: db}
}

func (r *stockMovementRepo) Create(ctx context.Context, movement *models.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, stock_id, movement_type, quantity, reference, timestamp)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`
	_, err := r.db.Exec(ctx, query, movement.ID, movement.StockID, movement.MovementType,
		movement.Quantity, movement.Reference)
	return err
}

func (r *stockMovementRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.StockMovement, error) {
	m := &models.StockMovement{}
	query := `SELECT id, stock_id, movement_type, quantity, reference, timestamp FROM stock_movements WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(&m.ID, &m.StockID, &m.MovementType, &m.Quantity, &m.Reference, &m.Timestamp)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *stockMovementRepo) List(ctx context.Context, limit, offset int) ([]*models.StockMovement, error) {
	query := `SELECT id, stock_id, movement_type, quantity, reference, timestamp FROM stock_movements ORDER BY timestamp LIMIT $1 OFFSET $2`
	return r.queryMovements(ctx, query, limit, offset)
}

func (r *stockMovementRepo) ListByStock(ctx context.Context, stockID uuid.UUID) ([]*models.StockMovement, error) {
	query := `SELECT id, stock_id, movement_type, quantity, reference, timestamp FROM stock_movements WHERE stock_id = $1 ORDER BY timestamp`
	return r.queryMovements(ctx, query, stockID)
}

func (r *stockMovementRepo) queryMovements(ctx context.Context, query string, args ...any) ([]*models.StockMovement, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movements []*models.StockMovement
	for rows.Next() {
		m := &models.StockMovement{}
		if err := rows.Scan(&m.ID, &m.StockID, &m.MovementType, &m.Quantity, &m.Reference, &m.Timestamp); err != nil {
			return nil, err
		}
		movements = append(movements, m)
	}
	return movements, rows.Err()
}
