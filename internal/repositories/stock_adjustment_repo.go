package repositories

import (
	"context"

	"github.com/google/uuid"

	"stockflow/internal/models"
)

type StockAdjustmentRepository interface {
	Create(ctx context.Context, adjustment *models.StockAdjustment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.StockAdjustment, error)
	Update(ctx context.Context, adjustment *models.StockAdjustment) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.StockAdjustment, error)
}

type stockAdjustmentRepo struct {
	db DBTX
}

func NewStockAdjustmentRepository(db DBTX) StockAdjustmentRepository {
	return &stockAdjustmentRepo{db: db}
}

func (r *stockAdjustmentRepo) Create(ctx context.Context, adjustment *models.StockAdjustment) error {
	query := `
		INSERT INTO stock_adjustments (id, stock_id, adjustment_type, quantity, reason, approved_by, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`
	_, err := r.db.Exec(ctx, query, adjustment.ID, adjustment.StockID, adjustment.AdjustmentType,
		adjustment.Quantity, adjustment.Reason, adjustment.ApprovedBy)
	return err
}

func (r *stockAdjustmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.StockAdjustment, error) {
	a := &models.StockAdjustment{}
	query := `SELECT id, stock_id, adjustment_type, quantity, reason, approved_by, timestamp FROM stock_adjustments WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(&a.ID, &a.StockID, &a.AdjustmentType, &a.Quantity, &a.Reason, &a.ApprovedBy, &a.Timestamp)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *stockAdjustmentRepo) Update(ctx context.Context, adjustment *models.StockAdjustment) error {
	query := `
		UPDATE stock_adjustments
		SET adjustment_type = $1, quantity = $2, reason = $3, approved_by = $4
		WHERE id = $5
	`
	_, err := r.db.Exec(ctx, query, adjustment.AdjustmentType, adjustment.Quantity,
		adjustment.Reason, adjustment.ApprovedBy, adjustment.ID)
	return err
}

func (r *stockAdjustmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM stock_adjustments WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *stockAdjustmentRepo) List(ctx context.Context, limit, offset int) ([]*models.StockAdjustment, error) {
	query := `SELECT id, stock_id, adjustment_type, quantity, reason, approved_by, timestamp FROM stock_adjustments ORDER BY timestamp LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var adjustments []*models.StockAdjustment
	for rows.Next() {
		a := &models.StockAdjustment{}
		if err := rows.Scan(&a.ID, &a.StockID, &a.AdjustmentType, &a.Quantity, &a.Reason, &a.ApprovedBy, &a.Timestamp); err != nil {
			return nil, err
		}
		adjustments = append(adjustments, a)
	}
	return adjustments, rows.Err()
}
