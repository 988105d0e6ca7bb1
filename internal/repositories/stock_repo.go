package repositories

import (
	"context"

	"github.com/google/uuid"

	"stockflow/internal/models"
)

type StockRepository interface {
	Create(ctx context.Context, stock *models.Stock) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Stock, error)
	GetByProductAndLocation(ctx context.Context, productID, locationID uuid.UUID) (*models.Stock, error)
	Update(ctx context.Context, stock *models.Stock) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Stock, error)
	// ListByProduct returns every stock row for a product ordered
	// oldest-first, the order FIFO deduction drains them in.
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]*models.Stock, error)
	// TotalByProduct sums quantity across all of a product's locations.
	TotalByProduct(ctx context.Context, productID uuid.UUID) (int, error)
	// ListBelowThreshold feeds the low-stock alert scan.
	ListBelowThreshold(ctx context.Context, threshold int) ([]*models.Stock, error)
}

type stockRepo struct {
	db DBTX
}

func NewStockRepository(db DBTX) StockRepository {
	return &stockRepo{db: db}
}

const stockColumns = `id, product_id, location_id, quantity, created_at, updated_at`

func scanStock(row interface{ Scan(...any) error }) (*models.Stock, error) {
	s := &models.Stock{}
	err := row.Scan(&s.ID, &s.ProductID, &s.LocationID, &s.Quantity, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *stockRepo) Create(ctx context.Context, stock *models.Stock) error {
	// Plain insert: the (product_id, location_id) unique constraint must
	// surface as an error, not silently merge quantities.
	query := `
		INSERT INTO stocks (id, product_id, location_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, stock.ID, stock.ProductID, stock.LocationID, stock.Quantity)
	return err
}

func (r *stockRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stocks WHERE id = $1`
	return scanStock(r.db.QueryRow(ctx, query, id))
}

func (r *stockRepo) GetByProductAndLocation(ctx context.Context, productID, locationID uuid.UUID) (*models.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stocks WHERE product_id = $1 AND location_id = $2`
	return scanStock(r.db.QueryRow(ctx, query, productID, locationID))
}

func (r *stockRepo) Update(ctx context.Context, stock *models.Stock) error {
	query := `UPDATE stocks SET quantity = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.Exec(ctx, query, stock.Quantity, stock.ID)
	return err
}

func (r *stockRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM stocks WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *stockRepo) List(ctx context.Context, limit, offset int) ([]*models.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stocks ORDER BY created_at, id LIMIT $1 OFFSET $2`
	return r.queryStocks(ctx, query, limit, offset)
}

func (r *stockRepo) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*models.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stocks WHERE product_id = $1 ORDER BY created_at, id`
	return r.queryStocks(ctx, query, productID)
}

func (r *stockRepo) TotalByProduct(ctx context.Context, productID uuid.UUID) (int, error) {
	var total int
	query := `SELECT COALESCE(SUM(quantity), 0) FROM stocks WHERE product_id = $1`
	if err := r.db.QueryRow(ctx, query, productID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *stockRepo) ListBelowThreshold(ctx context.Context, threshold int) ([]*models.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stocks WHERE quantity <= $1 ORDER BY quantity`
	return r.queryStocks(ctx, query, threshold)
}

func (r *stockRepo) queryStocks(ctx context.Context, query string, args ...any) ([]*models.Stock, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stocks []*models.Stock
	for rows.Next() {
		s, err := scanStock(rows)
		if err != nil {
			return nil, err
		}
		stocks = append(stocks, s)
	}
	return stocks, rows.Err()
}
