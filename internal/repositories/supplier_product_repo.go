package repositories

import (
	"context"

	"github.com/google/uuid"

	"stockflow/internal/models"
)

type SupplierProductRepository interface {
	Create(ctx context.Context, link *models.SupplierProduct) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.SupplierProduct, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.SupplierProduct, error)
	ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]*models.SupplierProduct, error)
}

type supplierProductRepo struct {
	db DBTX
}

func NewSupplierProductRepository(db DBTX) SupplierProductRepository {
	return &supplierProductRepo{db: db}
}

func (r *supplierProductRepo) Create(ctx context.Context, link *models.SupplierProduct) error {
	query := `
		INSERT INTO supplier_products (id, supplier_id, product_id, created_at)
		VALUES ($1, $2, $3, NOW())
	`
	_, err := r.db.Exec(ctx, query, link.ID, link.SupplierID, link.ProductID)
	return err
}

func (r *supplierProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.SupplierProduct, error) {
	link := &models.SupplierProduct{}
	query := `SELECT id, supplier_id, product_id, created_at FROM supplier_products WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(&link.ID, &link.SupplierID, &link.ProductID, &link.CreatedAt)
	if err != nil {
		return nil, err
	}
	return link, nil
}

func (r *supplierProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM supplier_products WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *supplierProductRepo) List(ctx context.Context, limit, offset int) ([]*models.SupplierProduct, error) {
	query := `SELECT id, supplier_id, product_id, created_at FROM supplier_products ORDER BY created_at LIMIT $1 OFFSET $2`
	return r.queryLinks(ctx, query, limit, offset)
}

func (r *supplierProductRepo) ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]*models.SupplierProduct, error) {
	query := `SELECT id, supplier_id, product_id, created_at FROM supplier_products WHERE supplier_id = $1 ORDER BY created_at`
	return r.queryLinks(ctx, query, supplierID)
}

func (r *supplierProductRepo) queryLinks(ctx context.Context, query string, args ...any) ([]*models.SupplierProduct, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []*models.SupplierProduct
	for rows.Next() {
		link := &models.SupplierProduct{}
		if err := rows.Scan(&link.ID, &link.SupplierID, &link.ProductID, &link.CreatedAt); err != nil {
			return nil, err
		}
		links = append(links, link)
	}
	return links, rows.Err()
}
