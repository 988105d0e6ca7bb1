package repositories

import (
	"context"

	"github.com/google/uuid"

	"stockflow/internal/models"
)

type ProductVariantRepository interface {
	Create(ctx context.Context, variant *models.ProductVariant) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ProductVariant, error)
	Update(ctx context.Context, variant *models.ProductVariant) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.ProductVariant, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]*models.ProductVariant, error)
}

type productVariantRepo struct {
	db DBTX
}

func NewProductVariantRepository(db DBTX) ProductVariantRepository {
	return &productVariantRepo{db: db}
}

func (r *productVariantRepo) Create(ctx context.Context, variant *models.ProductVariant) error {
	query := `
		INSERT INTO product_variants (id, product_id, name, value, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`
	_, err := r.db.Exec(ctx, query, variant.ID, variant.ProductID, variant.Name, variant.Value)
	return err
}

func (r *productVariantRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ProductVariant, error) {
	v := &models.ProductVariant{}
	query := `SELECT id, product_id, name, value, created_at FROM product_variants WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(&v.ID, &v.ProductID, &v.Name, &v.Value, &v.CreatedAt)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *productVariantRepo) Update(ctx context.Context, variant *models.ProductVariant) error {
	query := `UPDATE product_variants SET product_id = $1, name = $2, value = $3 WHERE id = $4`
	_, err := r.db.Exec(ctx, query, variant.ProductID, variant.Name, variant.Value, variant.ID)
	return err
}

func (r *productVariantRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM product_variants WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *productVariantRepo) List(ctx context.Context, limit, offset int) ([]*models.ProductVariant, error) {
	query := `SELECT id, product_id, name, value, created_at FROM product_variants ORDER BY created_at LIMIT $1 OFFSET $2`
	return r.queryVariants(ctx, query, limit, offset)
}

func (r *productVariantRepo) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*models.ProductVariant, error) {
	query := `SELECT id, product_id, name, value, created_at FROM product_variants WHERE product_id = $1 ORDER BY created_at`
	return r.queryVariants(ctx, query, productID)
}

func (r *productVariantRepo) queryVariants(ctx context.Context, query string, args ...any) ([]*models.ProductVariant, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var variants []*models.ProductVariant
	for rows.Next() {
		v := &models.ProductVariant{}
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Name, &v.Value, &v.CreatedAt); err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}
	return variants, rows.Err()
}
