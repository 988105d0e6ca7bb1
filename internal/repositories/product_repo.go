package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"stockflow/internal/models"
)

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetBySKU(ctx context.Context, sku string) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	UpdateImageObject(ctx context.Context, id uuid.UUID, object *string) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Product, error)
	Search(ctx context.Context, filter *models.ProductSearchFilter) ([]*models.Product, error)
}

type productRepo struct {
	db DBTX
}

func NewProductRepository(db DBTX) ProductRepository {
	return &productRepo{db: db}
}

const productColumns = `id, name, description, sku, barcode, category_id, unit_price, weight, dimensions, image_object, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }) (*models.Product, error) {
	p := &models.Product{}
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.SKU, &p.Barcode, &p.CategoryID,
		&p.UnitPrice, &p.Weight, &p.Dimensions, &p.ImageObject, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *productRepo) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (id, name, description, sku, barcode, category_id, unit_price, weight, dimensions, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, product.ID, product.Name, product.Description, product.SKU,
		product.Barcode, product.CategoryID, product.UnitPrice, product.Weight, product.Dimensions)
	return err
}

func (r *productRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return scanProduct(r.db.QueryRow(ctx, query, id))
}

func (r *productRepo) GetBySKU(ctx context.Context, sku string) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku = $1`
	return scanProduct(r.db.QueryRow(ctx, query, sku))
}

func (r *productRepo) Update(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products
		SET name = $1, description = $2, sku = $3, barcode = $4, category_id = $5,
		    unit_price = $6, weight = $7, dimensions = $8, updated_at = NOW()
		WHERE id = $9
	`
	_, err := r.db.Exec(ctx, query, product.Name, product.Description, product.SKU, product.Barcode,
		product.CategoryID, product.UnitPrice, product.Weight, product.Dimensions, product.ID)
	return err
}

func (r *productRepo) UpdateImageObject(ctx context.Context, id uuid.UUID, object *string) error {
	query := `UPDATE products SET image_object = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.Exec(ctx, query, object, id)
	return err
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM products WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *productRepo) List(ctx context.Context, limit, offset int) ([]*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Search builds the filter query dynamically, matching name, description,
// sku and barcode against the free-text term.
func (r *productRepo) Search(ctx context.Context, filter *models.ProductSearchFilter) ([]*models.Product, error) {
	if filter.Limit == 0 {
		filter.Limit = 50
	}

	queryBase := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	args := []any{}
	n := 0

	if filter.Query != "" {
		n++
		queryBase += fmt.Sprintf(` AND (name ILIKE $%d OR description ILIKE $%d OR sku ILIKE $%d OR barcode ILIKE $%d)`, n, n, n, n)
		args = append(args, "%"+filter.Query+"%")
	}
	if filter.CategoryID != nil {
		n++
		queryBase += fmt.Sprintf(` AND category_id = $%d`, n)
		args = append(args, *filter.CategoryID)
	}
	if filter.Barcode != nil {
		n++
		queryBase += fmt.Sprintf(` AND barcode = $%d`, n)
		args = append(args, *filter.Barcode)
	}

	sortField := "created_at"
	switch filter.SortBy {
	case "name":
		sortField = "name"
	case "unit_price":
		sortField = "unit_price"
	}
	sortOrder := "ASC"
	if strings.EqualFold(filter.SortOrder, "desc") {
		sortOrder = "DESC"
	}
	queryBase += fmt.Sprintf(` ORDER BY %s %s`, sortField, sortOrder)

	n++
	queryBase += fmt.Sprintf(` LIMIT $%d`, n)
	args = append(args, filter.Limit)
	if filter.Offset > 0 {
		n++
		queryBase += fmt.Sprintf(` OFFSET $%d`, n)
		args = append(args, filter.Offset)
	}

	rows, err := r.db.Query(ctx, queryBase, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
