package repositories

import (
	"context"

	"github.com/google/uuid"

	"stockflow/internal/models"
)

type SupplierRepository interface {
	Create(ctx context.Context, supplier *models.Supplier) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error)
	Update(ctx context.Context, supplier *models.Supplier) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Supplier, error)
}

type supplierRepo struct {
	db DBTX
}

func NewSupplierRepository(db DBTX) SupplierRepository {
	return &supplierRepo{db: db}
}

const supplierColumns = `id, name, contact_name, contact_email, contact_phone, address, performance_metrics, created_at, updated_at`

func scanSupplier(row interface{ Scan(...any) error }) (*models.Supplier, error) {
	s := &models.Supplier{}
	err := row.Scan(&s.ID, &s.Name, &s.ContactName, &s.ContactEmail, &s.ContactPhone,
		&s.Address, &s.PerformanceMetrics, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *supplierRepo) Create(ctx context.Context, supplier *models.Supplier) error {
	query := `
		INSERT INTO suppliers (id, name, contact_name, contact_email, contact_phone, address, performance_metrics, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, supplier.ID, supplier.Name, supplier.ContactName,
		supplier.ContactEmail, supplier.ContactPhone, supplier.Address, supplier.PerformanceMetrics)
	return err
}

func (r *supplierRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE id = $1`
	return scanSupplier(r.db.QueryRow(ctx, query, id))
}

func (r *supplierRepo) Update(ctx context.Context, supplier *models.Supplier) error {
	query := `
		UPDATE suppliers
		SET name = $1, contact_name = $2, contact_email = $3, contact_phone = $4,
		    address = $5, performance_metrics = $6, updated_at = NOW()
		WHERE id = $7
	`
	_, err := r.db.Exec(ctx, query, supplier.Name, supplier.ContactName, supplier.ContactEmail,
		supplier.ContactPhone, supplier.Address, supplier.PerformanceMetrics, supplier.ID)
	return err
}

func (r *supplierRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM suppliers WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *supplierRepo) List(ctx context.Context, limit, offset int) ([]*models.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers ORDER BY created_at LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var suppliers []*models.Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, err
		}
		suppliers = append(suppliers, s)
	}
	return suppliers, rows.Err()
}
