package repositories

import (
	"context"

	"github.com/google/uuid"

	"stockflow/internal/models"
)

type EmployeeRepository interface {
	Create(ctx context.Context, employee *models.Employee) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Employee, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Employee, error)
	Update(ctx context.Context, employee *models.Employee) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Employee, error)
}

type employeeRepo struct {
	db DBTX
}

func NewEmployeeRepository(db DBTX) EmployeeRepository {
	return &employeeRepo{db: db}
}

func (r *employeeRepo) Create(ctx context.Context, employee *models.Employee) error {
	query := `
		INSERT INTO employees (id, user_id, name, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, employee.ID, employee.UserID, employee.Name, employee.Role)
	return err
}

func (r *employeeRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Employee, error) {
	e := &models.Employee{}
	query := `SELECT id, user_id, name, role, created_at, updated_at FROM employees WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(&e.ID, &e.UserID, &e.Name, &e.Role, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *employeeRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Employee, error) {
	e := &models.Employee{}
	query := `SELECT id, user_id, name, role, created_at, updated_at FROM employees WHERE user_id = $1`
	err := r.db.QueryRow(ctx, query, userID).Scan(&e.ID, &e.UserID, &e.Name, &e.Role, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *employeeRepo) Update(ctx context.Context, employee *models.Employee) error {
	query := `UPDATE employees SET name = $1, role = $2, updated_at = NOW() WHERE id = $3`
	_, err := r.db.Exec(ctx, query, employee.Name, employee.Role, employee.ID)
	return err
}

func (r *employeeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM employees WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *employeeRepo) List(ctx context.Context, limit, offset int) ([]*models.Employee, error) {
	query := `SELECT id, user_id, name, role, created_at, updated_at FROM employees ORDER BY created_at LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []*models.Employee
	for rows.Next() {
		e := &models.Employee{}
		if err := rows.Scan(&e.ID, &e.UserID, &e.Name, &e.Role, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}
