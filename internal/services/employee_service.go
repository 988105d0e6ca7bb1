package services

import (
	"context"

	"github.com/google/uuid"

	"stockflow/internal/common"
	"stockflow/internal/models"
	"stockflow/internal/repositories"
)

type EmployeeService interface {
	Create(ctx context.Context, employee *models.Employee) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Employee, error)
	Update(ctx context.Context, employee *models.Employee) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Employee, error)
}

type employeeService struct {
	employeeRepo repositories.EmployeeRepository
	userRepo     repositories.UserRepository
}

func NewEmployeeService(employeeRepo repositories.EmployeeRepository, userRepo repositories.UserRepository) EmployeeService {
	return &employeeService{employeeRepo: employeeRepo, userRepo: userRepo}
}

func (s *employeeService) Create(ctx context.Context, employee *models.Employee) error {
	if employee.Name == "" {
		return common.NewValidationError("name", "This field is required")
	}
	if !employee.Role.IsValid() {
		return common.NewValidationError("role", "Must be one of admin, manager, employee")
	}
	if _, err := s.userRepo.GetByID(ctx, employee.UserID); err != nil {
		if repositories.IsNoRows(err) {
			return common.NewNotFoundError("User")
		}
		return common.NewInventoryError("failed to check user", err)
	}
	employee.ID = uuid.New()
	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		if repositories.IsUniqueViolation(err) {
			return common.NewValidationError("user_id", "User already has an employee profile")
		}
		return common.NewInventoryError("failed to create employee", err)
	}
	return nil
}

func (s *employeeService) GetByID(ctx context.Context, id uuid.UUID) (*models.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNoRows(err) {
			return nil, common.NewNotFoundError("Employee")
		}
		return nil, common.NewInventoryError("failed to fetch employee", err)
	}
	return employee, nil
}

func (s *employeeService) Update(ctx context.Context, employee *models.Employee) error {
	if employee.Name == "" {
		return common.NewValidationError("name", "This field is required")
	}
	if !employee.Role.IsValid() {
		return common.NewValidationError("role", "Must be one of admin, manager, employee")
	}
	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return common.NewInventoryError("failed to update employee", err)
	}
	return nil
}

func (s *employeeService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.employeeRepo.Delete(ctx, id)
}

func (s *employeeService) List(ctx context.Context, limit, offset int) ([]*models.Employee, error) {
	return s.employeeRepo.List(ctx, limit, offset)
}
