package services

import (
	"context"

	"github.com/google/uuid"

	"stockflow/internal/common"
	"stockflow/internal/models"
	"stockflow/internal/repositories"
)

type CustomerService interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Customer, error)
}

type customerService struct {
	customerRepo repositories.CustomerRepository
	userRepo     repositories.UserRepository
}

func NewCustomerService(customerRepo repositories.CustomerRepository, userRepo repositories.UserRepository) CustomerService {
	return &customerService{customerRepo: customerRepo, userRepo: userRepo}
}

func (s *customerService) Create(ctx context.Context, customer *models.Customer) error {
	if customer.Name == "" {
		return common.NewValidationError("name", "This field is required")
	}
	if _, err := s.userRepo.GetByID(ctx, customer.UserID); err != nil {
		if repositories.IsNoRows(err) {
			return common.NewNotFoundError("User")
		}
		return common.NewInventoryError("failed to check user", err)
	}
	customer.ID = uuid.New()
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		if repositories.IsUniqueViolation(err) {
			return common.NewValidationError("user_id", "User already has a customer profile")
		}
		return common.NewInventoryError("failed to create customer", err)
	}
	return nil
}

func (s *customerService) GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNoRows(err) {
			return nil, common.NewNotFoundError("Customer")
		}
		return nil, common.NewInventoryError("failed to fetch customer", err)
	}
	return customer, nil
}

func (s *customerService) Update(ctx context.Context, customer *models.Customer) error {
	if customer.Name == "" {
		return common.NewValidationError("name", "This field is required")
	}
	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return common.NewInventoryError("failed to update customer", err)
	}
	return nil
}

func (s *customerService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		if repositories.IsForeignKeyViolation(err) {
			return common.NewBusinessRuleError("Customer has sales orders and cannot be deleted")
		}
		return common.NewInventoryError("failed to delete customer", err)
	}
	return nil
}

func (s *customerService) List(ctx context.Context, limit, offset int) ([]*models.Customer, error) {
	return s.customerRepo.List(ctx, limit, offset)
}
