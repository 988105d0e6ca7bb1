package services

import (
	"context"

	"github.com/google/uuid"

	"stockflow/internal/common"
	"stockflow/internal/models"
	"stockflow/internal/repositories"
)

type SupplierService interface {
	Create(ctx context.Context, supplier *models.Supplier) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error)
	Update(ctx context.Context, supplier *models.Supplier) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Supplier, error)

	LinkProduct(ctx context.Context, link *models.SupplierProduct) error
	UnlinkProduct(ctx context.Context, linkID uuid.UUID) error
	ListProducts(ctx context.Context, supplierID uuid.UUID) ([]*models.SupplierProduct, error)
}

type supplierService struct {
	supplierRepo repositories.SupplierRepository
	linkRepo     repositories.SupplierProductRepository
	productRepo  repositories.ProductRepository
}

func NewSupplierService(supplierRepo repositories.SupplierRepository, linkRepo repositories.SupplierProductRepository, productRepo repositories.ProductRepository) SupplierService {
	return &supplierService{supplierRepo: supplierRepo, linkRepo: linkRepo, productRepo: productRepo}
}

func (s *supplierService) Create(ctx context.Context, supplier *models.Supplier) error {
	if supplier.Name == "" {
		return common.NewValidationError("name", "This field is required")
	}
	supplier.ID = uuid.New()
	if err := s.supplierRepo.Create(ctx, supplier); err != nil {
		return common.NewInventoryError("failed to create supplier", err)
	}
	return nil
}

func (s *supplierService) GetByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNoRows(err) {
			return nil, common.NewNotFoundError("Supplier")
		}
		return nil, common.NewInventoryError("failed to fetch supplier", err)
	}
	return supplier, nil
}

func (s *supplierService) Update(ctx context.Context, supplier *models.Supplier) error {
	if supplier.Name == "" {
		return common.NewValidationError("name", "This field is required")
	}
	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		return common.NewInventoryError("failed to update supplier", err)
	}
	return nil
}

func (s *supplierService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.supplierRepo.Delete(ctx, id); err != nil {
		if repositories.IsForeignKeyViolation(err) {
			return common.NewBusinessRuleError("Supplier is referenced by purchase orders and cannot be deleted")
		}
		return common.NewInventoryError("failed to delete supplier", err)
	}
	return nil
}

func (s *supplierService) List(ctx context.Context, limit, offset int) ([]*models.Supplier, error) {
	return s.supplierRepo.List(ctx, limit, offset)
}

func (s *supplierService) LinkProduct(ctx context.Context, link *models.SupplierProduct) error {
	if _, err := s.GetByID(ctx, link.SupplierID); err != nil {
		return err
	}
	if _, err := s.productRepo.GetByID(ctx, link.ProductID); err != nil {
		if repositories.IsNoRows(err) {
			return common.NewNotFoundError("Product")
		}
		return common.NewInventoryError("failed to check product", err)
	}
	link.ID = uuid.New()
	if err := s.linkRepo.Create(ctx, link); err != nil {
		if repositories.IsUniqueViolation(err) {
			return common.NewValidationError("product_id", "Product is already linked to this supplier")
		}
		return common.NewInventoryError("failed to link product", err)
	}
	return nil
}

func (s *supplierService) UnlinkProduct(ctx context.Context, linkID uuid.UUID) error {
	return s.linkRepo.Delete(ctx, linkID)
}

func (s *supplierService) ListProducts(ctx context.Context, supplierID uuid.UUID) ([]*models.SupplierProduct, error) {
	return s.linkRepo.ListBySupplier(ctx, supplierID)
}
