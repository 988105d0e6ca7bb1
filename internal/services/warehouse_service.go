package services

import (
	"context"

	"github.com/google/uuid"

	"stockflow/internal/common"
	"stockflow/internal/models"
	"stockflow/internal/repositories"
)

type WarehouseService interface {
	Create(ctx context.Context, warehouse *models.Warehouse) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Warehouse, error)
	Update(ctx context.Context, warehouse *models.Warehouse) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Warehouse, error)

	CreateLocation(ctx context.Context, location *models.Location) error
	GetLocation(ctx context.Context, id uuid.UUID) (*models.Location, error)
	UpdateLocation(ctx context.Context, location *models.Location) error
	DeleteLocation(ctx context.Context, id uuid.UUID) error
	ListLocations(ctx context.Context, limit, offset int) ([]*models.Location, error)
}

type warehouseService struct {
	warehouseRepo repositories.WarehouseRepository
	locationRepo  repositories.LocationRepository
}

func NewWarehouseService(warehouseRepo repositories.WarehouseRepository, locationRepo repositories.LocationRepository) WarehouseService {
	return &warehouseService{warehouseRepo: warehouseRepo, locationRepo: locationRepo}
}

func (s *warehouseService) Create(ctx context.Context, warehouse *models.Warehouse) error {
	if warehouse.Name == "" {
		return common.NewValidationError("name", "This field is required")
	}
	if warehouse.Capacity < 0 {
		return common.NewValidationError("capacity", "Must not be negative")
	}
	warehouse.ID = uuid.New()
	if err := s.warehouseRepo.Create(ctx, warehouse); err != nil {
		return common.NewInventoryError("failed to create warehouse", err)
	}
	return nil
}

func (s *warehouseService) GetByID(ctx context.Context, id uuid.UUID) (*models.Warehouse, error) {
	warehouse, err := s.warehouseRepo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNoRows(err) {
			return nil, common.NewNotFoundError("Warehouse")
		}
		return nil, common.NewInventoryError("failed to fetch warehouse", err)
	}
	return warehouse, nil
}

func (s *warehouseService) Update(ctx context.Context, warehouse *models.Warehouse) error {
	if warehouse.Name == "" {
		return common.NewValidationError("name", "This field is required")
	}
	if warehouse.Capacity < 0 {
		return common.NewValidationError("capacity", "Must not be negative")
	}
	if err := s.warehouseRepo.Update(ctx, warehouse); err != nil {
		return common.NewInventoryError("failed to update warehouse", err)
	}
	return nil
}

func (s *warehouseService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.warehouseRepo.Delete(ctx, id); err != nil {
		if repositories.IsForeignKeyViolation(err) {
			return common.NewBusinessRuleError("Warehouse has locations and cannot be deleted")
		}
		return common.NewInventoryError("failed to delete warehouse", err)
	}
	return nil
}

func (s *warehouseService) List(ctx context.Context, limit, offset int) ([]*models.Warehouse, error) {
	return s.warehouseRepo.List(ctx, limit, offset)
}

func (s *warehouseService) CreateLocation(ctx context.Context, location *models.Location) error {
	if location.Name == "" {
		return common.NewValidationError("name", "This field is required")
	}
	if _, err := s.GetByID(ctx, location.WarehouseID); err != nil {
		return err
	}
	location.ID = uuid.New()
	if err := s.locationRepo.Create(ctx, location); err != nil {
		return common.NewInventoryError("failed to create location", err)
	}
	return nil
}

func (s *warehouseService) GetLocation(ctx context.Context, id uuid.UUID) (*models.Location, error) {
	location, err := s.locationRepo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNoRows(err) {
			return nil, common.NewNotFoundError("Location")
		}
		return nil, common.NewInventoryError("failed to fetch location", err)
	}
	return location, nil
}

func (s *warehouseService) UpdateLocation(ctx context.Context, location *models.Location) error {
	if location.Name == "" {
		return common.NewValidationError("name", "This field is required")
	}
	if err := s.locationRepo.Update(ctx, location); err != nil {
		return common.NewInventoryError("failed to update location", err)
	}
	return nil
}

func (s *warehouseService) DeleteLocation(ctx context.Context, id uuid.UUID) error {
	if err := s.locationRepo.Delete(ctx, id); err != nil {
		if repositories.IsForeignKeyViolation(err) {
			return common.NewBusinessRuleError("Location holds stock and cannot be deleted")
		}
		return common.NewInventoryError("failed to delete location", err)
	}
	return nil
}

func (s *warehouseService) ListLocations(ctx context.Context, limit, offset int) ([]*models.Location, error) {
	return s.locationRepo.List(ctx, limit, offset)
}
