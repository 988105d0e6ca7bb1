package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"stockflow/internal/caching"
	"stockflow/internal/common"
	"stockflow/internal/models"
	"stockflow/internal/repositories"
)

const availabilityCacheTTL = 30 * time.Second

type StockService interface {
	Create(ctx context.Context, stock *models.Stock) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Stock, error)
	// Update changes the quantity only. The product/location pair of a
	// stock row is immutable once created.
	Update(ctx context.Context, id uuid.UUID, quantity int) (*models.Stock, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Stock, error)
	// Availability is the product's total quantity across locations.
	Availability(ctx context.Context, productID uuid.UUID) (int, error)

	RecordMovement(ctx context.Context, movement *models.StockMovement) error
	GetMovement(ctx context.Context, id uuid.UUID) (*models.StockMovement, error)
	ListMovements(ctx context.Context, limit, offset int) ([]*models.StockMovement, error)

	RecordAdjustment(ctx context.Context, adjustment *models.StockAdjustment) error
	GetAdjustment(ctx context.Context, id uuid.UUID) (*models.StockAdjustment, error)
	ListAdjustments(ctx context.Context, limit, offset int) ([]*models.StockAdjustment, error)
	DeleteAdjustment(ctx context.Context, id uuid.UUID) error
}

type stockService struct {
	stockRepo      repositories.StockRepository
	movementRepo   repositories.StockMovementRepository
	adjustmentRepo repositories.StockAdjustmentRepository
	employeeRepo   repositories.EmployeeRepository
	productRepo    repositories.ProductRepository
	locationRepo   repositories.LocationRepository
	cache          caching.CacheService
	log            zerolog.Logger
}

func NewStockService(
	stockRepo repositories.StockRepository,
	movementRepo repositories.StockMovementRepository,
	adjustmentRepo repositories.StockAdjustmentRepository,
	employeeRepo repositories.EmployeeRepository,
	productRepo repositories.ProductRepository,
	locationRepo repositories.LocationRepository,
	cache caching.CacheService,
	log zerolog.Logger,
) StockService {
	return &stockService{
		stockRepo:      stockRepo,
		movementRepo:   movementRepo,
		adjustmentRepo: adjustmentRepo,
		employeeRepo:   employeeRepo,
		productRepo:    productRepo,
		locationRepo:   locationRepo,
		cache:          cache,
		log:            log,
	}
}

func (s *stockService) Create(ctx context.Context, stock *models.Stock) error {
	if stock.Quantity < 0 {
		return common.NewValidationError("quantity", "Must not be negative")
	}
	if _, err := s.productRepo.GetByID(ctx, stock.ProductID); err != nil {
		if repositories.IsNoRows(err) {
			return common.NewNotFoundError("Product")
		}
		return common.NewInventoryError("failed to check product", err)
	}
	if _, err := s.locationRepo.GetByID(ctx, stock.LocationID); err != nil {
		if repositories.IsNoRows(err) {
			return common.NewNotFoundError("Location")
		}
		return common.NewInventoryError("failed to check location", err)
	}

	stock.ID = uuid.New()
	if err := s.stockRepo.Create(ctx, stock); err != nil {
		if repositories.IsUniqueViolation(err) {
			return common.NewValidationError("location_id", "Stock for this product already exists at this location")
		}
		return common.NewInventoryError("failed to create stock", err)
	}
	s.invalidateAvailability(ctx, stock.ProductID)
	return nil
}

func (s *stockService) GetByID(ctx context.Context, id uuid.UUID) (*models.Stock, error) {
	stock, err := s.stockRepo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNoRows(err) {
			return nil, common.NewNotFoundError("Stock")
		}
		return nil, common.NewInventoryError("failed to fetch stock", err)
	}
	return stock, nil
}

func (s *stockService) Update(ctx context.Context, id uuid.UUID, quantity int) (*models.Stock, error) {
	if quantity < 0 {
		return nil, common.NewValidationError("quantity", "Must not be negative")
	}
	stock, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	stock.Quantity = quantity
	if err := s.stockRepo.Update(ctx, stock); err != nil {
		return nil, common.NewInventoryError("failed to update stock", err)
	}
	s.invalidateAvailability(ctx, stock.ProductID)
	return stock, nil
}

func (s *stockService) Delete(ctx context.Context, id uuid.UUID) error {
	stock, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.stockRepo.Delete(ctx, id); err != nil {
		return common.NewInventoryError("failed to delete stock", err)
	}
	s.invalidateAvailability(ctx, stock.ProductID)
	return nil
}

func (s *stockService) List(ctx context.Context, limit, offset int) ([]*models.Stock, error) {
	return s.stockRepo.List(ctx, limit, offset)
}

func (s *stockService) Availability(ctx context.Context, productID uuid.UUID) (int, error) {
	if total, hit, err := s.cache.GetAvailability(ctx, productID); err == nil && hit {
		return total, nil
	}
	total, err := s.stockRepo.TotalByProduct(ctx, productID)
	if err != nil {
		return 0, common.NewInventoryError("failed to sum stock", err)
	}
	if err := s.cache.SetAvailability(ctx, productID, total, availabilityCacheTTL); err != nil {
		s.log.Warn().Err(err).Str("product_id", productID.String()).Msg("availability cache write failed")
	}
	return total, nil
}

func (s *stockService) RecordMovement(ctx context.Context, movement *models.StockMovement) error {
	if !models.ValidMovementType(movement.MovementType) {
		return common.NewValidationError("movement_type", "Must be one of IN, OUT, TRANSFER")
	}
	if movement.Quantity <= 0 {
		return common.NewValidationError("quantity", "Must be positive")
	}
	stock, err := s.GetByID(ctx, movement.StockID)
	if err != nil {
		return err
	}

	movement.ID = uuid.New()
	if err := s.movementRepo.Create(ctx, movement); err != nil {
		return common.NewInventoryError("failed to record movement", err)
	}
	s.invalidateAvailability(ctx, stock.ProductID)
	return nil
}

func (s *stockService) GetMovement(ctx context.Context, id uuid.UUID) (*models.StockMovement, error) {
	movement, err := s.movementRepo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNoRows(err) {
			return nil, common.NewNotFoundError("Stock movement")
		}
		return nil, common.NewInventoryError("failed to fetch movement", err)
	}
	return movement, nil
}

func (s *stockService) ListMovements(ctx context.Context, limit, offset int) ([]*models.StockMovement, error) {
	return s.movementRepo.List(ctx, limit, offset)
}

func (s *stockService) RecordAdjustment(ctx context.Context, adjustment *models.StockAdjustment) error {
	if !models.ValidAdjustmentType(adjustment.AdjustmentType) {
		return common.NewValidationError("adjustment_type", "Must be one of ADD, REMOVE, CORRECT")
	}
	if adjustment.Quantity <= 0 {
		return common.NewValidationError("quantity", "Must be positive")
	}
	if _, err := s.GetByID(ctx, adjustment.StockID); err != nil {
		return err
	}
	if adjustment.ApprovedBy != nil {
		approver, err := s.employeeRepo.GetByID(ctx, *adjustment.ApprovedBy)
		if err != nil {
			if repositories.IsNoRows(err) {
				return common.NewNotFoundError("Approving employee")
			}
			return common.NewInventoryError("failed to check approver", err)
		}
		if !approver.Role.CanApproveAdjustments() {
			return common.NewPermissionDeniedError("Only admins and managers can approve adjustments")
		}
	}

	adjustment.ID = uuid.New()
	if err := s.adjustmentRepo.Create(ctx, adjustment); err != nil {
		return common.NewInventoryError("failed to record adjustment", err)
	}
	return nil
}

func (s *stockService) GetAdjustment(ctx context.Context, id uuid.UUID) (*models.StockAdjustment, error) {
	adjustment, err := s.adjustmentRepo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNoRows(err) {
			return nil, common.NewNotFoundError("Stock adjustment")
		}
		return nil, common.NewInventoryError("failed to fetch adjustment", err)
	}
	return adjustment, nil
}

func (s *stockService) ListAdjustments(ctx context.Context, limit, offset int) ([]*models.StockAdjustment, error) {
	return s.adjustmentRepo.List(ctx, limit, offset)
}

func (s *stockService) DeleteAdjustment(ctx context.Context, id uuid.UUID) error {
	return s.adjustmentRepo.Delete(ctx, id)
}

func (s *stockService) invalidateAvailability(ctx context.Context, productID uuid.UUID) {
	if err := s.cache.DeleteAvailability(ctx, productID); err != nil {
		s.log.Warn().Err(err).Str("product_id", productID.String()).Msg("availability cache invalidation failed")
	}
}
