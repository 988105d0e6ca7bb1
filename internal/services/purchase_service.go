package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"stockflow/internal/caching"
	"stockflow/internal/common"
	"stockflow/internal/models"
	"stockflow/internal/repositories"
)

type PurchaseOrderService interface {
	Create(ctx context.Context, order *models.PurchaseOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error)
	Update(ctx context.Context, order *models.PurchaseOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.PurchaseOrder, error)
	// Receive books every line of an open order into stock and marks the
	// order received. Receiving twice is rejected.
	Receive(ctx context.Context, id uuid.UUID) error

	// Item mutations are allowed on open orders only.
	AddItem(ctx context.Context, item *models.PurchaseOrderItem) error
	GetItem(ctx context.Context, itemID uuid.UUID) (*models.PurchaseOrderItem, error)
	UpdateItem(ctx context.Context, itemID uuid.UUID, quantity int, unitPrice decimal.Decimal) (*models.PurchaseOrderItem, error)
	RemoveItem(ctx context.Context, itemID uuid.UUID) error
	ListItems(ctx context.Context, orderID uuid.UUID) ([]*models.PurchaseOrderItem, error)
}

type purchaseOrderService struct {
	orderRepo    repositories.PurchaseOrderRepository
	supplierRepo repositories.SupplierRepository
	productRepo  repositories.ProductRepository
	txRunner     repositories.TxRunner
	cache        caching.CacheService
	log          zerolog.Logger
}

func NewPurchaseOrderService(
	orderRepo repositories.PurchaseOrderRepository,
	supplierRepo repositories.SupplierRepository,
	productRepo repositories.ProductRepository,
	txRunner repositories.TxRunner,
	cache caching.CacheService,
	log zerolog.Logger,
) PurchaseOrderService {
	return &purchaseOrderService{
		orderRepo:    orderRepo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		txRunner:     txRunner,
		cache:        cache,
		log:          log,
	}
}

func (s *purchaseOrderService) Create(ctx context.Context, order *models.PurchaseOrder) error {
	if _, err := s.supplierRepo.GetByID(ctx, order.SupplierID); err != nil {
		if repositories.IsNoRows(err) {
			return common.NewNotFoundError("Supplier")
		}
		return common.NewInventoryError("failed to check supplier", err)
	}
	if len(order.Items) == 0 {
		return common.NewValidationError("items", "At least one item is required")
	}
	for _, item := range order.Items {
		if item.Quantity <= 0 {
			return common.NewValidationError("quantity", "Must be positive")
		}
		if _, err := s.productRepo.GetByID(ctx, item.ProductID); err != nil {
			if repositories.IsNoRows(err) {
				return common.NewNotFoundError("Product")
			}
			return common.NewInventoryError("failed to check product", err)
		}
	}

	order.ID = uuid.New()
	order.Status = models.PurchaseOrderOpen

	err := s.txRunner.Run(ctx, func(repos *repositories.TxRepos) error {
		if err := repos.PurchaseOrders.Create(ctx, order); err != nil {
			return err
		}
		for _, item := range order.Items {
			item.ID = uuid.New()
			item.PurchaseOrderID = order.ID
			if err := repos.PurchaseOrders.CreateItem(ctx, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return common.NewInventoryError("failed to create purchase order", err)
	}
	return nil
}

func (s *purchaseOrderService) GetByID(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNoRows(err) {
			return nil, common.NewNotFoundError("Purchase order")
		}
		return nil, common.NewInventoryError("failed to fetch purchase order", err)
	}
	return order, nil
}

func (s *purchaseOrderService) Update(ctx context.Context, order *models.PurchaseOrder) error {
	existing, err := s.GetByID(ctx, order.ID)
	if err != nil {
		return err
	}
	if existing.Status == models.PurchaseOrderReceived {
		return common.NewBusinessRuleError("Received orders cannot be modified")
	}
	if !models.ValidPurchaseOrderStatus(order.Status) {
		return common.NewValidationError("status", "Must be one of open, received, cancelled")
	}
	if order.Status == models.PurchaseOrderReceived {
		// Receiving goes through Receive so stock gets incremented.
		return common.NewBusinessRuleError("Use the receive endpoint to mark an order received")
	}
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return common.NewInventoryError("failed to update purchase order", err)
	}
	return nil
}

func (s *purchaseOrderService) Delete(ctx context.Context, id uuid.UUID) error {
	order, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if order.Status == models.PurchaseOrderReceived {
		return common.NewBusinessRuleError("Received orders cannot be deleted")
	}
	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return common.NewInventoryError("failed to delete purchase order", err)
	}
	return nil
}

func (s *purchaseOrderService) List(ctx context.Context, limit, offset int) ([]*models.PurchaseOrder, error) {
	return s.orderRepo.List(ctx, limit, offset)
}

func (s *purchaseOrderService) Receive(ctx context.Context, id uuid.UUID) error {
	order, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if order.Status == models.PurchaseOrderReceived {
		return common.NewBusinessRuleError("Already received")
	}
	if order.Status == models.PurchaseOrderCancelled {
		return common.NewBusinessRuleError("Cancelled orders cannot be received")
	}

	err = s.txRunner.Run(ctx, func(repos *repositories.TxRepos) error {
		warehouse, err := repos.Warehouses.First(ctx)
		if err != nil {
			if repositories.IsNoRows(err) {
				return common.NewBusinessRuleError("No warehouse available to receive stock into")
			}
			return err
		}

		location, err := repos.Locations.FirstByWarehouse(ctx, warehouse.ID)
		if err != nil {
			if !repositories.IsNoRows(err) {
				return err
			}
			location = &models.Location{
				ID:          uuid.New(),
				WarehouseID: warehouse.ID,
				Name:        models.DefaultLocationName,
				Type:        models.DefaultLocationType,
			}
			if err := repos.Locations.Create(ctx, location); err != nil {
				return err
			}
		}

		reference := fmt.Sprintf("PO %s", order.ID.String())
		for _, item := range order.Items {
			stock, err := repos.Stocks.GetByProductAndLocation(ctx, item.ProductID, location.ID)
			if err != nil {
				if !repositories.IsNoRows(err) {
					return err
				}
				stock = &models.Stock{
					ID:         uuid.New(),
					ProductID:  item.ProductID,
					LocationID: location.ID,
					Quantity:   0,
				}
				if err := repos.Stocks.Create(ctx, stock); err != nil {
					return err
				}
			}
			stock.Quantity += item.Quantity
			if err := repos.Stocks.Update(ctx, stock); err != nil {
				return err
			}
			movement := &models.StockMovement{
				ID:           uuid.New(),
				StockID:      stock.ID,
				MovementType: models.MovementIn,
				Quantity:     item.Quantity,
				Reference:    &reference,
			}
			if err := repos.Movements.Create(ctx, movement); err != nil {
				return err
			}
		}

		return repos.PurchaseOrders.UpdateStatus(ctx, order.ID, models.PurchaseOrderReceived)
	})
	if err != nil {
		var businessErr *common.BusinessRuleError
		if errors.As(err, &businessErr) {
			return businessErr
		}
		return common.NewInventoryError("failed to receive purchase order", err)
	}

	for _, item := range order.Items {
		if cacheErr := s.cache.DeleteAvailability(ctx, item.ProductID); cacheErr != nil {
			s.log.Warn().Err(cacheErr).Str("product_id", item.ProductID.String()).Msg("availability cache invalidation failed")
		}
	}
	return nil
}

func (s *purchaseOrderService) AddItem(ctx context.Context, item *models.PurchaseOrderItem) error {
	order, err := s.GetByID(ctx, item.PurchaseOrderID)
	if err != nil {
		return err
	}
	if order.Status != models.PurchaseOrderOpen {
		return common.NewBusinessRuleError("Items can only be added to open orders")
	}
	if item.Quantity <= 0 {
		return common.NewValidationError("quantity", "Must be positive")
	}
	item.ID = uuid.New()
	if err := s.orderRepo.CreateItem(ctx, item); err != nil {
		if repositories.IsForeignKeyViolation(err) {
			return common.NewNotFoundError("Product")
		}
		return common.NewInventoryError("failed to add item", err)
	}
	return nil
}

func (s *purchaseOrderService) GetItem(ctx context.Context, itemID uuid.UUID) (*models.PurchaseOrderItem, error) {
	item, err := s.orderRepo.GetItemByID(ctx, itemID)
	if err != nil {
		if repositories.IsNoRows(err) {
			return nil, common.NewNotFoundError("Purchase order item")
		}
		return nil, common.NewInventoryError("failed to fetch item", err)
	}
	return item, nil
}

func (s *purchaseOrderService) UpdateItem(ctx context.Context, itemID uuid.UUID, quantity int, unitPrice decimal.Decimal) (*models.PurchaseOrderItem, error) {
	if quantity <= 0 {
		return nil, common.NewValidationError("quantity", "Must be positive")
	}
	item, err := s.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	order, err := s.GetByID(ctx, item.PurchaseOrderID)
	if err != nil {
		return nil, err
	}
	if order.Status != models.PurchaseOrderOpen {
		return nil, common.NewBusinessRuleError("Items can only be changed on open orders")
	}
	item.Quantity = quantity
	item.UnitPrice = unitPrice
	if err := s.orderRepo.UpdateItem(ctx, item); err != nil {
		return nil, common.NewInventoryError("failed to update item", err)
	}
	return item, nil
}

func (s *purchaseOrderService) RemoveItem(ctx context.Context, itemID uuid.UUID) error {
	item, err := s.orderRepo.GetItemByID(ctx, itemID)
	if err != nil {
		if repositories.IsNoRows(err) {
			return common.NewNotFoundError("Purchase order item")
		}
		return common.NewInventoryError("failed to fetch item", err)
	}
	order, err := s.GetByID(ctx, item.PurchaseOrderID)
	if err != nil {
		return err
	}
	if order.Status != models.PurchaseOrderOpen {
		return common.NewBusinessRuleError("Items can only be removed from open orders")
	}
	return s.orderRepo.DeleteItem(ctx, itemID)
}

func (s *purchaseOrderService) ListItems(ctx context.Context, orderID uuid.UUID) ([]*models.PurchaseOrderItem, error) {
	if _, err := s.GetByID(ctx, orderID); err != nil {
		return nil, err
	}
	return s.orderRepo.ListItemsByOrder(ctx, orderID)
}
