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

type SalesOrderService interface {
	// Create checks availability for every line, then deducts stock
	// oldest-first and persists the order. Any shortfall rejects the whole
	// order and leaves stock untouched.
	Create(ctx context.Context, order *models.SalesOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.SalesOrder, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.SalesOrder, error)

	// Item mutations are allowed on open orders only. Stock is deducted at
	// order creation; line edits afterwards do not touch the ledger.
	AddItem(ctx context.Context, item *models.SalesOrderItem) error
	GetItem(ctx context.Context, itemID uuid.UUID) (*models.SalesOrderItem, error)
	UpdateItem(ctx context.Context, itemID uuid.UUID, quantity int, unitPrice decimal.Decimal) (*models.SalesOrderItem, error)
	RemoveItem(ctx context.Context, itemID uuid.UUID) error
	ListItems(ctx context.Context, orderID uuid.UUID) ([]*models.SalesOrderItem, error)
}

type salesOrderService struct {
	orderRepo    repositories.SalesOrderRepository
	customerRepo repositories.CustomerRepository
	productRepo  repositories.ProductRepository
	txRunner     repositories.TxRunner
	cache        caching.CacheService
	log          zerolog.Logger
}

func NewSalesOrderService(
	orderRepo repositories.SalesOrderRepository,
	customerRepo repositories.CustomerRepository,
	productRepo repositories.ProductRepository,
	txRunner repositories.TxRunner,
	cache caching.CacheService,
	log zerolog.Logger,
) SalesOrderService {
	return &salesOrderService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		txRunner:     txRunner,
		cache:        cache,
		log:          log,
	}
}

func (s *salesOrderService) Create(ctx context.Context, order *models.SalesOrder) error {
	if _, err := s.customerRepo.GetByID(ctx, order.CustomerID); err != nil {
		if repositories.IsNoRows(err) {
			return common.NewNotFoundError("Customer")
		}
		return common.NewInventoryError("failed to check customer", err)
	}
	if len(order.Items) == 0 {
		return common.NewValidationError("items", "At least one item is required")
	}

	products := make(map[uuid.UUID]*models.Product, len(order.Items))
	for _, item := range order.Items {
		if item.Quantity <= 0 {
			return common.NewValidationError("quantity", "Must be positive")
		}
		product, err := s.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			if repositories.IsNoRows(err) {
				return common.NewNotFoundError("Product")
			}
			return common.NewInventoryError("failed to check product", err)
		}
		products[item.ProductID] = product
	}

	order.ID = uuid.New()
	order.Status = models.SalesOrderOpen

	err := s.txRunner.Run(ctx, func(repos *repositories.TxRepos) error {
		// Availability pass first. Every insufficient line is reported, not
		// just the first one.
		var shortfalls []string
		for _, item := range order.Items {
			available, err := repos.Stocks.TotalByProduct(ctx, item.ProductID)
			if err != nil {
				return err
			}
			if available < item.Quantity {
				shortfalls = append(shortfalls, fmt.Sprintf(
					"Stock not available for product %s. Requested: %d, Available: %d",
					products[item.ProductID].Name, item.Quantity, available,
				))
			}
		}
		if len(shortfalls) > 0 {
			return common.NewBusinessRuleError("Stock not available", shortfalls...)
		}

		reference := fmt.Sprintf("SO %s", order.ID.String())
		for _, item := range order.Items {
			if err := s.deductFIFO(ctx, repos, item, reference); err != nil {
				return err
			}
		}

		if err := repos.SalesOrders.Create(ctx, order); err != nil {
			return err
		}
		for _, item := range order.Items {
			item.ID = uuid.New()
			item.SalesOrderID = order.ID
			if err := repos.SalesOrders.CreateItem(ctx, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		var businessErr *common.BusinessRuleError
		if errors.As(err, &businessErr) {
			return businessErr
		}
		return common.NewInventoryError("failed to create sales order", err)
	}

	for _, item := range order.Items {
		if cacheErr := s.cache.DeleteAvailability(ctx, item.ProductID); cacheErr != nil {
			s.log.Warn().Err(cacheErr).Str("product_id", item.ProductID.String()).Msg("availability cache invalidation failed")
		}
	}
	return nil
}

// deductFIFO drains stock rows oldest-first until the line quantity is
// satisfied. The availability pass already guaranteed enough total stock.
func (s *salesOrderService) deductFIFO(ctx context.Context, repos *repositories.TxRepos, item *models.SalesOrderItem, reference string) error {
	remaining := item.Quantity
	stocks, err := repos.Stocks.ListByProduct(ctx, item.ProductID)
	if err != nil {
		return err
	}
	for _, stock := range stocks {
		if remaining == 0 {
			break
		}
		if stock.Quantity == 0 {
			continue
		}
		take := stock.Quantity
		if take > remaining {
			take = remaining
		}
		stock.Quantity -= take
		remaining -= take
		if err := repos.Stocks.Update(ctx, stock); err != nil {
			return err
		}
		movement := &models.StockMovement{
			ID:           uuid.New(),
			StockID:      stock.ID,
			MovementType: models.MovementOut,
			Quantity:     take,
			Reference:    &reference,
		}
		if err := repos.Movements.Create(ctx, movement); err != nil {
			return err
		}
	}
	if remaining > 0 {
		return fmt.Errorf("stock drained concurrently for product %s", item.ProductID)
	}
	return nil
}

func (s *salesOrderService) GetByID(ctx context.Context, id uuid.UUID) (*models.SalesOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNoRows(err) {
			return nil, common.NewNotFoundError("Sales order")
		}
		return nil, common.NewInventoryError("failed to fetch sales order", err)
	}
	return order, nil
}

func (s *salesOrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	if !models.ValidSalesOrderStatus(status) {
		return common.NewValidationError("status", "Must be one of open, shipped, cancelled")
	}
	order, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if order.Status == models.SalesOrderShipped && status != models.SalesOrderShipped {
		return common.NewBusinessRuleError("Shipped orders cannot change status")
	}
	if err := s.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		return common.NewInventoryError("failed to update sales order", err)
	}
	return nil
}

func (s *salesOrderService) Delete(ctx context.Context, id uuid.UUID) error {
	order, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if order.Status == models.SalesOrderShipped {
		return common.NewBusinessRuleError("Shipped orders cannot be deleted")
	}
	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return common.NewInventoryError("failed to delete sales order", err)
	}
	return nil
}

func (s *salesOrderService) List(ctx context.Context, limit, offset int) ([]*models.SalesOrder, error) {
	return s.orderRepo.List(ctx, limit, offset)
}

func (s *salesOrderService) AddItem(ctx context.Context, item *models.SalesOrderItem) error {
	order, err := s.GetByID(ctx, item.SalesOrderID)
	if err != nil {
		return err
	}
	if order.Status != models.SalesOrderOpen {
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

func (s *salesOrderService) GetItem(ctx context.Context, itemID uuid.UUID) (*models.SalesOrderItem, error) {
	item, err := s.orderRepo.GetItemByID(ctx, itemID)
	if err != nil {
		if repositories.IsNoRows(err) {
			return nil, common.NewNotFoundError("Sales order item")
		}
		return nil, common.NewInventoryError("failed to fetch item", err)
	}
	return item, nil
}

func (s *salesOrderService) UpdateItem(ctx context.Context, itemID uuid.UUID, quantity int, unitPrice decimal.Decimal) (*models.SalesOrderItem, error) {
	if quantity <= 0 {
		return nil, common.NewValidationError("quantity", "Must be positive")
	}
	item, err := s.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	order, err := s.GetByID(ctx, item.SalesOrderID)
	if err != nil {
		return nil, err
	}
	if order.Status != models.SalesOrderOpen {
		return nil, common.NewBusinessRuleError("Items can only be changed on open orders")
	}
	item.Quantity = quantity
	item.UnitPrice = unitPrice
	if err := s.orderRepo.UpdateItem(ctx, item); err != nil {
		return nil, common.NewInventoryError("failed to update item", err)
	}
	return item, nil
}

func (s *salesOrderService) RemoveItem(ctx context.Context, itemID uuid.UUID) error {
	item, err := s.GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	order, err := s.GetByID(ctx, item.SalesOrderID)
	if err != nil {
		return err
	}
	if order.Status != models.SalesOrderOpen {
		return common.NewBusinessRuleError("Items can only be removed from open orders")
	}
	if err := s.orderRepo.DeleteItem(ctx, itemID); err != nil {
		return common.NewInventoryError("failed to remove item", err)
	}
	return nil
}

func (s *salesOrderService) ListItems(ctx context.Context, orderID uuid.UUID) ([]*models.SalesOrderItem, error) {
	if _, err := s.GetByID(ctx, orderID); err != nil {
		return nil, err
	}
	return s.orderRepo.ListItemsByOrder(ctx, orderID)
}
