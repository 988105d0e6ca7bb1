package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"stockflow/internal/models"
	"stockflow/internal/repositories"
)

// Hand-written testify mocks for the repository interfaces the service
// tests exercise.

type MockStockRepository struct {
	mock.Mock
}

func (m *MockStockRepository) Create(ctx context.Context, stock *models.Stock) error {
	args := m.Called(ctx, stock)
	return args.Error(0)
}

func (m *MockStockRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Stock, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Stock), args.Error(1)
}

func (m *MockStockRepository) GetByProductAndLocation(ctx context.Context, productID, locationID uuid.UUID) (*models.Stock, error) {
	args := m.Called(ctx, productID, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Stock), args.Error(1)
}

func (m *MockStockRepository) Update(ctx context.Context, stock *models.Stock) error {
	args := m.Called(ctx, stock)
	return args.Error(0)
}

func (m *MockStockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStockRepository) List(ctx context.Context, limit, offset int) ([]*models.Stock, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Stock), args.Error(1)
}

func (m *MockStockRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*models.Stock, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]*models.Stock), args.Error(1)
}

func (m *MockStockRepository) TotalByProduct(ctx context.Context, productID uuid.UUID) (int, error) {
	args := m.Called(ctx, productID)
	return args.Int(0), args.Error(1)
}

func (m *MockStockRepository) ListBelowThreshold(ctx context.Context, threshold int) ([]*models.Stock, error) {
	args := m.Called(ctx, threshold)
	return args.Get(0).([]*models.Stock), args.Error(1)
}

type MockStockMovementRepository struct {
	mock.Mock
}

func (m *MockStockMovementRepository) Create(ctx context.Context, movement *models.StockMovement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockStockMovementRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.StockMovement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StockMovement), args.Error(1)
}

func (m *MockStockMovementRepository) List(ctx context.Context, limit, offset int) ([]*models.StockMovement, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.StockMovement), args.Error(1)
}

func (m *MockStockMovementRepository) ListByStock(ctx context.Context, stockID uuid.UUID) ([]*models.StockMovement, error) {
	args := m.Called(ctx, stockID)
	return args.Get(0).([]*models.StockMovement), args.Error(1)
}

type MockStockAdjustmentRepository struct {
	mock.Mock
}

func (m *MockStockAdjustmentRepository) Create(ctx context.Context, adjustment *models.StockAdjustment) error {
	args := m.Called(ctx, adjustment)
	return args.Error(0)
}

func (m *MockStockAdjustmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.StockAdjustment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StockAdjustment), args.Error(1)
}

func (m *MockStockAdjustmentRepository) Update(ctx context.Context, adjustment *models.StockAdjustment) error {
	args := m.Called(ctx, adjustment)
	return args.Error(0)
}

func (m *MockStockAdjustmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStockAdjustmentRepository) List(ctx context.Context, limit, offset int) ([]*models.StockAdjustment, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.StockAdjustment), args.Error(1)
}

type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) Create(ctx context.Context, employee *models.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Employee, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) Update(ctx context.Context, employee *models.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEmployeeRepository) List(ctx context.Context, limit, offset int) ([]*models.Employee, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Employee), args.Error(1)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) GetBySKU(ctx context.Context, sku string) (*models.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) UpdateImageObject(ctx context.Context, id uuid.UUID, object *string) error {
	args := m.Called(ctx, id, object)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) List(ctx context.Context, limit, offset int) ([]*models.Product, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *MockProductRepository) Search(ctx context.Context, filter *models.ProductSearchFilter) ([]*models.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*models.Product), args.Error(1)
}

type MockLocationRepository struct {
	mock.Mock
}

func (m *MockLocationRepository) Create(ctx context.Context, location *models.Location) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

func (m *MockLocationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Location), args.Error(1)
}

func (m *MockLocationRepository) FirstByWarehouse(ctx context.Context, warehouseID uuid.UUID) (*models.Location, error) {
	args := m.Called(ctx, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Location), args.Error(1)
}

func (m *MockLocationRepository) Update(ctx context.Context, location *models.Location) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

func (m *MockLocationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLocationRepository) List(ctx context.Context, limit, offset int) ([]*models.Location, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Location), args.Error(1)
}

type MockWarehouseRepository struct {
	mock.Mock
}

func (m *MockWarehouseRepository) Create(ctx context.Context, warehouse *models.Warehouse) error {
	args := m.Called(ctx, warehouse)
	return args.Error(0)
}

func (m *MockWarehouseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Warehouse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) First(ctx context.Context) (*models.Warehouse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) Update(ctx context.Context, warehouse *models.Warehouse) error {
	args := m.Called(ctx, warehouse)
	return args.Error(0)
}

func (m *MockWarehouseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWarehouseRepository) List(ctx context.Context, limit, offset int) ([]*models.Warehouse, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Warehouse), args.Error(1)
}

type MockPurchaseOrderRepository struct {
	mock.Mock
}

func (m *MockPurchaseOrderRepository) Create(ctx context.Context, order *models.PurchaseOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) Update(ctx context.Context, order *models.PurchaseOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) List(ctx context.Context, limit, offset int) ([]*models.PurchaseOrder, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) CreateItem(ctx context.Context, item *models.PurchaseOrderItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) GetItemByID(ctx context.Context, id uuid.UUID) (*models.PurchaseOrderItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PurchaseOrderItem), args.Error(1)
}

func (m *MockPurchaseOrderRepository) UpdateItem(ctx context.Context, item *models.PurchaseOrderItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) ListItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]*models.PurchaseOrderItem, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]*models.PurchaseOrderItem), args.Error(1)
}

type MockSalesOrderRepository struct {
	mock.Mock
}

func (m *MockSalesOrderRepository) Create(ctx context.Context, order *models.SalesOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockSalesOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.SalesOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockSalesOrderRepository) Update(ctx context.Context, order *models.SalesOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockSalesOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSalesOrderRepository) List(ctx context.Context, limit, offset int) ([]*models.SalesOrder, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) CreateItem(ctx context.Context, item *models.SalesOrderItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockSalesOrderRepository) GetItemByID(ctx context.Context, id uuid.UUID) (*models.SalesOrderItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SalesOrderItem), args.Error(1)
}

func (m *MockSalesOrderRepository) UpdateItem(ctx context.Context, item *models.SalesOrderItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockSalesOrderRepository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSalesOrderRepository) ListItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]*models.SalesOrderItem, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]*models.SalesOrderItem), args.Error(1)
}

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockCustomerRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Customer, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Update(ctx context.Context, customer *models.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) List(ctx context.Context, limit, offset int) ([]*models.Customer, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Customer), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) Create(ctx context.Context, supplier *models.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) Update(ctx context.Context, supplier *models.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSupplierRepository) List(ctx context.Context, limit, offset int) ([]*models.Supplier, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Supplier), args.Error(1)
}

// stubTxRunner runs the callback against a fixed repo bundle, standing in
// for a real transaction.
type stubTxRunner struct {
	repos *repositories.TxRepos
}

func (s *stubTxRunner) Run(ctx context.Context, fn func(repos *repositories.TxRepos) error) error {
	return fn(s.repos)
}

// noopCache satisfies caching.CacheService with misses everywhere.
type noopCache struct{}

func (noopCache) GetProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	return nil, nil
}

func (noopCache) SetProduct(ctx context.Context, product *models.Product, ttl time.Duration) error {
	return nil
}

func (noopCache) DeleteProduct(ctx context.Context, productID uuid.UUID) error { return nil }

func (noopCache) GetCategory(ctx context.Context, categoryID uuid.UUID) (*models.Category, error) {
	return nil, nil
}

func (noopCache) SetCategory(ctx context.Context, category *models.Category, ttl time.Duration) error {
	return nil
}

func (noopCache) DeleteCategory(ctx context.Context, categoryID uuid.UUID) error { return nil }

func (noopCache) GetAvailability(ctx context.Context, productID uuid.UUID) (int, bool, error) {
	return 0, false, nil
}

func (noopCache) SetAvailability(ctx context.Context, productID uuid.UUID, total int, ttl time.Duration) error {
	return nil
}

func (noopCache) DeleteAvailability(ctx context.Context, productID uuid.UUID) error { return nil }

func (noopCache) InvalidateAll(ctx context.Context) error { return nil }
