package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"stockflow/internal/common"
	"stockflow/internal/models"
	"stockflow/internal/repositories"
)

type SalesServiceTestSuite struct {
	suite.Suite
	orderRepo    *MockSalesOrderRepository
	customerRepo *MockCustomerRepository
	productRepo  *MockProductRepository
	stockRepo    *MockStockRepository
	movementRepo *MockStockMovementRepository
	service      SalesOrderService
}

func (s *SalesServiceTestSuite) SetupTest() {
	s.orderRepo = new(MockSalesOrderRepository)
	s.customerRepo = new(MockCustomerRepository)
	s.productRepo = new(MockProductRepository)
	s.stockRepo = new(MockStockRepository)
	s.movementRepo = new(MockStockMovementRepository)

	runner := &stubTxRunner{repos: &repositories.TxRepos{
		Stocks:      s.stockRepo,
		Movements:   s.movementRepo,
		SalesOrders: s.orderRepo,
	}}
	s.service = NewSalesOrderService(
		s.orderRepo, s.customerRepo, s.productRepo,
		runner, noopCache{}, zerolog.Nop(),
	)
}

func (s *SalesServiceTestSuite) expectCustomer(id uuid.UUID) {
	s.customerRepo.On("GetByID", mock.Anything, id).Return(&models.Customer{ID: id}, nil)
}

func (s *SalesServiceTestSuite) expectProduct(id uuid.UUID, name string) {
	s.productRepo.On("GetByID", mock.Anything, id).Return(&models.Product{ID: id, Name: name}, nil)
}

func (s *SalesServiceTestSuite) TestCreateRejectsEmptyItems() {
	customerID := uuid.New()
	s.expectCustomer(customerID)

	err := s.service.Create(context.Background(), &models.SalesOrder{CustomerID: customerID})

	var validationErr *common.ValidationError
	s.ErrorAs(err, &validationErr)
	s.Equal("items", validationErr.Field)
}

func (s *SalesServiceTestSuite) TestCreateReportsEveryShortfall() {
	customerID := uuid.New()
	widgetID := uuid.New()
	gadgetID := uuid.New()
	s.expectCustomer(customerID)
	s.expectProduct(widgetID, "Widget")
	s.expectProduct(gadgetID, "Gadget")
	s.stockRepo.On("TotalByProduct", mock.Anything, widgetID).Return(3, nil)
	s.stockRepo.On("TotalByProduct", mock.Anything, gadgetID).Return(0, nil)

	order := &models.SalesOrder{
		CustomerID: customerID,
		Items: []*models.SalesOrderItem{
			{ProductID: widgetID, Quantity: 10},
			{ProductID: gadgetID, Quantity: 2},
		},
	}
	err := s.service.Create(context.Background(), order)

	var businessErr *common.BusinessRuleError
	s.ErrorAs(err, &businessErr)
	s.Len(businessErr.Errors, 2)
	s.Contains(businessErr.Errors, "Stock not available for product Widget. Requested: 10, Available: 3")
	s.Contains(businessErr.Errors, "Stock not available for product Gadget. Requested: 2, Available: 0")
	s.orderRepo.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
	s.stockRepo.AssertNotCalled(s.T(), "Update", mock.Anything, mock.Anything)
}

func (s *SalesServiceTestSuite) TestCreateDeductsFromSingleStockRow() {
	customerID := uuid.New()
	productID := uuid.New()
	s.expectCustomer(customerID)
	s.expectProduct(productID, "Widget")

	stock := &models.Stock{ID: uuid.New(), ProductID: productID, Quantity: 10}
	s.stockRepo.On("TotalByProduct", mock.Anything, productID).Return(10, nil)
	s.stockRepo.On("ListByProduct", mock.Anything, productID).Return([]*models.Stock{stock}, nil)
	s.stockRepo.On("Update", mock.Anything, stock).Return(nil)
	s.movementRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	s.orderRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	s.orderRepo.On("CreateItem", mock.Anything, mock.Anything).Return(nil)

	order := &models.SalesOrder{
		CustomerID: customerID,
		Items:      []*models.SalesOrderItem{{ProductID: productID, Quantity: 3}},
	}
	err := s.service.Create(context.Background(), order)

	s.NoError(err)
	s.Equal(7, stock.Quantity)
	s.Equal(models.SalesOrderOpen, order.Status)
}

func (s *SalesServiceTestSuite) TestCreateDeductsOldestStockFirst() {
	customerID := uuid.New()
	productID := uuid.New()
	s.expectCustomer(customerID)
	s.expectProduct(productID, "Widget")

	base := time.Now().Add(-72 * time.Hour)
	oldest := &models.Stock{ID: uuid.New(), ProductID: productID, Quantity: 10, CreatedAt: base}
	middle := &models.Stock{ID: uuid.New(), ProductID: productID, Quantity: 20, CreatedAt: base.Add(time.Hour)}
	newest := &models.Stock{ID: uuid.New(), ProductID: productID, Quantity: 15, CreatedAt: base.Add(2 * time.Hour)}

	s.stockRepo.On("TotalByProduct", mock.Anything, productID).Return(45, nil)
	s.stockRepo.On("ListByProduct", mock.Anything, productID).Return([]*models.Stock{oldest, middle, newest}, nil)
	s.stockRepo.On("Update", mock.Anything, oldest).Return(nil)
	s.stockRepo.On("Update", mock.Anything, middle).Return(nil)
	s.movementRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	s.orderRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	s.orderRepo.On("CreateItem", mock.Anything, mock.Anything).Return(nil)

	order := &models.SalesOrder{
		CustomerID: customerID,
		Items:      []*models.SalesOrderItem{{ProductID: productID, Quantity: 25}},
	}
	err := s.service.Create(context.Background(), order)

	s.NoError(err)
	s.Equal(0, oldest.Quantity)
	s.Equal(5, middle.Quantity)
	s.Equal(15, newest.Quantity)
	s.Equal(models.SalesOrderOpen, order.Status)
	s.stockRepo.AssertNumberOfCalls(s.T(), "Update", 2)
	s.movementRepo.AssertNumberOfCalls(s.T(), "Create", 2)
}

func (s *SalesServiceTestSuite) TestCreateRecordsOutMovementsWithOrderReference() {
	customerID := uuid.New()
	productID := uuid.New()
	s.expectCustomer(customerID)
	s.expectProduct(productID, "Widget")

	stock := &models.Stock{ID: uuid.New(), ProductID: productID, Quantity: 9}
	s.stockRepo.On("TotalByProduct", mock.Anything, productID).Return(9, nil)
	s.stockRepo.On("ListByProduct", mock.Anything, productID).Return([]*models.Stock{stock}, nil)
	s.stockRepo.On("Update", mock.Anything, stock).Return(nil)
	s.orderRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	s.orderRepo.On("CreateItem", mock.Anything, mock.Anything).Return(nil)

	order := &models.SalesOrder{
		CustomerID: customerID,
		Items:      []*models.SalesOrderItem{{ProductID: productID, Quantity: 4}},
	}

	var recorded *models.StockMovement
	s.movementRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		recorded = args.Get(1).(*models.StockMovement)
	})

	err := s.service.Create(context.Background(), order)

	s.NoError(err)
	s.Equal(5, stock.Quantity)
	s.Require().NotNil(recorded)
	s.Equal(models.MovementOut, recorded.MovementType)
	s.Equal(4, recorded.Quantity)
	s.Require().NotNil(recorded.Reference)
	s.Equal(fmt.Sprintf("SO %s", order.ID.String()), *recorded.Reference)
}

func (s *SalesServiceTestSuite) TestUpdateStatusRejectsUnknownStatus() {
	err := s.service.UpdateStatus(context.Background(), uuid.New(), "teleported")

	var validationErr *common.ValidationError
	s.ErrorAs(err, &validationErr)
	s.Equal("status", validationErr.Field)
}

func (s *SalesServiceTestSuite) TestDeleteRejectsShippedOrder() {
	orderID := uuid.New()
	s.orderRepo.On("GetByID", mock.Anything, orderID).Return(&models.SalesOrder{ID: orderID, Status: models.SalesOrderShipped}, nil)

	err := s.service.Delete(context.Background(), orderID)

	var businessErr *common.BusinessRuleError
	s.ErrorAs(err, &businessErr)
	s.orderRepo.AssertNotCalled(s.T(), "Delete", mock.Anything, mock.Anything)
}

func (s *SalesServiceTestSuite) TestAddItemRejectsShippedOrder() {
	orderID := uuid.New()
	s.orderRepo.On("GetByID", mock.Anything, orderID).Return(&models.SalesOrder{ID: orderID, Status: models.SalesOrderShipped}, nil)

	err := s.service.AddItem(context.Background(), &models.SalesOrderItem{SalesOrderID: orderID, ProductID: uuid.New(), Quantity: 2})

	var businessErr *common.BusinessRuleError
	s.ErrorAs(err, &businessErr)
	s.orderRepo.AssertNotCalled(s.T(), "CreateItem", mock.Anything, mock.Anything)
}

func (s *SalesServiceTestSuite) TestAddItemAppendsToOpenOrder() {
	orderID := uuid.New()
	s.orderRepo.On("GetByID", mock.Anything, orderID).Return(&models.SalesOrder{ID: orderID, Status: models.SalesOrderOpen}, nil)
	s.orderRepo.On("CreateItem", mock.Anything, mock.Anything).Return(nil)

	item := &models.SalesOrderItem{SalesOrderID: orderID, ProductID: uuid.New(), Quantity: 2, UnitPrice: decimal.NewFromInt(5)}
	err := s.service.AddItem(context.Background(), item)

	s.NoError(err)
	s.NotEqual(uuid.Nil, item.ID)
	s.orderRepo.AssertCalled(s.T(), "CreateItem", mock.Anything, item)
}

func (s *SalesServiceTestSuite) TestUpdateItemPersistsOnOpenOrder() {
	orderID := uuid.New()
	itemID := uuid.New()
	s.orderRepo.On("GetItemByID", mock.Anything, itemID).Return(&models.SalesOrderItem{ID: itemID, SalesOrderID: orderID, Quantity: 1}, nil)
	s.orderRepo.On("GetByID", mock.Anything, orderID).Return(&models.SalesOrder{ID: orderID, Status: models.SalesOrderOpen}, nil)
	s.orderRepo.On("UpdateItem", mock.Anything, mock.Anything).Return(nil)

	item, err := s.service.UpdateItem(context.Background(), itemID, 7, decimal.NewFromInt(3))

	s.NoError(err)
	s.Equal(7, item.Quantity)
	s.orderRepo.AssertCalled(s.T(), "UpdateItem", mock.Anything, item)
}

func (s *SalesServiceTestSuite) TestRemoveItemRejectsShippedOrder() {
	orderID := uuid.New()
	itemID := uuid.New()
	s.orderRepo.On("GetItemByID", mock.Anything, itemID).Return(&models.SalesOrderItem{ID: itemID, SalesOrderID: orderID}, nil)
	s.orderRepo.On("GetByID", mock.Anything, orderID).Return(&models.SalesOrder{ID: orderID, Status: models.SalesOrderShipped}, nil)

	err := s.service.RemoveItem(context.Background(), itemID)

	var businessErr *common.BusinessRuleError
	s.ErrorAs(err, &businessErr)
	s.orderRepo.AssertNotCalled(s.T(), "DeleteItem", mock.Anything, mock.Anything)
}

func TestSalesServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SalesServiceTestSuite))
}
