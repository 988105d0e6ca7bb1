package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"stockflow/internal/common"
	"stockflow/internal/models"
)

type StockServiceTestSuite struct {
	suite.Suite
	stockRepo      *MockStockRepository
	movementRepo   *MockStockMovementRepository
	adjustmentRepo *MockStockAdjustmentRepository
	employeeRepo   *MockEmployeeRepository
	productRepo    *MockProductRepository
	locationRepo   *MockLocationRepository
	service        StockService
}

func (s *StockServiceTestSuite) SetupTest() {
	s.stockRepo = new(MockStockRepository)
	s.movementRepo = new(MockStockMovementRepository)
	s.adjustmentRepo = new(MockStockAdjustmentRepository)
	s.employeeRepo = new(MockEmployeeRepository)
	s.productRepo = new(MockProductRepository)
	s.locationRepo = new(MockLocationRepository)
	s.service = NewStockService(
		s.stockRepo, s.movementRepo, s.adjustmentRepo,
		s.employeeRepo, s.productRepo, s.locationRepo,
		noopCache{}, zerolog.Nop(),
	)
}

func (s *StockServiceTestSuite) TestCreateRejectsNegativeQuantity() {
	stock := &models.Stock{ProductID: uuid.New(), LocationID: uuid.New(), Quantity: -5}

	err := s.service.Create(context.Background(), stock)

	var validationErr *common.ValidationError
	s.ErrorAs(err, &validationErr)
	s.Equal("quantity", validationErr.Field)
	s.stockRepo.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *StockServiceTestSuite) TestCreateRejectsDuplicateProductLocationPair() {
	stock := &models.Stock{ProductID: uuid.New(), LocationID: uuid.New(), Quantity: 10}
	s.productRepo.On("GetByID", mock.Anything, stock.ProductID).Return(&models.Product{ID: stock.ProductID}, nil)
	s.locationRepo.On("GetByID", mock.Anything, stock.LocationID).Return(&models.Location{ID: stock.LocationID}, nil)
	s.stockRepo.On("Create", mock.Anything, mock.Anything).Return(&pgconn.PgError{Code: "23505"})

	err := s.service.Create(context.Background(), stock)

	var validationErr *common.ValidationError
	s.ErrorAs(err, &validationErr)
	s.Equal("location_id", validationErr.Field)
}

func (s *StockServiceTestSuite) TestCreateRejectsUnknownProduct() {
	stock := &models.Stock{ProductID: uuid.New(), LocationID: uuid.New(), Quantity: 1}
	s.productRepo.On("GetByID", mock.Anything, stock.ProductID).Return(nil, pgx.ErrNoRows)

	err := s.service.Create(context.Background(), stock)

	var notFoundErr *common.NotFoundError
	s.ErrorAs(err, &notFoundErr)
}

func (s *StockServiceTestSuite) TestRecordMovementRejectsUnknownType() {
	movement := &models.StockMovement{StockID: uuid.New(), MovementType: "SIDEWAYS", Quantity: 5}

	err := s.service.RecordMovement(context.Background(), movement)

	var validationErr *common.ValidationError
	s.ErrorAs(err, &validationErr)
	s.Equal("movement_type", validationErr.Field)
}

func (s *StockServiceTestSuite) TestRecordMovementRejectsNonPositiveQuantity() {
	movement := &models.StockMovement{StockID: uuid.New(), MovementType: models.MovementIn, Quantity: 0}

	err := s.service.RecordMovement(context.Background(), movement)

	var validationErr *common.ValidationError
	s.ErrorAs(err, &validationErr)
	s.Equal("quantity", validationErr.Field)
}

func (s *StockServiceTestSuite) TestRecordMovementNeverMutatesStockQuantity() {
	stockID := uuid.New()
	stock := &models.Stock{ID: stockID, ProductID: uuid.New(), Quantity: 40}
	s.stockRepo.On("GetByID", mock.Anything, stockID).Return(stock, nil)
	s.movementRepo.On("Create", mock.Anything, mock.MatchedBy(func(m *models.StockMovement) bool {
		return m.StockID == stockID && m.MovementType == models.MovementOut && m.Quantity == 7
	})).Return(nil)

	movement := &models.StockMovement{StockID: stockID, MovementType: models.MovementOut, Quantity: 7}
	err := s.service.RecordMovement(context.Background(), movement)

	s.NoError(err)
	s.Equal(40, stock.Quantity)
	s.stockRepo.AssertNotCalled(s.T(), "Update", mock.Anything, mock.Anything)
}

func (s *StockServiceTestSuite) TestRecordAdjustmentRejectsEmployeeApprover() {
	stockID := uuid.New()
	approverID := uuid.New()
	s.stockRepo.On("GetByID", mock.Anything, stockID).Return(&models.Stock{ID: stockID}, nil)
	s.employeeRepo.On("GetByID", mock.Anything, approverID).Return(&models.Employee{ID: approverID, Role: models.RoleEmployee}, nil)

	adjustment := &models.StockAdjustment{
		StockID:        stockID,
		AdjustmentType: models.AdjustmentAdd,
		Quantity:       3,
		ApprovedBy:     &approverID,
	}
	err := s.service.RecordAdjustment(context.Background(), adjustment)

	var permissionErr *common.PermissionDeniedError
	s.ErrorAs(err, &permissionErr)
	s.adjustmentRepo.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *StockServiceTestSuite) TestRecordAdjustmentAcceptsManagerApprover() {
	stockID := uuid.New()
	approverID := uuid.New()
	s.stockRepo.On("GetByID", mock.Anything, stockID).Return(&models.Stock{ID: stockID}, nil)
	s.employeeRepo.On("GetByID", mock.Anything, approverID).Return(&models.Employee{ID: approverID, Role: models.RoleManager}, nil)
	s.adjustmentRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	adjustment := &models.StockAdjustment{
		StockID:        stockID,
		AdjustmentType: models.AdjustmentCorrect,
		Quantity:       12,
		ApprovedBy:     &approverID,
	}
	err := s.service.RecordAdjustment(context.Background(), adjustment)

	s.NoError(err)
	s.NotEqual(uuid.Nil, adjustment.ID)
}

func (s *StockServiceTestSuite) TestAvailabilitySumsAcrossLocations() {
	productID := uuid.New()
	s.stockRepo.On("TotalByProduct", mock.Anything, productID).Return(125, nil)

	total, err := s.service.Availability(context.Background(), productID)

	s.NoError(err)
	s.Equal(125, total)
}

func (s *StockServiceTestSuite) TestUpdateChangesQuantityOnly() {
	stockID := uuid.New()
	productID := uuid.New()
	locationID := uuid.New()
	s.stockRepo.On("GetByID", mock.Anything, stockID).Return(&models.Stock{
		ID: stockID, ProductID: productID, LocationID: locationID, Quantity: 5,
	}, nil)
	s.stockRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	stock, err := s.service.Update(context.Background(), stockID, 9)

	s.NoError(err)
	s.Equal(9, stock.Quantity)
	// The product/location pair reported back is the stored one, never
	// caller-supplied.
	s.Equal(productID, stock.ProductID)
	s.Equal(locationID, stock.LocationID)
	s.stockRepo.AssertCalled(s.T(), "Update", mock.Anything, stock)
}

func (s *StockServiceTestSuite) TestUpdateRejectsNegativeQuantity() {
	_, err := s.service.Update(context.Background(), uuid.New(), -1)

	var validationErr *common.ValidationError
	s.ErrorAs(err, &validationErr)
	s.Equal("quantity", validationErr.Field)
	s.stockRepo.AssertNotCalled(s.T(), "Update", mock.Anything, mock.Anything)
}

func TestStockServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StockServiceTestSuite))
}
