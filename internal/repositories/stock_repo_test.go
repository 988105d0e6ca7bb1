package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"stockflow/internal/models"
)

type StockRepoTestSuite struct {
	suite.Suite
	mock pgxmock.PgxPoolIface
	repo StockRepository
	ctx  context.Context
}

func (suite *StockRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock
	suite.repo = NewStockRepository(mock)
	suite.ctx = context.Background()
}

func (suite *StockRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestStockRepoTestSuite(t *testing.T) {
	suite.Run(t, new(StockRepoTestSuite))
}

func (suite *StockRepoTestSuite) TestCreate() {
	stock := &models.Stock{
		ID:         uuid.New(),
		ProductID:  uuid.New(),
		LocationID: uuid.New(),
		Quantity:   25,
	}

	suite.mock.ExpectExec(`
		INSERT INTO stocks \(id, product_id, location_id, quantity, created_at, updated_at\)
		VALUES \(\$1, \$2, \$3, \$4, NOW\(\), NOW\(\)\)
	`).WithArgs(stock.ID, stock.ProductID, stock.LocationID, stock.Quantity).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.ctx, stock)
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *StockRepoTestSuite) TestGetByID() {
	id := uuid.New()
	productID := uuid.New()
	locationID := uuid.New()
	now := time.Now()

	suite.mock.ExpectQuery(`SELECT id, product_id, location_id, quantity, created_at, updated_at FROM stocks WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"id", "product_id", "location_id", "quantity", "created_at", "updated_at"}).
			AddRow(id, productID, locationID, 14, now, now))

	stock, err := suite.repo.GetByID(suite.ctx, id)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), id, stock.ID)
	assert.Equal(suite.T(), 14, stock.Quantity)
}

func (suite *StockRepoTestSuite) TestListByProductOrdersOldestFirst() {
	productID := uuid.New()
	now := time.Now()
	older := uuid.New()
	newer := uuid.New()

	suite.mock.ExpectQuery(`SELECT id, product_id, location_id, quantity, created_at, updated_at FROM stocks WHERE product_id = \$1 ORDER BY created_at, id`).
		WithArgs(productID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "product_id", "location_id", "quantity", "created_at", "updated_at"}).
			AddRow(older, productID, uuid.New(), 10, now.Add(-time.Hour), now).
			AddRow(newer, productID, uuid.New(), 20, now, now))

	stocks, err := suite.repo.ListByProduct(suite.ctx, productID)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), stocks, 2)
	assert.Equal(suite.T(), older, stocks[0].ID)
	assert.Equal(suite.T(), newer, stocks[1].ID)
}

func (suite *StockRepoTestSuite) TestTotalByProduct() {
	productID := uuid.New()

	suite.mock.ExpectQuery(`SELECT COALESCE\(SUM\(quantity\), 0\) FROM stocks WHERE product_id = \$1`).
		WithArgs(productID).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(55))

	total, err := suite.repo.TotalByProduct(suite.ctx, productID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 55, total)
}

func (suite *StockRepoTestSuite) TestTotalByProductEmpty() {
	productID := uuid.New()

	suite.mock.ExpectQuery(`SELECT COALESCE\(SUM\(quantity\), 0\) FROM stocks WHERE product_id = \$1`).
		WithArgs(productID).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(0))

	total, err := suite.repo.TotalByProduct(suite.ctx, productID)
	assert.NoError(suite.T(), err)
	assert.Zero(suite.T(), total)
}

func (suite *StockRepoTestSuite) TestUpdate() {
	stock := &models.Stock{ID: uuid.New(), Quantity: 9}

	suite.mock.ExpectExec(`UPDATE stocks SET quantity = \$1, updated_at = NOW\(\) WHERE id = \$2`).
		WithArgs(stock.Quantity, stock.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.Update(suite.ctx, stock)
	assert.NoError(suite.T(), err)
}

func (suite *StockRepoTestSuite) TestListBelowThreshold() {
	now := time.Now()

	suite.mock.ExpectQuery(`SELECT id, product_id, location_id, quantity, created_at, updated_at FROM stocks WHERE quantity <= \$1 ORDER BY quantity`).
		WithArgs(5).
		WillReturnRows(pgxmock.NewRows([]string{"id", "product_id", "location_id", "quantity", "created_at", "updated_at"}).
			AddRow(uuid.New(), uuid.New(), uuid.New(), 2, now, now))

	stocks, err := suite.repo.ListBelowThreshold(suite.ctx, 5)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), stocks, 1)
	assert.Equal(suite.T(), 2, stocks[0].Quantity)
}
