package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TxRepos bundles the repositories an order workflow touches, all bound
// to the same database transaction.
type TxRepos struct {
	Stocks         StockRepository
	Movements      StockMovementRepository
	Warehouses     WarehouseRepository
	Locations      LocationRepository
	PurchaseOrders PurchaseOrderRepository
	SalesOrders    SalesOrderRepository
}

// TxRunner executes fn inside a single transaction. The transaction is
// committed when fn returns nil and rolled back otherwise.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos *TxRepos) error) error
}

type pgxTxRunner struct {
	pool *pgxpool.Pool
}

func NewTxRunner(pool *pgxpool.Pool) TxRunner {
	return &pgxTxRunner{pool: pool}
}

func (r *pgxTxRunner) Run(ctx context.Context, fn func(repos *TxRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	repos := &TxRepos{
		Stocks:         NewStockRepository(tx),
		Movements:      NewStockMovementRepository(tx),
		Warehouses:     NewWarehouseRepository(tx),
		Locations:      NewLocationRepository(tx),
		PurchaseOrders: NewPurchaseOrderRepository(tx),
		SalesOrders:    NewSalesOrderRepository(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
