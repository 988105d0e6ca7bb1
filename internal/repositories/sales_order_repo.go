package repositories

import (
	"context"

	"github.com/google/uuid"

	"stockflow/internal/models"
)

type SalesOrderRepository interface {
	Create(ctx context.Context, order *models.SalesOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.SalesOrder, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Update(ctx context.Context, order *models.SalesOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.SalesOrder, error)

	CreateItem(ctx context.Context, item *models.SalesOrderItem) error
	GetItemByID(ctx context.Context, id uuid.UUID) (*models.SalesOrderItem, error)
	UpdateItem(ctx context.Context, item *models.SalesOrderItem) error
	DeleteItem(ctx context.Context, id uuid.UUID) error
	ListItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]*models.SalesOrderItem, error)
}

type salesOrderRepo struct {
	db DBTX
}

func NewSalesOrderRepository(db DBTX) SalesOrderRepository {
	return &salesOrderRepo{db: db}
}

func (r *salesOrderRepo) Create(ctx context.Context, order *models.SalesOrder) error {
	query := `
		INSERT INTO sales_orders (id, customer_id, created_by, status, order_date, shipped_date)
		VALUES ($1, $2, $3, $4, NOW(), $5)
	`
	_, err := r.db.Exec(ctx, query, order.ID, order.CustomerID, order.CreatedBy, order.Status, order.ShippedDate)
	return err
}

func (r *salesOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.SalesOrder, error) {
	o := &models.SalesOrder{}
	query := `SELECT id, customer_id, created_by, status, order_date, shipped_date FROM sales_orders WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(&o.ID, &o.CustomerID, &o.CreatedBy, &o.Status, &o.OrderDate, &o.ShippedDate)
	if err != nil {
		return nil, err
	}
	items, err := r.ListItemsByOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

func (r *salesOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE sales_orders SET status = $1 WHERE id = $2`
	_, err := r.db.Exec(ctx, query, status, id)
	return err
}

func (r *salesOrderRepo) Update(ctx context.Context, order *models.SalesOrder) error {
	query := `
		UPDATE sales_orders
		SET customer_id = $1, status = $2, shipped_date = $3
		WHERE id = $4
	`
	_, err := r.db.Exec(ctx, query, order.CustomerID, order.Status, order.ShippedDate, order.ID)
	return err
}

func (r *salesOrderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM sales_orders WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *salesOrderRepo) List(ctx context.Context, limit, offset int) ([]*models.SalesOrder, error) {
	query := `SELECT id, customer_id, created_by, status, order_date, shipped_date FROM sales_orders ORDER BY order_date LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.SalesOrder
	for rows.Next() {
		o := &models.SalesOrder{}
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.CreatedBy, &o.Status, &o.OrderDate, &o.ShippedDate); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *salesOrderRepo) CreateItem(ctx context.Context, item *models.SalesOrderItem) error {
	query := `
		INSERT INTO sales_order_items (id, sales_order_id, product_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query, item.ID, item.SalesOrderID, item.ProductID, item.Quantity, item.UnitPrice)
	return err
}

func (r *salesOrderRepo) GetItemByID(ctx context.Context, id uuid.UUID) (*models.SalesOrderItem, error) {
	item := &models.SalesOrderItem{}
	query := `SELECT id, sales_order_id, product_id, quantity, unit_price FROM sales_order_items WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(&item.ID, &item.SalesOrderID, &item.ProductID, &item.Quantity, &item.UnitPrice)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *salesOrderRepo) UpdateItem(ctx context.Context, item *models.SalesOrderItem) error {
	query := `UPDATE sales_order_items SET product_id = $1, quantity = $2, unit_price = $3 WHERE id = $4`
	_, err := r.db.Exec(ctx, query, item.ProductID, item.Quantity, item.UnitPrice, item.ID)
	return err
}

func (r *salesOrderRepo) DeleteItem(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM sales_order_items WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *salesOrderRepo) ListItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]*models.SalesOrderItem, error) {
	query := `SELECT id, sales_order_id, product_id, quantity, unit_price FROM sales_order_items WHERE sales_order_id = $1`
	return r.queryItems(ctx, query, orderID)
}

func (r *salesOrderRepo) queryItems(ctx context.Context, query string, args ...any) ([]*models.SalesOrderItem, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.SalesOrderItem
	for rows.Next() {
		item := &models.SalesOrderItem{}
		if err := rows.Scan(&item.ID, &item.SalesOrderID, &item.ProductID, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
