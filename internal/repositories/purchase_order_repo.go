package repositories

import (
	"context"

	"github.com/google/uuid"

	"stockflow/internal/models"
)

type PurchaseOrderRepository interface {
	Create(ctx context.Context, order *models.PurchaseOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Update(ctx context.Context, order *models.PurchaseOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.PurchaseOrder, error)

	CreateItem(ctx context.Context, item *models.PurchaseOrderItem) error
	GetItemByID(ctx context.Context, id uuid.UUID) (*models.PurchaseOrderItem, error)
	UpdateItem(ctx context.Context, item *models.PurchaseOrderItem) error
	DeleteItem(ctx context.Context, id uuid.UUID) error
	ListItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]*models.PurchaseOrderItem, error)
}

type purchaseOrderRepo struct {
	db DBTX
}

func NewPurchaseOrderRepository(db DBTX) PurchaseOrderRepository {
	return &purchaseOrderRepo{db: db}
}

func (r *purchaseOrderRepo) Create(ctx context.Context, order *models.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (id, supplier_id, created_by, status, order_date, expected_date)
		VALUES ($1, $2, $3, $4, NOW(), $5)
	`
	_, err := r.db.Exec(ctx, query, order.ID, order.SupplierID, order.CreatedBy, order.Status, order.ExpectedDate)
	return err
}

func (r *purchaseOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error) {
	o := &models.PurchaseOrder{}
	query := `SELECT id, supplier_id, created_by, status, order_date, expected_date FROM purchase_orders WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(&o.ID, &o.SupplierID, &o.CreatedBy, &o.Status, &o.OrderDate, &o.ExpectedDate)
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

func (r *purchaseOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE purchase_orders SET status = $1 WHERE id = $2`
	_, err := r.db.Exec(ctx, query, status, id)
	return err
}

func (r *purchaseOrderRepo) Update(ctx context.Context, order *models.PurchaseOrder) error {
	query := `
		UPDATE purchase_orders
		SET supplier_id = $1, status = $2, expected_date = $3
		WHERE id = $4
	`
	_, err := r.db.Exec(ctx, query, order.SupplierID, order.Status, order.ExpectedDate, order.ID)
	return err
}

func (r *purchaseOrderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM purchase_orders WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *purchaseOrderRepo) List(ctx context.Context, limit, offset int) ([]*models.PurchaseOrder, error) {
	query := `SELECT id, supplier_id, created_by, status, order_date, expected_date FROM purchase_orders ORDER BY order_date LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.PurchaseOrder
	for rows.Next() {
		o := &models.PurchaseOrder{}
		if err := rows.Scan(&o.ID, &o.SupplierID, &o.CreatedBy, &o.Status, &o.OrderDate, &o.ExpectedDate); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *purchaseOrderRepo) CreateItem(ctx context.Context, item *models.PurchaseOrderItem) error {
	query := `
		INSERT INTO purchase_order_items (id, purchase_order_id, product_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query, item.ID, item.PurchaseOrderID, item.ProductID, item.Quantity, item.UnitPrice)
	return err
}

func (r *purchaseOrderRepo) GetItemByID(ctx context.Context, id uuid.UUID) (*models.PurchaseOrderItem, error) {
	item := &models.PurchaseOrderItem{}
	query := `SELECT id, purchase_order_id, product_id, quantity, unit_price FROM purchase_order_items WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(&item.ID, &item.PurchaseOrderID, &item.ProductID, &item.Quantity, &item.UnitPrice)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *purchaseOrderRepo) UpdateItem(ctx context.Context, item *models.PurchaseOrderItem) error {
	query := `UPDATE purchase_order_items SET product_id = $1, quantity = $2, unit_price = $3 WHERE id = $4`
	_, err := r.db.Exec(ctx, query, item.ProductID, item.Quantity, item.UnitPrice, item.ID)
	return err
}

func (r *purchaseOrderRepo) DeleteItem(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM purchase_order_items WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *purchaseOrderRepo) ListItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]*models.PurchaseOrderItem, error) {
	query := `SELECT id, purchase_order_id, product_id, quantity, unit_price FROM purchase_order_items WHERE purchase_order_id = $1`
	return r.queryItems(ctx, query, orderID)
}

func (r *purchaseOrderRepo) queryItems(ctx context.Context, query string, args ...any) ([]*models.PurchaseOrderItem, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.PurchaseOrderItem
	for rows.Next() {
		item := &models.PurchaseOrderItem{}
		if err := rows.Scan(&item.ID, &item.PurchaseOrderID, &item.ProductID, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
