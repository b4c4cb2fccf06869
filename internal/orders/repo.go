package orders

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderSummaryRow is one order in a customer's order history.
type OrderSummaryRow struct {
	ID          int64
	OrderNumber string
	StatusName  *string
	TotalAmount decimal.Decimal
	OrderDate   time.Time
	TotalParts  int64
}

// OrderHeaderRow is an order joined with its status and customer.
type OrderHeaderRow struct {
	ID            int64
	OrderNumber   string
	OrderStatus   *string
	TotalAmount   decimal.Decimal
	OrderDate     time.Time
	CustomerName  *string
	CustomerEmail *string
}

// OrderPartRow is one part line of an order.
type OrderPartRow struct {
	ID           int64
	InternalCode string
	Description  string
	Quantity     int
	UnitPrice    decimal.Decimal
	PartStatus   *string
	Notes        *string
}

type StatusRow struct {
	ID         int64
	StatusName string
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListByCustomer(ctx context.Context, customerID int64) ([]OrderSummaryRow, error) {
	var rows []OrderSummaryRow
	err := r.db.WithContext(ctx).
		Table("orders AS o").
		Select(`o.id, o.order_number, s.status_name, o.total_amount, o.order_date,
			(SELECT COUNT(*) FROM order_parts AS op WHERE op.order_id = o.id) AS total_parts`).
		Joins("LEFT JOIN order_statuses AS s ON s.id = o.status_id").
		Where("o.customer_id = ?", customerID).
		Order("o.order_date DESC").
		Order("o.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindOrder returns gorm.ErrRecordNotFound when the order does not exist.
func (r *repository) FindOrder(ctx context.Context, orderID int64) (*OrderHeaderRow, error) {
	var row OrderHeaderRow
	res := r.db.WithContext(ctx).
		Table("orders AS o").
		Select(`o.id, o.order_number, s.status_name AS order_status, o.total_amount, o.order_date,
			c.name AS customer_name, c.email AS customer_email`).
		Joins("LEFT JOIN order_statuses AS s ON s.id = o.status_id").
		Joins("LEFT JOIN customers AS c ON c.id = o.customer_id").
		Where("o.id = ?", orderID).
		Limit(1).
		Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

func (r *repository) FindOrderParts(ctx context.Context, orderID int64) ([]OrderPartRow, error) {
	var rows []OrderPartRow
	err := r.db.WithContext(ctx).
		Table("order_parts AS op").
		Select(`op.id, p.internal_code, p.description, op.quantity, op.unit_price,
			ps.status_name AS part_status, op.notes`).
		Joins("JOIN parts AS p ON p.id = op.part_id").
		Joins("LEFT JOIN part_statuses AS ps ON ps.id = op.status_id").
		Where("op.order_id = ?", orderID).
		Order("op.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ListOrderStatuses(ctx context.Context) ([]StatusRow, error) {
	return r.listStatuses(ctx, "order_statuses")
}

func (r *repository) ListPartStatuses(ctx context.Context) ([]StatusRow, error) {
	return r.listStatuses(ctx, "part_statuses")
}

func (r *repository) listStatuses(ctx context.Context, table string) ([]StatusRow, error) {
	var rows []StatusRow
	if err := r.db.WithContext(ctx).Table(table).Select("id, status_name").Order("id ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
