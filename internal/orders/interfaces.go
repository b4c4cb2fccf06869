package orders

import "context"

// Repository describes order reads.
type Repository interface {
	ListByCustomer(ctx context.Context, customerID int64) ([]OrderSummaryRow, error)
	FindOrder(ctx context.Context, orderID int64) (*OrderHeaderRow, error)
	FindOrderParts(ctx context.Context, orderID int64) ([]OrderPartRow, error)
	ListOrderStatuses(ctx context.Context) ([]StatusRow, error)
	ListPartStatuses(ctx context.Context) ([]StatusRow, error)
}
