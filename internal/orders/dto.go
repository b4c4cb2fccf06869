package orders

import "time"

// OrderSummaryDTO is one row of GET /api/customers/{customerId}/orders.
type OrderSummaryDTO struct {
	ID          int64     `json:"id"`
	OrderNumber string    `json:"order_number"`
	StatusName  *string   `json:"status_name"`
	TotalAmount float64   `json:"total_amount"`
	OrderDate   time.Time `json:"order_date"`
	TotalParts  int64     `json:"total_parts"`
}

// OrderDetailDTO is the payload of GET /api/orders/{orderId}.
type OrderDetailDTO struct {
	ID            int64          `json:"id"`
	OrderNumber   string         `json:"order_number"`
	OrderStatus   *string        `json:"order_status"`
	TotalAmount   float64        `json:"total_amount"`
	OrderDate     time.Time      `json:"order_date"`
	CustomerName  *string        `json:"customer_name"`
	CustomerEmail *string        `json:"customer_email"`
	Parts         []OrderPartDTO `json:"parts"`
}

type OrderPartDTO struct {
	ID           int64   `json:"id"`
	InternalCode string  `json:"internal_code"`
	Description  string  `json:"description"`
	Quantity     int     `json:"quantity"`
	UnitPrice    float64 `json:"unit_price"`
	PartStatus   *string `json:"part_status"`
	Notes        *string `json:"notes"`
}

type StatusDTO struct {
	ID         int64  `json:"id"`
	StatusName string `json:"status_name"`
}
