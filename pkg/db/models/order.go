package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID          int64           `gorm:"column:id;primaryKey;autoIncrement"`
	OrderNumber string          `gorm:"column:order_number;not null;uniqueIndex"`
	CustomerID  int64           `gorm:"column:customer_id;not null;index"`
	StatusID    int64           `gorm:"column:status_id;not null"`
	TotalAmount decimal.Decimal `gorm:"column:total_amount;type:numeric(12,2);not null;default:0"`
	OrderDate   time.Time       `gorm:"column:order_date;not null"`
	Parts       []OrderPart     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (Order) TableName() string { return "orders" }

// OrderPart is one part line of an order with its own fulfilment status.
type OrderPart struct {
	ID        int64           `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID   int64           `gorm:"column:order_id;not null;index"`
	PartID    int64           `gorm:"column:part_id;not null"`
	Quantity  int             `gorm:"column:quantity;not null"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null"`
	StatusID  int64           `gorm:"column:status_id;not null"`
	Notes     *string         `gorm:"column:notes"`
}

func (OrderPart) TableName() string { return "order_parts" }
