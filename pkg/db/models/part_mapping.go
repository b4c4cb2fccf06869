package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PartMapping links a customer's own part code to an internal part, with an
// optional customer-specific price.
type PartMapping struct {
	ID            int64               `gorm:"column:id;primaryKey;autoIncrement"`
	PartID        int64               `gorm:"column:part_id;not null;index"`
	CustomerID    int64               `gorm:"column:customer_id;not null;uniqueIndex:part_mappings_customer_code_key,priority:1"`
	CustomerCode  string              `gorm:"column:customer_code;not null;uniqueIndex:part_mappings_customer_code_key,priority:2"`
	PriceOverride decimal.NullDecimal `gorm:"column:price_override;type:numeric(12,2)"`
	Part          *Part               `gorm:"foreignKey:PartID"`
	Customer      *Customer           `gorm:"foreignKey:CustomerID"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
}

func (PartMapping) TableName() string { return "part_mappings" }

// EffectivePrice is the customer's override when present, else the part's
// base price. Every customer-facing price goes through this rule.
func EffectivePrice(base decimal.Decimal, override decimal.NullDecimal) decimal.Decimal {
	if override.Valid {
		return override.Decimal
	}
	return base
}
