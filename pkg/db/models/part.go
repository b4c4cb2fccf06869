package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Part is an internal catalog item identified by its unique internal code.
type Part struct {
	ID           int64           `gorm:"column:id;primaryKey;autoIncrement"`
	InternalCode string          `gorm:"column:internal_code;not null;uniqueIndex:parts_internal_code_key"`
	Description  string          `gorm:"column:description;not null;default:''"`
	BasePrice    decimal.Decimal `gorm:"column:base_price;type:numeric(12,2);not null"`
	SubstrateID  *int64          `gorm:"column:substrate_id"`
	FinishID     *int64          `gorm:"column:finish_id"`
	Substrate    *Substrate      `gorm:"foreignKey:SubstrateID"`
	Finish       *Finish         `gorm:"foreignKey:FinishID"`
	Mappings     []PartMapping   `gorm:"foreignKey:PartID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Part) TableName() string { return "parts" }
