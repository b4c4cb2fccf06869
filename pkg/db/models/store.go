package models

import "time"

// Store is a customer's ship-to location as registered by the ERP.
type Store struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement"`
	CustomerID   int64     `gorm:"column:customer_id;not null;index"`
	StoreNumber  string    `gorm:"column:store_number;not null"`
	CompanyName  *string   `gorm:"column:company_name"`
	FirstName    *string   `gorm:"column:first_name"`
	LastName     *string   `gorm:"column:last_name"`
	Email        *string   `gorm:"column:email"`
	AddressLine1 *string   `gorm:"column:address_line1"`
	AddressLine2 *string   `gorm:"column:address_line2"`
	Country      *string   `gorm:"column:country"`
	City         *string   `gorm:"column:city"`
	State        *string   `gorm:"column:state"`
	LookupHint   *string   `gorm:"column:lookup_hint"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Store) TableName() string { return "stores" }
