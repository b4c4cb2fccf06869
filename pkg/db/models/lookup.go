package models

// Substrate is the base material of a part.
type Substrate struct {
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name string `gorm:"column:name;not null"`
}

func (Substrate) TableName() string { return "substrates" }

// Finish is the surface treatment applied to a part.
type Finish struct {
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name string `gorm:"column:name;not null"`
}

func (Finish) TableName() string { return "finishes" }

type OrderStatus struct {
	ID         int64  `gorm:"column:id;primaryKey;autoIncrement"`
	StatusName string `gorm:"column:status_name;not null"`
}

func (OrderStatus) TableName() string { return "order_statuses" }

type PartStatus struct {
	ID         int64  `gorm:"column:id;primaryKey;autoIncrement"`
	StatusName string `gorm:"column:status_name;not null"`
}

func (PartStatus) TableName() string { return "part_statuses" }
