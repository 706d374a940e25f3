package models

import "time"

// Order has no stored status; see status.Derive.
type Order struct {
	OrderID    string     `gorm:"primaryKey;size:20" json:"order_id"`
	CustomerID string     `gorm:"size:20;not null;index" json:"customer_id"`
	OrderDate  time.Time  `gorm:"type:date;not null" json:"order_date"`
	CreatedAt  time.Time  `json:"created_at"`
	Shipments  []Shipment `gorm:"foreignKey:OrderID;references:OrderID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Order) TableName() string {
	return "orders"
}
