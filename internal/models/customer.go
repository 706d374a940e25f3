package models

import "time"

// Customer owns orders by its natural key. Auth0ID is reserved for an
// external identity link and is not read by any endpoint.
type Customer struct {
	CustomerID string    `gorm:"primaryKey;size:20" json:"customer_id"`
	Username   string    `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Auth0ID    *string   `gorm:"column:auth0_id;size:100" json:"-"`
	Email      *string   `gorm:"size:254" json:"email"`
	CreatedAt  time.Time `json:"created_at"`
	Orders     []Order   `gorm:"foreignKey:CustomerID;references:CustomerID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Customer) TableName() string {
	return "customers"
}
