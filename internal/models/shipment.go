package models

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/order-tracker/internal/status"
)

type Shipment struct {
	ShipmentID            string         `gorm:"primaryKey;size:20" json:"shipment_id"`
	OrderID               string         `gorm:"size:20;not null;index" json:"order_id"`
	TrackingNumber        string         `gorm:"size:50;not null" json:"tracking_number"`
	WarehouseID           string         `gorm:"size:20;not null" json:"warehouse_id"`
	FulfillmentRegion     string         `gorm:"size:50;not null;index" json:"fulfillment_region"`
	ZipCode               string         `gorm:"size:10;not null" json:"zip_code"`
	AddressID             string         `gorm:"size:20;not null" json:"address_id"`
	FulfillmentType       string         `gorm:"size:20;not null" json:"fulfillment_type"`
	ShipDate              time.Time      `gorm:"type:date;not null" json:"ship_date"`
	EstimatedDelivery     time.Time      `gorm:"type:date;not null" json:"estimated_delivery"`
	ActualDeliveryDate    *time.Time     `gorm:"type:date" json:"actual_delivery_date"`
	CurrentStatus         status.Status  `gorm:"size:50;not null;index" json:"current_status"`
	LastScanLocation      string         `gorm:"size:100;not null" json:"last_scan_location"`
	ScanTimestamp         *time.Time     `json:"scan_timestamp"`
	DeliveryAttemptStatus *string        `gorm:"size:50" json:"delivery_attempt_status"`
	DeliveryFailureStatus *string        `gorm:"size:100" json:"delivery_failure_status"`
	Items                 []ShipmentItem `gorm:"foreignKey:ShipmentID;references:ShipmentID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Shipment) TableName() string {
	return "shipments"
}
