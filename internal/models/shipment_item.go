package models

// ShipmentItem is one package line. SourceRow is the CSV line the item was
// imported from; together with ShipmentID it makes re-imports idempotent.
type ShipmentItem struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	ShipmentID string `gorm:"size:20;not null;uniqueIndex:idx_shipment_items_source,priority:1" json:"-"`
	SourceRow  int    `gorm:"not null;uniqueIndex:idx_shipment_items_source,priority:2" json:"-"`
	ItemName   string `gorm:"size:100;not null" json:"item_name"`
	Quantity   int    `gorm:"not null" json:"quantity"`
}

func (ShipmentItem) TableName() string {
	return "shipment_items"
}
