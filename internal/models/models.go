package models

// All returns every model in migration order.
func All() []interface{} {
	return []interface{}{
		&Customer{},
		&Order{},
		&Shipment{},
		&ShipmentItem{},
		&SystemLog{},
	}
}
