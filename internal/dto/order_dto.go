package dto

// OrderSummaryResponse is one row of a customer's order list.
type OrderSummaryResponse struct {
	OrderID    string   `json:"order_id"`
	OrderDate  string   `json:"order_date"`
	Status     string   `json:"status"`
	Items      []string `json:"items"`
	ItemsCount int      `json:"items_count"`
}

type OrderResponse struct {
	OrderID    string             `json:"order_id"`
	OrderDate  string             `json:"order_date"`
	CustomerID string             `json:"customer_id"`
	Status     string             `json:"status"`
	Shipments  []ShipmentResponse `json:"shipments"`
}
