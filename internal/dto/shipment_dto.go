package dto

type ShipmentItemResponse struct {
	ItemName string `json:"item_name"`
	Quantity int    `json:"quantity"`
}

type ShipmentResponse struct {
	ShipmentID            string                 `json:"shipment_id"`
	TrackingNumber        string                 `json:"tracking_number"`
	WarehouseID           string                 `json:"warehouse_id"`
	FulfillmentRegion     string                 `json:"fulfillment_region"`
	ZipCode               string                 `json:"zip_code"`
	AddressID             string                 `json:"address_id"`
	FulfillmentType       string                 `json:"fulfillment_type"`
	ShipDate              string                 `json:"ship_date"`
	EstimatedDelivery     string                 `json:"estimated_delivery"`
	ActualDeliveryDate    *string                `json:"actual_delivery_date"`
	CurrentStatus         string                 `json:"current_status"`
	LastScanLocation      string                 `json:"last_scan_location"`
	ScanTimestamp         *string                `json:"scan_timestamp"`
	DeliveryAttemptStatus *string                `json:"delivery_attempt_status"`
	DeliveryFailureStatus *string                `json:"delivery_failure_status"`
	Items                 []ShipmentItemResponse `json:"items"`
}
