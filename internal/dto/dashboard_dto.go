package dto

type DashboardResponse struct {
	TotalOrders    int64            `json:"total_orders"`
	TotalShipments int64            `json:"total_shipments"`
	InTransit      int64            `json:"in_transit"`
	Delayed        int64            `json:"delayed"`
	Delivered      int64            `json:"delivered"`
	Failed         int64            `json:"failed"`
	OutForDelivery int64            `json:"out_for_delivery"`
	ByRegion       map[string]int64 `json:"by_region"`
}
