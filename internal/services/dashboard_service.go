package services

import (
	"context"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/order-tracker/internal/dto"
	"github.com/ahmetcoskunkizilkaya/order-tracker/internal/models"
	"github.com/ahmetcoskunkizilkaya/order-tracker/internal/status"
	"gorm.io/gorm"
)

type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

type countBucket struct {
	Bucket string
	Total  int64
}

// ForCustomer aggregates a customer's orders and shipments. Status counters
// match current_status exactly; statuses outside the tracked set only count
// toward TotalShipments.
func (s *DashboardService) ForCustomer(ctx context.Context, username string) (*dto.DashboardResponse, error) {
	customer, err := findCustomerByUsername(ctx, s.db, username)
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{ByRegion: map[string]int64{}}

	if err := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("customer_id = ?", customer.CustomerID).
		Count(&resp.TotalOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	shipments := func() *gorm.DB {
		return s.db.WithContext(ctx).Model(&models.Shipment{}).
			Joins("JOIN orders ON orders.order_id = shipments.order_id").
			Where("orders.customer_id = ?", customer.CustomerID)
	}

	var byStatus []countBucket
	if err := shipments().
		Select("shipments.current_status AS bucket, COUNT(*) AS total").
		Group("shipments.current_status").
		Scan(&byStatus).Error; err != nil {
		return nil, fmt.Errorf("failed to count shipments by status: %w", err)
	}
	for _, b := range byStatus {
		resp.TotalShipments += b.Total
		switch status.Status(b.Bucket) {
		case status.InTransit:
			resp.InTransit = b.Total
		case status.Delayed:
			resp.Delayed = b.Total
		case status.Delivered:
			resp.Delivered = b.Total
		case status.Failed:
			resp.Failed = b.Total
		case status.OutForDelivery:
			resp.OutForDelivery = b.Total
		}
	}

	var byRegion []countBucket
	if err := shipments().
		Select("shipments.fulfillment_region AS bucket, COUNT(*) AS total").
		Group("shipments.fulfillment_region").
		Scan(&byRegion).Error; err != nil {
		return nil, fmt.Errorf("failed to count shipments by region: %w", err)
	}
	for _, b := range byRegion {
		resp.ByRegion[b.Bucket] = b.Total
	}

	return resp, nil
}
