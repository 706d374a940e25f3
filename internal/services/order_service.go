package services

import (
	"context"
	"errors"

	"github.com/ahmetcoskunkizilkaya/order-tracker/internal/dto"
	"github.com/ahmetcoskunkizilkaya/order-tracker/internal/models"
	"gorm.io/gorm"
)

var ErrOrderNotFound = errors.New("order not found")

type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// ListForCustomer returns the customer's orders, newest first, each with its
// derived status and the distinct item names across its shipments.
func (s *OrderService) ListForCustomer(ctx context.Context, username string) ([]dto.OrderSummaryResponse, error) {
	customer, err := findCustomerByUsername(ctx, s.db, username)
	if err != nil {
		return nil, err
	}

	var orders []models.Order
	err = withShipments(s.db.WithContext(ctx)).
		Where("customer_id = ?", customer.CustomerID).
		Order("order_date DESC").Order("order_id").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	resp := make([]dto.OrderSummaryResponse, len(orders))
	for i := range orders {
		items := distinctItemNames(orders[i].Shipments)
		resp[i] = dto.OrderSummaryResponse{
			OrderID:    orders[i].OrderID,
			OrderDate:  formatDate(orders[i].OrderDate),
			Status:     deriveOrderStatus(orders[i].Shipments).String(),
			Items:      items,
			ItemsCount: len(items),
		}
	}
	return resp, nil
}

func (s *OrderService) Get(ctx context.Context, orderID string) (*dto.OrderResponse, error) {
	var order models.Order
	if err := withShipments(s.db.WithContext(ctx)).First(&order, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	resp := &dto.OrderResponse{
		OrderID:    order.OrderID,
		OrderDate:  formatDate(order.OrderDate),
		CustomerID: order.CustomerID,
		Status:     deriveOrderStatus(order.Shipments).String(),
		Shipments:  make([]dto.ShipmentResponse, len(order.Shipments)),
	}
	for i := range order.Shipments {
		resp.Shipments[i] = mapShipmentToResponse(&order.Shipments[i])
	}
	return resp, nil
}

func withShipments(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Shipments", func(db *gorm.DB) *gorm.DB { return db.Order("shipment_id") }).
		Preload("Shipments.Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") })
}
