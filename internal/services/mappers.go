package services

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/order-tracker/internal/dto"
	"github.com/ahmetcoskunkizilkaya/order-tracker/internal/models"
	"github.com/ahmetcoskunkizilkaya/order-tracker/internal/status"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02T15:04:05"
)

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func formatOptional(t *time.Time, layout string) *string {
	if t == nil {
		return nil
	}
	s := t.Format(layout)
	return &s
}

func mapCustomerToResponse(c *models.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		CustomerID: c.CustomerID,
		Username:   c.Username,
		Email:      c.Email,
	}
}

func mapShipmentToResponse(s *models.Shipment) dto.ShipmentResponse {
	items := make([]dto.ShipmentItemResponse, len(s.Items))
	for i, item := range s.Items {
		items[i] = dto.ShipmentItemResponse{ItemName: item.ItemName, Quantity: item.Quantity}
	}

	return dto.ShipmentResponse{
		ShipmentID:            s.ShipmentID,
		TrackingNumber:        s.TrackingNumber,
		WarehouseID:           s.WarehouseID,
		FulfillmentRegion:     s.FulfillmentRegion,
		ZipCode:               s.ZipCode,
		AddressID:             s.AddressID,
		FulfillmentType:       s.FulfillmentType,
		ShipDate:              formatDate(s.ShipDate),
		EstimatedDelivery:     formatDate(s.EstimatedDelivery),
		ActualDeliveryDate:    formatOptional(s.ActualDeliveryDate, dateLayout),
		CurrentStatus:         s.CurrentStatus.String(),
		LastScanLocation:      s.LastScanLocation,
		ScanTimestamp:         formatOptional(s.ScanTimestamp, timestampLayout),
		DeliveryAttemptStatus: s.DeliveryAttemptStatus,
		DeliveryFailureStatus: s.DeliveryFailureStatus,
		Items:                 items,
	}
}

func deriveOrderStatus(shipments []models.Shipment) status.Status {
	statuses := make([]status.Status, len(shipments))
	for i, s := range shipments {
		statuses[i] = s.CurrentStatus
	}
	return status.Derive(statuses)
}

// distinctItemNames keeps first-seen order across shipments.
func distinctItemNames(shipments []models.Shipment) []string {
	seen := make(map[string]bool)
	names := make([]string, 0)
	for _, s := range shipments {
		for _, item := range s.Items {
			if seen[item.ItemName] {
				continue
			}
			seen[item.ItemName] = true
			names = append(names, item.ItemName)
		}
	}
	return names
}
