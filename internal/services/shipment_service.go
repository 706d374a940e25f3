package services

import (
	"context"
	"errors"

	"github.com/ahmetcoskunkizilkaya/order-tracker/internal/dto"
	"github.com/ahmetcoskunkizilkaya/order-tracker/internal/models"
	"gorm.io/gorm"
)

var ErrShipmentNotFound = errors.New("shipment not found")

type ShipmentService struct {
	db *gorm.DB
}

func NewShipmentService(db *gorm.DB) *ShipmentService {
	return &ShipmentService{db: db}
}

func (s *ShipmentService) Get(ctx context.Context, shipmentID string) (*dto.ShipmentResponse, error) {
	var shipment models.Shipment
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&shipment, "shipment_id = ?", shipmentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShipmentNotFound
		}
		return nil, err
	}

	resp := mapShipmentToResponse(&shipment)
	return &resp, nil
}
