package handlers

import (
	"github.com/ahmetcoskunkizilkaya/order-tracker/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ShipmentHandler struct {
	shipmentService *services.ShipmentService
}

func NewShipmentHandler(shipmentService *services.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{shipmentService: shipmentService}
}

func (h *ShipmentHandler) Get(c *fiber.Ctx) error {
	shipment, err := h.shipmentService.Get(c.UserContext(), c.Params("shipment_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(shipment)
}
