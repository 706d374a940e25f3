package handlers

import (
	"github.com/ahmetcoskunkizilkaya/order-tracker/internal/services"
	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Get returns the order with its shipments and their items.
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	order, err := h.orderService.Get(c.UserContext(), c.Params("order_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}
