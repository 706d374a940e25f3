package handlers

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/order-tracker/internal/dto"
	"github.com/ahmetcoskunkizilkaya/order-tracker/internal/services"
	"github.com/gofiber/fiber/v2"
)

type CustomerHandler struct {
	customerService  *services.CustomerService
	orderService     *services.OrderService
	dashboardService *services.DashboardService
}

func NewCustomerHandler(
	customerService *services.CustomerService,
	orderService *services.OrderService,
	dashboardService *services.DashboardService,
) *CustomerHandler {
	return &CustomerHandler{
		customerService:  customerService,
		orderService:     orderService,
		dashboardService: dashboardService,
	}
}

// Get returns the customer with the given customer_id.
func (h *CustomerHandler) Get(c *fiber.Ctx) error {
	customer, err := h.customerService.Get(c.UserContext(), c.Params("customer_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(customer)
}

// Lookup resolves ?username=, provisioning the customer on first sight.
func (h *CustomerHandler) Lookup(c *fiber.Ctx) error {
	username := strings.TrimSpace(c.Query("username"))
	if username == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "username is required",
		})
	}

	customer, _, err := h.customerService.EnsureByUsername(c.UserContext(), username)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(customer)
}

func (h *CustomerHandler) Orders(c *fiber.Ctx) error {
	orders, err := h.orderService.ListForCustomer(c.UserContext(), c.Params("username"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

func (h *CustomerHandler) Dashboard(c *fiber.Ctx) error {
	dashboard, err := h.dashboardService.ForCustomer(c.UserContext(), c.Params("username"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dashboard)
}
