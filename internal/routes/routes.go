package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/order-tracker/internal/config"
	"github.com/ahmetcoskunkizilkaya/order-tracker/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/order-tracker/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	customerService := services.NewCustomerService(db)
	orderService := services.NewOrderService(db)
	shipmentService := services.NewShipmentService(db)
	dashboardService := services.NewDashboardService(db)

	healthHandler := handlers.NewHealthHandler(db)
	customerHandler := handlers.NewCustomerHandler(customerService, orderService, dashboardService)
	orderHandler := handlers.NewOrderHandler(orderService)
	shipmentHandler := handlers.NewShipmentHandler(shipmentService)

	api := app.Group("/api")

	// Per-IP rate limit for all API routes
	api.Use(limiter.New(limiter.Config{
		Max:               cfg.RateLimitPerMinute,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// lookup must precede the :customer_id route
	api.Get("/customers/lookup", customerHandler.Lookup)
	api.Get("/customers/:customer_id", customerHandler.Get)
	api.Get("/customers/:username/orders", customerHandler.Orders)
	api.Get("/customers/:username/dashboard", customerHandler.Dashboard)

	api.Get("/orders/:order_id", orderHandler.Get)
	api.Get("/shipments/:shipment_id", shipmentHandler.Get)
}
