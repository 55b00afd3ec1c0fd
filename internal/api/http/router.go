package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/night-assist/assist-service/internal/api/http/handlers"
	"github.com/night-assist/assist-service/internal/auth"
	"github.com/night-assist/assist-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Citizens   *handlers.CitizensHandler
	Admins     *handlers.AdminsHandler
	Timestamps *handlers.TimestampsHandler
	Accidents  *handlers.AccidentsHandler
	Products   *handlers.ProductsHandler
	Orders     *handlers.OrdersHandler
	Guard      *auth.Guard
	UploadDir  string
}

// RegisterRoutes wires HTTP routes with their role policy. The policy is
// fixed at startup: each protected route names its allowed roles; the
// empty list on /orders means any authenticated principal.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	guard := cfg.Guard
	adminOnly := guard.RequireRoles(domain.RoleAdmin)
	citizenOrAdmin := guard.RequireRoles(domain.RoleCitizen, domain.RoleAdmin)
	anyAuthenticated := guard.RequireRoles()

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	citizens := app.Group("/citizens")
	citizens.Post("/signup", cfg.Citizens.Signup)
	citizens.Post("/login", cfg.Citizens.Login)
	citizens.Get("/", adminOnly, cfg.Citizens.List)
	citizens.Get("/:citizenId", adminOnly, cfg.Citizens.Get)
	citizens.Patch("/:citizenId", adminOnly, cfg.Citizens.Patch)
	citizens.Delete("/:citizenId", adminOnly, cfg.Citizens.Delete)

	admins := app.Group("/admins")
	admins.Post("/signup", adminOnly, cfg.Admins.Signup)
	admins.Post("/login", cfg.Admins.Login)
	admins.Patch("/:adminId", adminOnly, cfg.Admins.Patch)
	admins.Delete("/:adminId", adminOnly, cfg.Admins.Delete)

	timestamps := app.Group("/timestamps")
	timestamps.Post("/", cfg.Timestamps.Create)
	timestamps.Get("/", citizenOrAdmin, cfg.Timestamps.List)
	timestamps.Get("/by-citizen/:id", citizenOrAdmin, cfg.Timestamps.ListByCitizen)
	timestamps.Get("/:timestampId", citizenOrAdmin, cfg.Timestamps.Get)
	timestamps.Delete("/:timestampId", adminOnly, cfg.Timestamps.Delete)

	accidents := app.Group("/accidents")
	accidents.Post("/", cfg.Accidents.Report)
	accidents.Get("/", adminOnly, cfg.Accidents.List)
	accidents.Delete("/:accidentId", adminOnly, cfg.Accidents.Delete)

	products := app.Group("/products")
	products.Get("/", cfg.Products.List)
	products.Get("/:productId", cfg.Products.Get)
	products.Post("/", adminOnly, cfg.Products.Create)
	products.Patch("/:productId", adminOnly, cfg.Products.Patch)
	products.Delete("/:productId", adminOnly, cfg.Products.Delete)

	orders := app.Group("/orders", anyAuthenticated)
	orders.Post("/", cfg.Orders.Create)
	orders.Get("/", cfg.Orders.List)
	orders.Get("/:orderId", cfg.Orders.Get)
	orders.Delete("/:orderId", cfg.Orders.Delete)

	if cfg.UploadDir != "" {
		app.Static("/uploads", cfg.UploadDir)
	}
}
