package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/night-assist/assist-service/internal/api/dto"
	"github.com/night-assist/assist-service/internal/domain"
	"github.com/night-assist/assist-service/internal/service"
	apperrors "github.com/night-assist/assist-service/pkg/util"
)

// OrdersHandler exposes order endpoints for authenticated principals.
type OrdersHandler struct {
	orders *service.OrderService
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(orderService *service.OrderService) *OrdersHandler {
	return &OrdersHandler{orders: orderService}
}

func orderJSON(o *domain.Order) fiber.Map {
	m := fiber.Map{
		"id":        o.ID,
		"productId": o.ProductID,
		"quantity":  o.Quantity,
	}
	if o.Product != nil {
		m["product"] = productJSON(o.Product)
	}
	return m
}

// Create handles POST /orders.
func (h *OrdersHandler) Create(c *fiber.Ctx) error {
	var req dto.OrderCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ProductID == "" {
		return apperrors.NewValidationError("productId required", nil)
	}

	order, err := h.orders.Create(c.UserContext(), req.ProductID, req.Quantity)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message":      "Order stored",
		"createdOrder": orderJSON(order),
	})
}

// List handles GET /orders.
func (h *OrdersHandler) List(c *fiber.Ctx) error {
	orders, err := h.orders.List(c.UserContext())
	if err != nil {
		return err
	}

	items := make([]fiber.Map, 0, len(orders))
	for _, order := range orders {
		items = append(items, orderJSON(order))
	}
	return c.JSON(fiber.Map{
		"count":  len(items),
		"orders": items,
	})
}

// Get handles GET /orders/:orderId.
func (h *OrdersHandler) Get(c *fiber.Ctx) error {
	order, err := h.orders.Get(c.UserContext(), c.Params("orderId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"order": orderJSON(order)})
}

// Delete handles DELETE /orders/:orderId.
func (h *OrdersHandler) Delete(c *fiber.Ctx) error {
	if err := h.orders.Delete(c.UserContext(), c.Params("orderId")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Order deleted"})
}
