package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/night-assist/assist-service/internal/api/dto"
	"github.com/night-assist/assist-service/internal/domain"
	"github.com/night-assist/assist-service/internal/service"
	apperrors "github.com/night-assist/assist-service/pkg/util"
)

// ProductsHandler exposes the product catalog. Create accepts multipart
// form data so an image can be attached.
type ProductsHandler struct {
	products *service.ProductService
}

// NewProductsHandler constructs handler.
func NewProductsHandler(productService *service.ProductService) *ProductsHandler {
	return &ProductsHandler{products: productService}
}

func productJSON(p *domain.Product) fiber.Map {
	return fiber.Map{
		"id":    p.ID,
		"name":  p.Name,
		"price": p.Price,
		"image": p.ImagePath,
	}
}

// Create handles POST /products (multipart form: name, price, image).
func (h *ProductsHandler) Create(c *fiber.Ctx) error {
	name := c.FormValue("name")
	priceRaw := c.FormValue("price")
	if name == "" || priceRaw == "" {
		return apperrors.NewValidationError("name and price required", nil)
	}
	price, err := strconv.ParseFloat(priceRaw, 64)
	if err != nil || price < 0 {
		return apperrors.NewValidationError("invalid price", nil)
	}

	// image is optional; FormFile errors when the part is absent
	image, err := c.FormFile("image")
	if err != nil {
		image = nil
	}

	product, err := h.products.Create(c.UserContext(), name, price, image)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message":        "Created object succesfully",
		"createdProduct": productJSON(product),
	})
}

// List handles GET /products.
func (h *ProductsHandler) List(c *fiber.Ctx) error {
	products, err := h.products.List(c.UserContext())
	if err != nil {
		return err
	}

	items := make([]fiber.Map, 0, len(products))
	for _, product := range products {
		items = append(items, productJSON(product))
	}
	return c.JSON(fiber.Map{
		"count":    len(items),
		"products": items,
	})
}

// Get handles GET /products/:productId.
func (h *ProductsHandler) Get(c *fiber.Ctx) error {
	product, err := h.products.Get(c.UserContext(), c.Params("productId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"product": productJSON(product)})
}

// Patch handles PATCH /products/:productId.
func (h *ProductsHandler) Patch(c *fiber.Ctx) error {
	ops, err := dto.ParsePatchBody(c.Body())
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	affected, err := h.products.Patch(c.UserContext(), c.Params("productId"), toFieldUpdates(ops))
	if err != nil {
		return err
	}
	if affected == 0 {
		return c.SendStatus(http.StatusNoContent)
	}
	return c.JSON(fiber.Map{"message": "Product updated"})
}

// Delete handles DELETE /products/:productId.
func (h *ProductsHandler) Delete(c *fiber.Ctx) error {
	if err := h.products.Delete(c.UserContext(), c.Params("productId")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}
