package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/night-assist/assist-service/internal/domain"
	"github.com/night-assist/assist-service/internal/repository"
	apperrors "github.com/night-assist/assist-service/pkg/util"
)

// OrderService handles device orders placed against the catalog.
type OrderService struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
}

// NewOrderService builds the service.
func NewOrderService(orders repository.OrderRepository, products repository.ProductRepository) *OrderService {
	return &OrderService{orders: orders, products: products}
}

// Create stores an order after verifying the product exists.
func (s *OrderService) Create(ctx context.Context, productID string, quantity int) (*domain.Order, error) {
	if quantity <= 0 {
		quantity = 1
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("product", nil)
		}
		return nil, err
	}

	order := &domain.Order{ProductID: product.ID, Quantity: quantity}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	order.Product = product
	return order, nil
}

// List returns all orders with their product rows.
func (s *OrderService) List(ctx context.Context) ([]*domain.Order, error) {
	return s.orders.List(ctx)
}

// Get returns one order by id.
func (s *OrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("order", nil)
		}
		return nil, err
	}
	return order, nil
}

// Delete removes an order.
func (s *OrderService) Delete(ctx context.Context, id string) error {
	if err := s.orders.Delete(ctx, id); err != nil && err != pgx.ErrNoRows {
		return err
	}
	return nil
}
