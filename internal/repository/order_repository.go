package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/night-assist/assist-service/internal/domain"
)

// OrderRepository defines persistence access for orders.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
	Delete(ctx context.Context, id string) error
}

type orderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns a Postgres-backed implementation.
func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &orderRepository{pool: pool}
}

func scanOrderWithProduct(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	var p domain.Product
	if err := row.Scan(
		&o.ID,
		&o.ProductID,
		&o.Quantity,
		&o.CreatedAt,
		&p.ID,
		&p.Name,
		&p.Price,
		&p.ImagePath,
	); err != nil {
		return nil, err
	}
	o.Product = &p
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	const query = `
        INSERT INTO orders (product_id, quantity)
        VALUES ($1, $2)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		order.ProductID,
		order.Quantity,
	).Scan(&order.ID, &order.CreatedAt)
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const query = `
        SELECT o.id, o.product_id, o.quantity, o.created_at,
               p.id, p.name, p.price, p.image_path
        FROM orders o JOIN products p ON p.id = o.product_id
        WHERE o.id=$1`
	return scanOrderWithProduct(r.pool.QueryRow(ctx, query, id))
}

func (r *orderRepository) List(ctx context.Context) ([]*domain.Order, error) {
	const query = `
        SELECT o.id, o.product_id, o.quantity, o.created_at,
               p.id, p.name, p.price, p.image_path
        FROM orders o JOIN products p ON p.id = o.product_id
        ORDER BY o.created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		order, err := scanOrderWithProduct(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func (r *orderRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
