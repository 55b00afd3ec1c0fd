package domain

import "time"

// Order references a product with a quantity.
type Order struct {
	ID        string
	ProductID string
	Quantity  int
	CreatedAt time.Time

	// Product is populated on reads that join the product row.
	Product *Product
}
