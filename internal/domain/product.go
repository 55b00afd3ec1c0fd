package domain

import "time"

// Product is a purchasable assistance device or accessory.
type Product struct {
	ID        string
	Name      string
	Price     float64
	ImagePath string
	CreatedAt time.Time
	UpdatedAt time.Time
}
