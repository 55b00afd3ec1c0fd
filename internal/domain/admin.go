package domain

import "time"

// Admin is the domain model for back-office administrator accounts.
type Admin struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
