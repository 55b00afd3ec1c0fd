package domain

import "time"

// Address is the citizen's registered home address.
type Address struct {
	Postal int    `json:"postal"`
	Street string `json:"street"`
	City   string `json:"city"`
}

// Citizen is the domain model for citizens carrying a registered assistance device.
type Citizen struct {
	ID           string
	Name         string
	Birthdate    time.Time
	DeviceID     string
	Address      Address
	Phone        string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
