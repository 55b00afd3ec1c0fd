package dto

import "time"

// AddressPayload mirrors the citizen address shape.
type AddressPayload struct {
	Postal int    `json:"postal"`
	Street string `json:"street"`
	City   string `json:"city"`
}

// CitizenSignupRequest payload for new citizens.
type CitizenSignupRequest struct {
	Name      string         `json:"name"`
	Birthdate string         `json:"birthdate"`
	DeviceID  string         `json:"deviceId"`
	Address   AddressPayload `json:"address"`
	Phone     string         `json:"phone"`
	Email     string         `json:"email"`
	Password  string         `json:"password"`
}

// CitizenLoginRequest payload for citizen login.
type CitizenLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AdminSignupRequest payload for new admins.
type AdminSignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminLoginRequest payload for admin login.
type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse standard response for login endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ParseDate accepts both plain dates and RFC 3339 timestamps.
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
