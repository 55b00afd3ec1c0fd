package domain

import "time"

// Accident is an emergency report raised from a citizen's device.
type Accident struct {
	ID         string
	CitizenID  string
	DeviceID   string
	PositionID int
	AlarmTime  time.Time
	CreatedAt  time.Time
}
