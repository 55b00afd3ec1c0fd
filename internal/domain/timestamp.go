package domain

import "time"

// Timestamp records a check-in window reported by a citizen's device.
// PositionID identifies one of the fixed device positions (0-4).
type Timestamp struct {
	ID         string
	CitizenID  string
	DeviceID   string
	PositionID int
	StartTime  time.Time
	EndTime    time.Time
	CreatedAt  time.Time
}

// PositionIDValid reports whether a position identifier is in range.
func PositionIDValid(position int) bool {
	return position >= 0 && position <= 4
}
