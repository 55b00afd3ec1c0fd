package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventCitizenRegistered EventType = "citizen_registered"
	EventTimestampRecorded EventType = "timestamp_recorded"
	EventAccidentReported  EventType = "accident_reported"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// CitizenRegisteredPayload payload.
type CitizenRegisteredPayload struct {
	CitizenID string `json:"citizen_id"`
	DeviceID  string `json:"device_id"`
}

// TimestampRecordedPayload payload.
type TimestampRecordedPayload struct {
	TimestampID string    `json:"timestamp_id"`
	CitizenID   string    `json:"citizen_id"`
	DeviceID    string    `json:"device_id"`
	PositionID  int       `json:"position_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
}

// AccidentReportedPayload payload. Carries everything the operator SMS
// needs so subscribers never go back to storage.
type AccidentReportedPayload struct {
	AccidentID string    `json:"accident_id"`
	CitizenID  string    `json:"citizen_id"`
	DeviceID   string    `json:"device_id"`
	PositionID int       `json:"position_id"`
	AlarmTime  time.Time `json:"alarm_time"`
}
