package dto

import "time"

// TimestampCreateRequest payload for device check-ins.
type TimestampCreateRequest struct {
	DeviceID   string    `json:"deviceId"`
	PositionID int       `json:"positionId"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
}

// AccidentReportRequest payload for accident reports.
type AccidentReportRequest struct {
	DeviceID   string    `json:"deviceId"`
	PositionID int       `json:"positionId"`
	AlarmTime  time.Time `json:"alarmTime"`
}

// OrderCreateRequest payload for new orders.
type OrderCreateRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}
