package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/night-assist/assist-service/internal/events"
)

func newEvent(eventType events.EventType, payload interface{}) events.Event {
	return events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	}
}
