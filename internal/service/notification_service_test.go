package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/night-assist/assist-service/internal/config"
	"github.com/night-assist/assist-service/internal/events"
	"github.com/night-assist/assist-service/internal/observability"
)

type capturingSender struct {
	sent chan string
	to   chan string
}

func newCapturingSender() *capturingSender {
	return &capturingSender{sent: make(chan string, 1), to: make(chan string, 1)}
}

func (s *capturingSender) Send(_ context.Context, to, body string) error {
	s.to <- to
	s.sent <- body
	return nil
}

func TestAccidentReportTriggersOperatorSMS(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	sender := newCapturingSender()
	svc := NewNotificationService(dispatcher, sender, zap.NewNop(), observability.NewMetrics(), config.SMSConfig{
		OperatorNumber: "+31600000000",
	})
	svc.RegisterHandlers()

	alarm := time.Date(2026, 2, 1, 3, 12, 0, 0, time.UTC)
	err := dispatcher.Publish(context.Background(), newEvent(events.EventAccidentReported, events.AccidentReportedPayload{
		AccidentID: "accident-1",
		CitizenID:  "citizen-1",
		DeviceID:   "device-1",
		PositionID: 3,
		AlarmTime:  alarm,
	}))
	if err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}

	select {
	case to := <-sender.to:
		if to != "+31600000000" {
			t.Errorf("SMS must go to the operator number, got '%s'", to)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for SMS dispatch")
	}

	body := <-sender.sent
	for _, fragment := range []string{"citizen-1", "device-1", "Position ID: 3", alarm.Format(time.RFC3339)} {
		if !strings.Contains(body, fragment) {
			t.Errorf("SMS body missing '%s': %s", fragment, body)
		}
	}
}

func TestOtherEventsDoNotSendSMS(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	sender := newCapturingSender()
	svc := NewNotificationService(dispatcher, sender, zap.NewNop(), observability.NewMetrics(), config.SMSConfig{})
	svc.RegisterHandlers()

	err := dispatcher.Publish(context.Background(), newEvent(events.EventCitizenRegistered, events.CitizenRegisteredPayload{
		CitizenID: "citizen-1",
		DeviceID:  "device-1",
	}))
	if err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}

	select {
	case <-sender.sent:
		t.Error("citizen registration must not dispatch an SMS")
	case <-time.After(100 * time.Millisecond):
	}
}
