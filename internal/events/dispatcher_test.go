package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestPublishInvokesSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher(zap.NewNop())

	var got []Event
	dispatcher.Subscribe(EventAccidentReported, func(_ context.Context, event Event) error {
		got = append(got, event)
		return nil
	})
	dispatcher.Subscribe(EventAccidentReported, func(_ context.Context, event Event) error {
		got = append(got, event)
		return nil
	})

	event := Event{
		ID:        "evt-1",
		Type:      EventAccidentReported,
		Timestamp: time.Now(),
		Payload:   AccidentReportedPayload{AccidentID: "accident-1"},
	}
	if err := dispatcher.Publish(context.Background(), event); err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected both subscribers invoked, got %d", len(got))
	}
	for _, received := range got {
		if received.ID != "evt-1" {
			t.Errorf("unexpected event id '%s'", received.ID)
		}
	}
}

func TestPublishWithoutSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher(zap.NewNop())
	if err := dispatcher.Publish(context.Background(), Event{Type: EventCitizenRegistered}); err != nil {
		t.Errorf("publishing with no subscribers should succeed: %v", err)
	}
}

func TestHandlerErrorDoesNotPropagate(t *testing.T) {
	dispatcher := NewInMemoryDispatcher(zap.NewNop())

	invoked := false
	dispatcher.Subscribe(EventTimestampRecorded, func(context.Context, Event) error {
		return errors.New("handler broke")
	})
	dispatcher.Subscribe(EventTimestampRecorded, func(context.Context, Event) error {
		invoked = true
		return nil
	})

	if err := dispatcher.Publish(context.Background(), Event{Type: EventTimestampRecorded}); err != nil {
		t.Errorf("handler errors must not reach the publisher: %v", err)
	}
	if !invoked {
		t.Error("a failing handler must not stop later handlers")
	}
}

func TestSubscribeIsTypeScoped(t *testing.T) {
	dispatcher := NewInMemoryDispatcher(zap.NewNop())

	invoked := false
	dispatcher.Subscribe(EventAccidentReported, func(context.Context, Event) error {
		invoked = true
		return nil
	})

	if err := dispatcher.Publish(context.Background(), Event{Type: EventCitizenRegistered}); err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}
	if invoked {
		t.Error("handler for another event type must not fire")
	}
}
