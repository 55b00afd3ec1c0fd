package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/night-assist/assist-service/internal/config"
	"github.com/night-assist/assist-service/internal/events"
	"github.com/night-assist/assist-service/internal/notification"
	"github.com/night-assist/assist-service/internal/observability"
)

// NotificationService reacts to domain events. Its only real side effect
// is the operator SMS on accident reports; dispatch is fire-and-forget
// and the outcome is only logged and counted.
type NotificationService struct {
	dispatcher events.Dispatcher
	sender     notification.SMSSender
	logger     *zap.Logger
	metrics    *observability.Metrics
	operator   string
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, sender notification.SMSSender, logger *zap.Logger, metrics *observability.Metrics, cfg config.SMSConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		sender:     sender,
		logger:     logger,
		metrics:    metrics,
		operator:   cfg.OperatorNumber,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventAccidentReported, n.handleAccidentReported)
	n.dispatcher.Subscribe(events.EventCitizenRegistered, n.handleCitizenRegistered)
	n.dispatcher.Subscribe(events.EventTimestampRecorded, n.handleTimestampRecorded)
}

func (n *NotificationService) handleAccidentReported(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.AccidentReportedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload for %s", event.Type)
	}

	n.logger.Info("AccidentReported",
		zap.String("accident_id", payload.AccidentID),
		zap.String("device_id", payload.DeviceID),
		zap.Int("position_id", payload.PositionID))

	body := fmt.Sprintf(
		"Accident reported by citizen %s. Device ID: %s, Position ID: %d, Alarm Time: %s",
		payload.CitizenID, payload.DeviceID, payload.PositionID,
		payload.AlarmTime.Format(time.RFC3339),
	)

	// Dispatch runs detached from the request so a slow provider never
	// delays the 201 back to the reporting device.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := n.sender.Send(ctx, n.operator, body); err != nil {
			n.metrics.RecordSMSDispatch("failed")
			n.logger.Warn("sms dispatch failed",
				zap.String("accident_id", payload.AccidentID),
				zap.Error(err))
			return
		}
		n.metrics.RecordSMSDispatch("sent")
		n.logger.Info("sms dispatched", zap.String("accident_id", payload.AccidentID))
	}()
	return nil
}

func (n *NotificationService) handleCitizenRegistered(_ context.Context, event events.Event) error {
	n.logger.Info("CitizenRegistered", zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleTimestampRecorded(_ context.Context, event events.Event) error {
	n.logger.Debug("TimestampRecorded", zap.Any("payload", event.Payload))
	return nil
}
