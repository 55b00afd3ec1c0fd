package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/night-assist/assist-service/internal/domain"
	"github.com/night-assist/assist-service/internal/events"
	"github.com/night-assist/assist-service/internal/observability"
	"github.com/night-assist/assist-service/internal/repository"
	apperrors "github.com/night-assist/assist-service/pkg/util"
)

// AccidentService handles emergency reports raised from devices.
type AccidentService struct {
	accidents  repository.AccidentRepository
	citizens   repository.CitizenRepository
	cache      *repository.DeviceCache
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
}

// NewAccidentService builds the service.
func NewAccidentService(accidents repository.AccidentRepository, citizens repository.CitizenRepository, cache *repository.DeviceCache, dispatcher events.Dispatcher, metrics *observability.Metrics) *AccidentService {
	return &AccidentService{
		accidents:  accidents,
		citizens:   citizens,
		cache:      cache,
		dispatcher: dispatcher,
		metrics:    metrics,
	}
}

// ReportInput carries an accident report to store.
type ReportInput struct {
	DeviceID   string
	PositionID int
	AlarmTime  time.Time
}

// Report resolves the device to its citizen, stores the accident and
// publishes the event that triggers the operator SMS. The report is
// accepted regardless of whether the SMS dispatch later succeeds.
func (s *AccidentService) Report(ctx context.Context, input ReportInput) (*domain.Accident, error) {
	if !domain.PositionIDValid(input.PositionID) {
		return nil, apperrors.NewValidationError("positionId out of range", map[string]any{
			"positionId": input.PositionID,
		})
	}

	citizen, err := s.resolveDevice(ctx, input.DeviceID)
	if err != nil {
		return nil, err
	}

	accident := &domain.Accident{
		CitizenID:  citizen.ID,
		DeviceID:   input.DeviceID,
		PositionID: input.PositionID,
		AlarmTime:  input.AlarmTime,
	}
	if err := s.accidents.Create(ctx, accident); err != nil {
		return nil, err
	}
	s.metrics.RecordAccidentReported()

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, newEvent(events.EventAccidentReported, events.AccidentReportedPayload{
			AccidentID: accident.ID,
			CitizenID:  accident.CitizenID,
			DeviceID:   accident.DeviceID,
			PositionID: accident.PositionID,
			AlarmTime:  accident.AlarmTime,
		}))
	}
	return accident, nil
}

// List returns accidents with the optional pagination window.
func (s *AccidentService) List(ctx context.Context, page repository.PageRequest) ([]*domain.Accident, int64, error) {
	return s.accidents.List(ctx, page)
}

// Delete removes an accident report.
func (s *AccidentService) Delete(ctx context.Context, id string) error {
	if err := s.accidents.Delete(ctx, id); err != nil && err != pgx.ErrNoRows {
		return err
	}
	return nil
}

func (s *AccidentService) resolveDevice(ctx context.Context, deviceID string) (*domain.Citizen, error) {
	if citizen, ok := s.cache.Get(ctx, deviceID); ok {
		return citizen, nil
	}

	citizen, err := s.citizens.GetByDeviceID(ctx, deviceID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("device id", nil)
		}
		return nil, err
	}
	s.cache.Set(ctx, citizen)
	return citizen, nil
}
