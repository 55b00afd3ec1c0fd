package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/night-assist/assist-service/internal/domain"
	"github.com/night-assist/assist-service/internal/events"
	"github.com/night-assist/assist-service/internal/repository"
	apperrors "github.com/night-assist/assist-service/pkg/util"
)

// TimestampService handles check-in windows reported by devices.
type TimestampService struct {
	timestamps repository.TimestampRepository
	citizens   repository.CitizenRepository
	cache      *repository.DeviceCache
	dispatcher events.Dispatcher
}

// NewTimestampService builds the service.
func NewTimestampService(timestamps repository.TimestampRepository, citizens repository.CitizenRepository, cache *repository.DeviceCache, dispatcher events.Dispatcher) *TimestampService {
	return &TimestampService{
		timestamps: timestamps,
		citizens:   citizens,
		cache:      cache,
		dispatcher: dispatcher,
	}
}

// RecordInput carries a check-in to store.
type RecordInput struct {
	DeviceID   string
	PositionID int
	StartTime  time.Time
	EndTime    time.Time
}

// Record resolves the device to its citizen and stores the check-in. An
// unknown device id is a 404; the route itself is public.
func (s *TimestampService) Record(ctx context.Context, input RecordInput) (*domain.Timestamp, error) {
	if !domain.PositionIDValid(input.PositionID) {
		return nil, apperrors.NewValidationError("positionId out of range", map[string]any{
			"positionId": input.PositionID,
		})
	}

	citizen, err := s.resolveDevice(ctx, input.DeviceID)
	if err != nil {
		return nil, err
	}

	ts := &domain.Timestamp{
		CitizenID:  citizen.ID,
		DeviceID:   input.DeviceID,
		PositionID: input.PositionID,
		StartTime:  input.StartTime,
		EndTime:    input.EndTime,
	}
	if err := s.timestamps.Create(ctx, ts); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, newEvent(events.EventTimestampRecorded, events.TimestampRecordedPayload{
			TimestampID: ts.ID,
			CitizenID:   ts.CitizenID,
			DeviceID:    ts.DeviceID,
			PositionID:  ts.PositionID,
			StartTime:   ts.StartTime,
			EndTime:     ts.EndTime,
		}))
	}
	return ts, nil
}

// List returns timestamps with the optional pagination window.
func (s *TimestampService) List(ctx context.Context, page repository.PageRequest) ([]*domain.Timestamp, int64, error) {
	return s.timestamps.List(ctx, page)
}

// Get returns one timestamp by id.
func (s *TimestampService) Get(ctx context.Context, id string) (*domain.Timestamp, error) {
	ts, err := s.timestamps.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("timestamp", nil)
		}
		return nil, err
	}
	return ts, nil
}

// ListByCitizen returns the timestamps recorded for a citizen id or a
// device id. An empty result is a 404, matching the reporting clients'
// expectation.
func (s *TimestampService) ListByCitizen(ctx context.Context, idOrDevice string, page repository.PageRequest) ([]*domain.Timestamp, int64, error) {
	timestamps, total, err := s.timestamps.ListByCitizen(ctx, idOrDevice, page)
	if err != nil {
		return nil, 0, err
	}
	if len(timestamps) == 0 {
		return nil, 0, apperrors.NewNotFound("timestamps for citizen", nil)
	}
	return timestamps, total, nil
}

// Delete removes a timestamp.
func (s *TimestampService) Delete(ctx context.Context, id string) error {
	if err := s.timestamps.Delete(ctx, id); err != nil && err != pgx.ErrNoRows {
		return err
	}
	return nil
}

func (s *TimestampService) resolveDevice(ctx context.Context, deviceID string) (*domain.Citizen, error) {
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
