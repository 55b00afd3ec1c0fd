package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/night-assist/assist-service/internal/domain"
	"github.com/night-assist/assist-service/internal/repository"
	apperrors "github.com/night-assist/assist-service/pkg/util"
)

// citizenPatchColumns maps patchable request fields to their columns.
// Identifier fields are deliberately absent: patching an id is a 400.
var citizenPatchColumns = map[string]string{
	"name":      "name",
	"birthdate": "birthdate",
	"deviceId":  "device_id",
	"phone":     "phone",
	"email":     "email",
	"password":  "password_hash",
	"postal":    "postal",
	"street":    "street",
	"city":      "city",
}

// FieldUpdate is one requested field change in a patch.
type FieldUpdate struct {
	PropName string
	Value    any
}

// CitizenService handles administration of citizen records.
type CitizenService struct {
	citizens repository.CitizenRepository
	cache    *repository.DeviceCache
	auth     *AuthService
}

// NewCitizenService builds the service.
func NewCitizenService(citizens repository.CitizenRepository, cache *repository.DeviceCache, auth *AuthService) *CitizenService {
	return &CitizenService{citizens: citizens, cache: cache, auth: auth}
}

// List returns citizens with the optional pagination window.
func (s *CitizenService) List(ctx context.Context, page repository.PageRequest) ([]*domain.Citizen, int64, error) {
	return s.citizens.List(ctx, page)
}

// Get returns one citizen by id.
func (s *CitizenService) Get(ctx context.Context, id string) (*domain.Citizen, error) {
	citizen, err := s.citizens.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("citizen", nil)
		}
		return nil, err
	}
	return citizen, nil
}

// Patch applies a set of field updates. Unknown fields reject the whole
// patch; password values are re-hashed before storage. Returns the
// number of rows changed (zero means nothing changed).
func (s *CitizenService) Patch(ctx context.Context, id string, updates []FieldUpdate) (int64, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return 0, err
	}

	fields := make(map[string]any, len(updates))
	for _, update := range updates {
		column, ok := citizenPatchColumns[update.PropName]
		if !ok {
			return 0, apperrors.NewValidationError("invalid propName", map[string]any{
				"propName": update.PropName,
			})
		}
		if update.PropName == "password" {
			plain, ok := update.Value.(string)
			if !ok {
				return 0, apperrors.NewValidationError("password must be a string", nil)
			}
			hash, err := s.auth.HashPassword(plain)
			if err != nil {
				return 0, err
			}
			fields[column] = hash
			continue
		}
		fields[column] = update.Value
	}

	affected, err := s.citizens.UpdateFields(ctx, id, fields)
	if err != nil {
		return 0, err
	}
	if affected > 0 {
		s.cache.Invalidate(ctx, existing.DeviceID)
	}
	return affected, nil
}

// Delete removes a citizen record and drops its device cache entry.
func (s *CitizenService) Delete(ctx context.Context, id string) error {
	existing, err := s.citizens.GetByID(ctx, id)
	if err != nil && err != pgx.ErrNoRows {
		return err
	}

	if err := s.citizens.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			// deleting an absent record is still a success to the caller
			return nil
		}
		return err
	}
	if existing != nil {
		s.cache.Invalidate(ctx, existing.DeviceID)
	}
	return nil
}
