package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/night-assist/assist-service/internal/repository"
	apperrors "github.com/night-assist/assist-service/pkg/util"
)

var adminPatchColumns = map[string]string{
	"username": "username",
	"password": "password_hash",
}

// AdminService handles administration of admin accounts themselves.
type AdminService struct {
	admins repository.AdminRepository
	auth   *AuthService
}

// NewAdminService builds the service.
func NewAdminService(admins repository.AdminRepository, auth *AuthService) *AdminService {
	return &AdminService{admins: admins, auth: auth}
}

// Patch applies field updates; password values are re-hashed.
func (s *AdminService) Patch(ctx context.Context, id string, updates []FieldUpdate) (int64, error) {
	fields := make(map[string]any, len(updates))
	for _, update := range updates {
		column, ok := adminPatchColumns[update.PropName]
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
	return s.admins.UpdateFields(ctx, id, fields)
}

// Delete removes an admin account.
func (s *AdminService) Delete(ctx context.Context, id string) error {
	if err := s.admins.Delete(ctx, id); err != nil && err != pgx.ErrNoRows {
		return err
	}
	return nil
}
