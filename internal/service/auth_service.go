package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/night-assist/assist-service/internal/auth"
	"github.com/night-assist/assist-service/internal/config"
	"github.com/night-assist/assist-service/internal/domain"
	"github.com/night-assist/assist-service/internal/events"
	"github.com/night-assist/assist-service/internal/repository"
	apperrors "github.com/night-assist/assist-service/pkg/util"
)

// AuthService coordinates signup and login flows for both principals.
// Credential failures always collapse to the same generic 401 no matter
// whether the identifier was unknown or the password wrong.
type AuthService struct {
	citizens   repository.CitizenRepository
	admins     repository.AdminRepository
	dispatcher events.Dispatcher
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	CitizenRepo repository.CitizenRepository
	AdminRepo   repository.AdminRepository
	Dispatcher  events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		citizens:   deps.CitizenRepo,
		admins:     deps.AdminRepo,
		dispatcher: deps.Dispatcher,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// CitizenSignupInput carries the fields needed to register a citizen.
type CitizenSignupInput struct {
	Name      string
	Birthdate time.Time
	DeviceID  string
	Address   domain.Address
	Phone     string
	Email     string
	Password  string
}

// RegisterCitizen creates a new citizen account. Email, phone and device
// id must all be unused.
func (s *AuthService) RegisterCitizen(ctx context.Context, input CitizenSignupInput) (*domain.Citizen, error) {
	conflicts, err := s.citizens.CountConflicts(ctx, input.Email, input.Phone, input.DeviceID)
	if err != nil {
		return nil, err
	}
	if conflicts > 0 {
		return nil, apperrors.NewConflict("unique data already in use", nil)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	citizen := &domain.Citizen{
		Name:         input.Name,
		Birthdate:    input.Birthdate,
		DeviceID:     input.DeviceID,
		Address:      input.Address,
		Phone:        input.Phone,
		Email:        input.Email,
		PasswordHash: hash,
	}
	if err := s.citizens.Create(ctx, citizen); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, newEvent(events.EventCitizenRegistered, events.CitizenRegisteredPayload{
			CitizenID: citizen.ID,
			DeviceID:  citizen.DeviceID,
		}))
	}
	return citizen, nil
}

// LoginCitizen authenticates a citizen by email and issues a token with
// the citizen role.
func (s *AuthService) LoginCitizen(ctx context.Context, email, password string) (*domain.Citizen, string, time.Time, error) {
	citizen, err := s.citizens.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			// burn a hash comparison so unknown emails are not faster
			_ = auth.CompareDummy(password)
			return nil, "", time.Time{}, apperrors.NewUnauthorized("authorization failed")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(citizen.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("authorization failed")
	}

	token, exp, err := s.tokenMgr.Issue(citizen.ID, citizen.Email, domain.RoleCitizen)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return citizen, token, exp, nil
}

// RegisterAdmin creates a new administrator account. Only reachable
// through an admin-guarded route.
func (s *AuthService) RegisterAdmin(ctx context.Context, username, password string) (*domain.Admin, error) {
	if _, err := s.admins.GetByUsername(ctx, username); err == nil {
		return nil, apperrors.NewConflict("admin username exists already", nil)
	} else if err != pgx.ErrNoRows {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	admin := &domain.Admin{Username: username, PasswordHash: hash}
	if err := s.admins.Create(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// LoginAdmin authenticates an administrator by username and issues a
// token with the admin role.
func (s *AuthService) LoginAdmin(ctx context.Context, username, password string) (*domain.Admin, string, time.Time, error) {
	admin, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		if err == pgx.ErrNoRows {
			_ = auth.CompareDummy(password)
			return nil, "", time.Time{}, apperrors.NewUnauthorized("authorization failed")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(admin.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("authorization failed")
	}

	token, exp, err := s.tokenMgr.Issue(admin.ID, admin.Username, domain.RoleAdmin)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return admin, token, exp, nil
}

// EnsureDefaultAdmin seeds the bootstrap administrator when the admins
// table is empty, so a fresh deployment is reachable.
func (s *AuthService) EnsureDefaultAdmin(ctx context.Context, cfg config.BootstrapConfig) error {
	count, err := s.admins.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 || cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return nil
	}

	hash, err := auth.HashPassword(cfg.AdminPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	return s.admins.Create(ctx, &domain.Admin{Username: cfg.AdminUsername, PasswordHash: hash})
}

// TokenManager exposes the underlying token manager for the guard.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// HashPassword re-hashes a password for patch flows with the service's
// configured cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	return auth.HashPassword(password, s.bcryptCost)
}
