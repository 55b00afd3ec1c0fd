package service

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/night-assist/assist-service/internal/config"
	"github.com/night-assist/assist-service/internal/domain"
	"github.com/night-assist/assist-service/internal/repository"
)

// In-memory repositories used across the service tests. They mirror the
// Postgres implementations' contract, including pgx.ErrNoRows on misses.

type fakeCitizenRepo struct {
	citizens map[string]*domain.Citizen
	nextID   int
}

func newFakeCitizenRepo() *fakeCitizenRepo {
	return &fakeCitizenRepo{citizens: make(map[string]*domain.Citizen)}
}

func (r *fakeCitizenRepo) Create(_ context.Context, citizen *domain.Citizen) error {
	r.nextID++
	citizen.ID = fmt.Sprintf("citizen-%d", r.nextID)
	stored := *citizen
	r.citizens[citizen.ID] = &stored
	return nil
}

func (r *fakeCitizenRepo) GetByID(_ context.Context, id string) (*domain.Citizen, error) {
	citizen, ok := r.citizens[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *citizen
	return &copied, nil
}

func (r *fakeCitizenRepo) GetByEmail(_ context.Context, email string) (*domain.Citizen, error) {
	for _, citizen := range r.citizens {
		if citizen.Email == email {
			copied := *citizen
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeCitizenRepo) GetByDeviceID(_ context.Context, deviceID string) (*domain.Citizen, error) {
	for _, citizen := range r.citizens {
		if citizen.DeviceID == deviceID {
			copied := *citizen
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeCitizenRepo) CountConflicts(_ context.Context, email, phone, deviceID string) (int64, error) {
	var count int64
	for _, citizen := range r.citizens {
		if citizen.Email == email || (phone != "" && citizen.Phone == phone) || citizen.DeviceID == deviceID {
			count++
		}
	}
	return count, nil
}

func (r *fakeCitizenRepo) List(_ context.Context, page repository.PageRequest) ([]*domain.Citizen, int64, error) {
	all := make([]*domain.Citizen, 0, len(r.citizens))
	for _, citizen := range r.citizens {
		copied := *citizen
		all = append(all, &copied)
	}
	return paginate(all, page), int64(len(r.citizens)), nil
}

func (r *fakeCitizenRepo) UpdateFields(_ context.Context, id string, fields map[string]any) (int64, error) {
	citizen, ok := r.citizens[id]
	if !ok {
		return 0, nil
	}
	for column, value := range fields {
		switch column {
		case "name":
			citizen.Name, _ = value.(string)
		case "email":
			citizen.Email, _ = value.(string)
		case "phone":
			citizen.Phone, _ = value.(string)
		case "device_id":
			citizen.DeviceID, _ = value.(string)
		case "password_hash":
			citizen.PasswordHash, _ = value.(string)
		case "street":
			citizen.Address.Street, _ = value.(string)
		case "city":
			citizen.Address.City, _ = value.(string)
		}
	}
	return 1, nil
}

func (r *fakeCitizenRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.citizens[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.citizens, id)
	return nil
}

type fakeAdminRepo struct {
	admins map[string]*domain.Admin
	nextID int
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: make(map[string]*domain.Admin)}
}

func (r *fakeAdminRepo) Create(_ context.Context, admin *domain.Admin) error {
	r.nextID++
	admin.ID = fmt.Sprintf("admin-%d", r.nextID)
	stored := *admin
	r.admins[admin.ID] = &stored
	return nil
}

func (r *fakeAdminRepo) GetByID(_ context.Context, id string) (*domain.Admin, error) {
	admin, ok := r.admins[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *admin
	return &copied, nil
}

func (r *fakeAdminRepo) GetByUsername(_ context.Context, username string) (*domain.Admin, error) {
	for _, admin := range r.admins {
		if admin.Username == username {
			copied := *admin
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeAdminRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.admins)), nil
}

func (r *fakeAdminRepo) UpdateFields(_ context.Context, id string, fields map[string]any) (int64, error) {
	admin, ok := r.admins[id]
	if !ok {
		return 0, nil
	}
	for column, value := range fields {
		switch column {
		case "username":
			admin.Username, _ = value.(string)
		case "password_hash":
			admin.PasswordHash, _ = value.(string)
		}
	}
	return 1, nil
}

func (r *fakeAdminRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.admins[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.admins, id)
	return nil
}

type fakeTimestampRepo struct {
	timestamps map[string]*domain.Timestamp
	nextID     int
}

func newFakeTimestampRepo() *fakeTimestampRepo {
	return &fakeTimestampRepo{timestamps: make(map[string]*domain.Timestamp)}
}

func (r *fakeTimestampRepo) Create(_ context.Context, ts *domain.Timestamp) error {
	r.nextID++
	ts.ID = fmt.Sprintf("timestamp-%d", r.nextID)
	stored := *ts
	r.timestamps[ts.ID] = &stored
	return nil
}

func (r *fakeTimestampRepo) GetByID(_ context.Context, id string) (*domain.Timestamp, error) {
	ts, ok := r.timestamps[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *ts
	return &copied, nil
}

func (r *fakeTimestampRepo) List(_ context.Context, page repository.PageRequest) ([]*domain.Timestamp, int64, error) {
	all := make([]*domain.Timestamp, 0, len(r.timestamps))
	for _, ts := range r.timestamps {
		copied := *ts
		all = append(all, &copied)
	}
	return paginate(all, page), int64(len(r.timestamps)), nil
}

func (r *fakeTimestampRepo) ListByCitizen(_ context.Context, idOrDevice string, page repository.PageRequest) ([]*domain.Timestamp, int64, error) {
	matched := make([]*domain.Timestamp, 0)
	for _, ts := range r.timestamps {
		if ts.CitizenID == idOrDevice || ts.DeviceID == idOrDevice {
			copied := *ts
			matched = append(matched, &copied)
		}
	}
	total := int64(len(matched))
	return paginate(matched, page), total, nil
}

func (r *fakeTimestampRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.timestamps[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.timestamps, id)
	return nil
}

func paginate[T any](items []T, page repository.PageRequest) []T {
	if !page.Enabled() {
		return items
	}
	start := page.Offset()
	if start >= len(items) {
		return nil
	}
	end := start + page.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "service-test-secret",
			AccessTokenTTLMinutes: 60,
			BcryptCost:            4,
		},
	}
}

func noCache() *repository.DeviceCache {
	return repository.NewDeviceCache(nil, 0)
}

func pageRequest(page, limit int) repository.PageRequest {
	return repository.PageRequest{Page: page, Limit: limit}
}
