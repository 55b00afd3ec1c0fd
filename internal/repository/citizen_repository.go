package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/night-assist/assist-service/internal/domain"
)

// CitizenRepository defines persistence access for citizens.
type CitizenRepository interface {
	Create(ctx context.Context, citizen *domain.Citizen) error
	GetByID(ctx context.Context, id string) (*domain.Citizen, error)
	GetByEmail(ctx context.Context, email string) (*domain.Citizen, error)
	GetByDeviceID(ctx context.Context, deviceID string) (*domain.Citizen, error)
	CountConflicts(ctx context.Context, email, phone, deviceID string) (int64, error)
	List(ctx context.Context, page PageRequest) ([]*domain.Citizen, int64, error)
	UpdateFields(ctx context.Context, id string, fields map[string]any) (int64, error)
	Delete(ctx context.Context, id string) error
}

type citizenRepository struct {
	pool *pgxpool.Pool
}

// NewCitizenRepository returns a Postgres-backed implementation.
func NewCitizenRepository(pool *pgxpool.Pool) CitizenRepository {
	return &citizenRepository{pool: pool}
}

const citizenColumns = `id, name, birthdate, device_id, postal, street, city, phone, email, password_hash, created_at, updated_at`

func scanCitizen(row pgx.Row) (*domain.Citizen, error) {
	var c domain.Citizen
	if err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Birthdate,
		&c.DeviceID,
		&c.Address.Postal,
		&c.Address.Street,
		&c.Address.City,
		&c.Phone,
		&c.Email,
		&c.PasswordHash,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *citizenRepository) Create(ctx context.Context, citizen *domain.Citizen) error {
	const query = `
        INSERT INTO citizens (name, birthdate, device_id, postal, street, city, phone, email, password_hash)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		citizen.Name,
		citizen.Birthdate,
		citizen.DeviceID,
		citizen.Address.Postal,
		citizen.Address.Street,
		citizen.Address.City,
		citizen.Phone,
		citizen.Email,
		citizen.PasswordHash,
	).Scan(&citizen.ID, &citizen.CreatedAt, &citizen.UpdatedAt)
}

func (r *citizenRepository) GetByID(ctx context.Context, id string) (*domain.Citizen, error) {
	query := `SELECT ` + citizenColumns + ` FROM citizens WHERE id=$1`
	return scanCitizen(r.pool.QueryRow(ctx, query, id))
}

func (r *citizenRepository) GetByEmail(ctx context.Context, email string) (*domain.Citizen, error) {
	query := `SELECT ` + citizenColumns + ` FROM citizens WHERE email=$1`
	return scanCitizen(r.pool.QueryRow(ctx, query, email))
}

func (r *citizenRepository) GetByDeviceID(ctx context.Context, deviceID string) (*domain.Citizen, error) {
	query := `SELECT ` + citizenColumns + ` FROM citizens WHERE device_id=$1`
	return scanCitizen(r.pool.QueryRow(ctx, query, deviceID))
}

func (r *citizenRepository) CountConflicts(ctx context.Context, email, phone, deviceID string) (int64, error) {
	const query = `
        SELECT COUNT(*) FROM citizens
        WHERE email=$1 OR (phone <> '' AND phone=$2) OR device_id=$3`

	var count int64
	if err := r.pool.QueryRow(ctx, query, email, phone, deviceID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *citizenRepository) List(ctx context.Context, page PageRequest) ([]*domain.Citizen, int64, error) {
	query := `SELECT ` + citizenColumns + ` FROM citizens ORDER BY created_at`
	args := []any{}
	if page.Enabled() {
		query += ` LIMIT $1 OFFSET $2`
		args = append(args, page.Limit, page.Offset())
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	citizens := make([]*domain.Citizen, 0)
	for rows.Next() {
		citizen, err := scanCitizen(rows)
		if err != nil {
			return nil, 0, err
		}
		citizens = append(citizens, citizen)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM citizens`).Scan(&total); err != nil {
		return nil, 0, err
	}
	return citizens, total, nil
}

func (r *citizenRepository) UpdateFields(ctx context.Context, id string, fields map[string]any) (int64, error) {
	if len(fields) == 0 {
		return 0, nil
	}

	sets := make([]string, 0, len(fields)+1)
	args := make([]any, 0, len(fields)+1)
	i := 1
	for column, value := range fields {
		sets = append(sets, fmt.Sprintf("%s=$%d", column, i))
		args = append(args, value)
		i++
	}
	sets = append(sets, "updated_at=NOW()")
	args = append(args, id)

	query := fmt.Sprintf("UPDATE citizens SET %s WHERE id=$%d", strings.Join(sets, ", "), i)
	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *citizenRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM citizens WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
