package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/night-assist/assist-service/internal/domain"
)

// AccidentRepository defines persistence access for accident reports.
type AccidentRepository interface {
	Create(ctx context.Context, accident *domain.Accident) error
	GetByID(ctx context.Context, id string) (*domain.Accident, error)
	List(ctx context.Context, page PageRequest) ([]*domain.Accident, int64, error)
	Delete(ctx context.Context, id string) error
}

type accidentRepository struct {
	pool *pgxpool.Pool
}

// NewAccidentRepository returns a Postgres-backed implementation.
func NewAccidentRepository(pool *pgxpool.Pool) AccidentRepository {
	return &accidentRepository{pool: pool}
}

const accidentColumns = `id, citizen_id, device_id, position_id, alarm_time, created_at`

func scanAccident(row pgx.Row) (*domain.Accident, error) {
	var a domain.Accident
	if err := row.Scan(
		&a.ID,
		&a.CitizenID,
		&a.DeviceID,
		&a.PositionID,
		&a.AlarmTime,
		&a.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *accidentRepository) Create(ctx context.Context, accident *domain.Accident) error {
	const query = `
        INSERT INTO accidents (citizen_id, device_id, position_id, alarm_time)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		accident.CitizenID,
		accident.DeviceID,
		accident.PositionID,
		accident.AlarmTime,
	).Scan(&accident.ID, &accident.CreatedAt)
}

func (r *accidentRepository) GetByID(ctx context.Context, id string) (*domain.Accident, error) {
	query := `SELECT ` + accidentColumns + ` FROM accidents WHERE id=$1`
	return scanAccident(r.pool.QueryRow(ctx, query, id))
}

func (r *accidentRepository) List(ctx context.Context, page PageRequest) ([]*domain.Accident, int64, error) {
	query := `SELECT ` + accidentColumns + ` FROM accidents ORDER BY alarm_time DESC`
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

	accidents := make([]*domain.Accident, 0)
	for rows.Next() {
		accident, err := scanAccident(rows)
		if err != nil {
			return nil, 0, err
		}
		accidents = append(accidents, accident)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM accidents`).Scan(&total); err != nil {
		return nil, 0, err
	}
	return accidents, total, nil
}

func (r *accidentRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM accidents WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
