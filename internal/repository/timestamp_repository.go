package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/night-assist/assist-service/internal/domain"
)

// TimestampRepository defines persistence access for check-in timestamps.
type TimestampRepository interface {
	Create(ctx context.Context, ts *domain.Timestamp) error
	GetByID(ctx context.Context, id string) (*domain.Timestamp, error)
	List(ctx context.Context, page PageRequest) ([]*domain.Timestamp, int64, error)
	// ListByCitizen matches either the citizen id or the device id,
	// mirroring the lookup-by-either behavior of the reporting clients.
	ListByCitizen(ctx context.Context, idOrDevice string, page PageRequest) ([]*domain.Timestamp, int64, error)
	Delete(ctx context.Context, id string) error
}

type timestampRepository struct {
	pool *pgxpool.Pool
}

// NewTimestampRepository returns a Postgres-backed implementation.
func NewTimestampRepository(pool *pgxpool.Pool) TimestampRepository {
	return &timestampRepository{pool: pool}
}

const timestampColumns = `id, citizen_id, device_id, position_id, start_time, end_time, created_at`

func scanTimestamp(row pgx.Row) (*domain.Timestamp, error) {
	var ts domain.Timestamp
	if err := row.Scan(
		&ts.ID,
		&ts.CitizenID,
		&ts.DeviceID,
		&ts.PositionID,
		&ts.StartTime,
		&ts.EndTime,
		&ts.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &ts, nil
}

func (r *timestampRepository) Create(ctx context.Context, ts *domain.Timestamp) error {
	const query = `
        INSERT INTO timestamps (citizen_id, device_id, position_id, start_time, end_time)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		ts.CitizenID,
		ts.DeviceID,
		ts.PositionID,
		ts.StartTime,
		ts.EndTime,
	).Scan(&ts.ID, &ts.CreatedAt)
}

func (r *timestampRepository) GetByID(ctx context.Context, id string) (*domain.Timestamp, error) {
	query := `SELECT ` + timestampColumns + ` FROM timestamps WHERE id=$1`
	return scanTimestamp(r.pool.QueryRow(ctx, query, id))
}

func (r *timestampRepository) List(ctx context.Context, page PageRequest) ([]*domain.Timestamp, int64, error) {
	query := `SELECT ` + timestampColumns + ` FROM timestamps ORDER BY start_time`
	args := []any{}
	if page.Enabled() {
		query += ` LIMIT $1 OFFSET $2`
		args = append(args, page.Limit, page.Offset())
	}

	timestamps, err := r.queryMany(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM timestamps`).Scan(&total); err != nil {
		return nil, 0, err
	}
	return timestamps, total, nil
}

func (r *timestampRepository) ListByCitizen(ctx context.Context, idOrDevice string, page PageRequest) ([]*domain.Timestamp, int64, error) {
	query := `SELECT ` + timestampColumns + ` FROM timestamps
        WHERE citizen_id::text=$1 OR device_id=$1 ORDER BY start_time`
	args := []any{idOrDevice}
	if page.Enabled() {
		query += ` LIMIT $2 OFFSET $3`
		args = append(args, page.Limit, page.Offset())
	}

	timestamps, err := r.queryMany(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	const countQuery = `SELECT COUNT(*) FROM timestamps WHERE citizen_id::text=$1 OR device_id=$1`
	if err := r.pool.QueryRow(ctx, countQuery, idOrDevice).Scan(&total); err != nil {
		return nil, 0, err
	}
	return timestamps, total, nil
}

func (r *timestampRepository) queryMany(ctx context.Context, query string, args ...any) ([]*domain.Timestamp, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	timestamps := make([]*domain.Timestamp, 0)
	for rows.Next() {
		ts, err := scanTimestamp(rows)
		if err != nil {
			return nil, err
		}
		timestamps = append(timestamps, ts)
	}
	return timestamps, rows.Err()
}

func (r *timestampRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM timestamps WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
