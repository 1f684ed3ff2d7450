package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/hr-service/internal/domain"
)

// LeaveRepository manages leave request persistence.
//
// HasOverlapping followed by Create is a read-then-write sequence with no
// covering unique constraint; callers needing strict exclusion under
// concurrent applies for the same employee must serialize those writes.
type LeaveRepository interface {
	Create(ctx context.Context, req *domain.LeaveRequest) error
	GetByID(ctx context.Context, id int64) (*domain.LeaveRequest, error)
	UpdateStatus(ctx context.Context, id int64, status domain.LeaveStatus) error
	ListByEmployee(ctx context.Context, code string) ([]domain.LeaveRequest, error)
	ListAll(ctx context.Context) ([]domain.LeaveRequest, error)
	// HasOverlapping reports whether a pending or approved request for the
	// employee shares a day with [start, end].
	HasOverlapping(ctx context.Context, code string, start, end time.Time) (bool, error)
	CountByStatus(ctx context.Context, status domain.LeaveStatus) (int64, error)
	ListApprovedInYear(ctx context.Context, code string, year int) ([]domain.LeaveRequest, error)
}

type leaveRepository struct {
	db DB
}

// NewLeaveRepository returns a Postgres-backed implementation.
func NewLeaveRepository(db DB) LeaveRepository {
	return &leaveRepository{db: db}
}

const leaveColumns = `id, employee_id, leave_type, start_date, end_date, status, reason`

func (r *leaveRepository) Create(ctx context.Context, req *domain.LeaveRequest) error {
	const query = `
        INSERT INTO leaves (employee_id, leave_type, start_date, end_date, status, reason)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id`
	return r.db.QueryRow(ctx, query,
		req.EmployeeCode,
		req.Type,
		req.StartDate,
		req.EndDate,
		req.Status,
		req.Reason,
	).Scan(&req.ID)
}

func (r *leaveRepository) GetByID(ctx context.Context, id int64) (*domain.LeaveRequest, error) {
	const query = `SELECT ` + leaveColumns + ` FROM leaves WHERE id=$1`
	return scanLeaveRow(r.db.QueryRow(ctx, query, id))
}

func (r *leaveRepository) UpdateStatus(ctx context.Context, id int64, status domain.LeaveStatus) error {
	cmd, err := r.db.Exec(ctx, `UPDATE leaves SET status=$1 WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *leaveRepository) ListByEmployee(ctx context.Context, code string) ([]domain.LeaveRequest, error) {
	const query = `SELECT ` + leaveColumns + ` FROM leaves WHERE employee_id=$1 ORDER BY id`
	rows, err := r.db.Query(ctx, query, code)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLeaves(rows)
}

func (r *leaveRepository) ListAll(ctx context.Context) ([]domain.LeaveRequest, error) {
	const query = `SELECT ` + leaveColumns + ` FROM leaves ORDER BY id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLeaves(rows)
}

func (r *leaveRepository) HasOverlapping(ctx context.Context, code string, start, end time.Time) (bool, error) {
	const query = `
        SELECT EXISTS (
            SELECT 1 FROM leaves
            WHERE employee_id=$1
              AND status IN ('pending', 'approved')
              AND start_date <= $3 AND end_date >= $2
        )`
	var exists bool
	err := r.db.QueryRow(ctx, query, code, start, end).Scan(&exists)
	return exists, err
}

func (r *leaveRepository) CountByStatus(ctx context.Context, status domain.LeaveStatus) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM leaves WHERE status=$1`, status).Scan(&count)
	return count, err
}

func (r *leaveRepository) ListApprovedInYear(ctx context.Context, code string, year int) ([]domain.LeaveRequest, error) {
	const query = `
        SELECT ` + leaveColumns + ` FROM leaves
        WHERE employee_id=$1 AND status='approved' AND EXTRACT(YEAR FROM start_date) = $2
        ORDER BY start_date`
	rows, err := r.db.Query(ctx, query, code, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLeaves(rows)
}

func scanLeaveRow(row pgx.Row) (*domain.LeaveRequest, error) {
	var req domain.LeaveRequest
	if err := row.Scan(
		&req.ID,
		&req.EmployeeCode,
		&req.Type,
		&req.StartDate,
		&req.EndDate,
		&req.Status,
		&req.Reason,
	); err != nil {
		return nil, err
	}
	return &req, nil
}

func scanLeaves(rows pgx.Rows) ([]domain.LeaveRequest, error) {
	var result []domain.LeaveRequest
	for rows.Next() {
		req, err := scanLeaveRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *req)
	}
	return result, rows.Err()
}
