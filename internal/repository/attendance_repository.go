package repository

import (
	"context"
	"time"

	"github.com/spec-kit/hr-service/internal/domain"
)

// AttendanceReportRow pairs a record with display fields for the report.
type AttendanceReportRow struct {
	Record       domain.AttendanceRecord
	EmployeeName string
	DepartmentID *int64
}

// AttendanceRepository manages daily attendance records. The unique
// constraint on (employee_id, day) makes UpsertForDay atomic; racing marks
// for the same day converge to the last written status.
type AttendanceRepository interface {
	// UpsertForDay inserts or replaces the day's record and reports whether
	// a new row was created.
	UpsertForDay(ctx context.Context, rec *domain.AttendanceRecord) (bool, error)
	// Report returns joined rows in [start, end], newest day first.
	Report(ctx context.Context, start, end time.Time) ([]AttendanceReportRow, error)
	CountOnDay(ctx context.Context, day time.Time, status domain.AttendanceStatus) (int64, error)
	CountForEmployeeMonth(ctx context.Context, code string, year int, month time.Month, status domain.AttendanceStatus) (int64, error)
}

type attendanceRepository struct {
	db DB
}

// NewAttendanceRepository returns a Postgres-backed implementation.
func NewAttendanceRepository(db DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) UpsertForDay(ctx context.Context, rec *domain.AttendanceRecord) (bool, error) {
	// xmax = 0 only holds for freshly inserted tuples, which distinguishes
	// the insert path from the conflict-update path in one round trip.
	const query = `
        INSERT INTO attendance (employee_id, day, status)
        VALUES ($1,$2,$3)
        ON CONFLICT ON CONSTRAINT attendance_employee_day_key
        DO UPDATE SET status = EXCLUDED.status
        RETURNING id, (xmax = 0)`

	var created bool
	if err := r.db.QueryRow(ctx, query, rec.EmployeeCode, rec.Day, rec.Status).Scan(&rec.ID, &created); err != nil {
		return false, err
	}
	return created, nil
}

func (r *attendanceRepository) Report(ctx context.Context, start, end time.Time) ([]AttendanceReportRow, error) {
	const query = `
        SELECT a.id, a.employee_id, a.day, a.status,
               e.first_name || ' ' || e.last_name, e.department_id
        FROM attendance a
        JOIN employees e ON e.employee_id = a.employee_id
        WHERE a.day >= $1 AND a.day <= $2
        ORDER BY a.day DESC`

	rows, err := r.db.Query(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []AttendanceReportRow
	for rows.Next() {
		var row AttendanceReportRow
		if err := rows.Scan(
			&row.Record.ID,
			&row.Record.EmployeeCode,
			&row.Record.Day,
			&row.Record.Status,
			&row.EmployeeName,
			&row.DepartmentID,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *attendanceRepository) CountOnDay(ctx context.Context, day time.Time, status domain.AttendanceStatus) (int64, error) {
	const query = `SELECT COUNT(*) FROM attendance WHERE day=$1 AND status=$2`
	var count int64
	err := r.db.QueryRow(ctx, query, day, status).Scan(&count)
	return count, err
}

func (r *attendanceRepository) CountForEmployeeMonth(ctx context.Context, code string, year int, month time.Month, status domain.AttendanceStatus) (int64, error) {
	const query = `
        SELECT COUNT(*) FROM attendance
        WHERE employee_id=$1 AND status=$2
          AND EXTRACT(YEAR FROM day) = $3 AND EXTRACT(MONTH FROM day) = $4`
	var count int64
	err := r.db.QueryRow(ctx, query, code, status, year, int(month)).Scan(&count)
	return count, err
}
