package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/hr-service/internal/domain"
)

// PayrollRepository manages monthly payroll entries. Entries are write-once;
// the unique constraint on (employee_id, month) backs the duplicate check.
type PayrollRepository interface {
	Create(ctx context.Context, entry *domain.PayrollEntry) error
	GetByEmployeeMonth(ctx context.Context, code, month string) (*domain.PayrollEntry, error)
	ListByEmployee(ctx context.Context, code string) ([]domain.PayrollEntry, error)
	ListAll(ctx context.Context) ([]domain.PayrollEntry, error)
	// LatestByEmployee orders by the zero-padded month token descending.
	LatestByEmployee(ctx context.Context, code string) (*domain.PayrollEntry, error)
}

type payrollRepository struct {
	db DB
}

// NewPayrollRepository returns a Postgres-backed implementation.
func NewPayrollRepository(db DB) PayrollRepository {
	return &payrollRepository{db: db}
}

const payrollColumns = `id, employee_id, month, basic_salary, deduction, net_salary`

func (r *payrollRepository) Create(ctx context.Context, entry *domain.PayrollEntry) error {
	const query = `
        INSERT INTO salaries (employee_id, month, basic_salary, deduction, net_salary)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id`
	return r.db.QueryRow(ctx, query,
		entry.EmployeeCode,
		entry.Month,
		entry.Basic,
		entry.Deduction,
		entry.Net,
	).Scan(&entry.ID)
}

func (r *payrollRepository) GetByEmployeeMonth(ctx context.Context, code, month string) (*domain.PayrollEntry, error) {
	const query = `SELECT ` + payrollColumns + ` FROM salaries WHERE employee_id=$1 AND month=$2`
	return scanPayrollRow(r.db.QueryRow(ctx, query, code, month))
}

func (r *payrollRepository) ListByEmployee(ctx context.Context, code string) ([]domain.PayrollEntry, error) {
	const query = `SELECT ` + payrollColumns + ` FROM salaries WHERE employee_id=$1 ORDER BY month DESC`
	rows, err := r.db.Query(ctx, query, code)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPayrollEntries(rows)
}

func (r *payrollRepository) ListAll(ctx context.Context) ([]domain.PayrollEntry, error) {
	const query = `SELECT ` + payrollColumns + ` FROM salaries ORDER BY employee_id, month DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPayrollEntries(rows)
}

func (r *payrollRepository) LatestByEmployee(ctx context.Context, code string) (*domain.PayrollEntry, error) {
	const query = `SELECT ` + payrollColumns + ` FROM salaries WHERE employee_id=$1 ORDER BY month DESC LIMIT 1`
	return scanPayrollRow(r.db.QueryRow(ctx, query, code))
}

func scanPayrollRow(row pgx.Row) (*domain.PayrollEntry, error) {
	var entry domain.PayrollEntry
	if err := row.Scan(
		&entry.ID,
		&entry.EmployeeCode,
		&entry.Month,
		&entry.Basic,
		&entry.Deduction,
		&entry.Net,
	); err != nil {
		return nil, err
	}
	return &entry, nil
}

func scanPayrollEntries(rows pgx.Rows) ([]domain.PayrollEntry, error) {
	var result []domain.PayrollEntry
	for rows.Next() {
		entry, err := scanPayrollRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *entry)
	}
	return result, rows.Err()
}
