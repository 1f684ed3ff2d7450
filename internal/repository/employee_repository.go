package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/hr-service/internal/domain"
)

// EmployeeRepository defines persistence access for employees.
type EmployeeRepository interface {
	Create(ctx context.Context, emp *domain.Employee) error
	Update(ctx context.Context, emp *domain.Employee) error
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	GetByEmail(ctx context.Context, email string) (*domain.Employee, error)
	GetByCode(ctx context.Context, code string) (*domain.Employee, error)
	List(ctx context.Context) ([]domain.Employee, error)
	ListByDepartment(ctx context.Context, departmentID int64) ([]domain.Employee, error)
	Count(ctx context.Context) (int64, error)
	HasRole(ctx context.Context, role domain.Role) (bool, error)
}

type employeeRepository struct {
	db DB
}

// NewEmployeeRepository returns a Postgres-backed implementation.
func NewEmployeeRepository(db DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `id, employee_id, first_name, last_name, email, phone, password_hash,
        role, department_id, is_active, address, date_of_birth, salary, created_at, updated_at`

func (r *employeeRepository) Create(ctx context.Context, emp *domain.Employee) error {
	const query = `
        INSERT INTO employees (employee_id, first_name, last_name, email, phone, password_hash,
            role, department_id, is_active, address, date_of_birth, salary)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
        RETURNING id, created_at, updated_at`

	return r.db.QueryRow(ctx, query,
		emp.Code,
		emp.FirstName,
		emp.LastName,
		emp.Email,
		emp.Phone,
		emp.PasswordHash,
		emp.Role,
		emp.DepartmentID,
		emp.IsActive,
		emp.Address,
		emp.DateOfBirth,
		emp.Salary,
	).Scan(&emp.ID, &emp.CreatedAt, &emp.UpdatedAt)
}

func (r *employeeRepository) Update(ctx context.Context, emp *domain.Employee) error {
	const query = `
        UPDATE employees SET first_name=$1, last_name=$2, email=$3, phone=$4, password_hash=$5,
            role=$6, department_id=$7, is_active=$8, address=$9, date_of_birth=$10, salary=$11,
            updated_at=NOW()
        WHERE id=$12`

	cmd, err := r.db.Exec(ctx, query,
		emp.FirstName,
		emp.LastName,
		emp.Email,
		emp.Phone,
		emp.PasswordHash,
		emp.Role,
		emp.DepartmentID,
		emp.IsActive,
		emp.Address,
		emp.DateOfBirth,
		emp.Salary,
		emp.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	const query = `SELECT ` + employeeColumns + ` FROM employees WHERE id=$1`
	return scanEmployeeRow(r.db.QueryRow(ctx, query, id))
}

func (r *employeeRepository) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	const query = `SELECT ` + employeeColumns + ` FROM employees WHERE email=$1`
	return scanEmployeeRow(r.db.QueryRow(ctx, query, email))
}

func (r *employeeRepository) GetByCode(ctx context.Context, code string) (*domain.Employee, error) {
	const query = `SELECT ` + employeeColumns + ` FROM employees WHERE employee_id=$1`
	return scanEmployeeRow(r.db.QueryRow(ctx, query, code))
}

func (r *employeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	const query = `SELECT ` + employeeColumns + ` FROM employees ORDER BY id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEmployees(rows)
}

func (r *employeeRepository) ListByDepartment(ctx context.Context, departmentID int64) ([]domain.Employee, error) {
	const query = `SELECT ` + employeeColumns + ` FROM employees WHERE department_id=$1 ORDER BY id`
	rows, err := r.db.Query(ctx, query, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEmployees(rows)
}

func (r *employeeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM employees`).Scan(&count)
	return count, err
}

func (r *employeeRepository) HasRole(ctx context.Context, role domain.Role) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM employees WHERE role=$1)`, role).Scan(&exists)
	return exists, err
}

func scanEmployeeRow(row pgx.Row) (*domain.Employee, error) {
	var emp domain.Employee
	if err := row.Scan(
		&emp.ID,
		&emp.Code,
		&emp.FirstName,
		&emp.LastName,
		&emp.Email,
		&emp.Phone,
		&emp.PasswordHash,
		&emp.Role,
		&emp.DepartmentID,
		&emp.IsActive,
		&emp.Address,
		&emp.DateOfBirth,
		&emp.Salary,
		&emp.CreatedAt,
		&emp.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &emp, nil
}

func scanEmployees(rows pgx.Rows) ([]domain.Employee, error) {
	var result []domain.Employee
	for rows.Next() {
		emp, err := scanEmployeeRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *emp)
	}
	return result, rows.Err()
}
