package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"

	"github.com/spec-kit/hr-service/internal/domain"
)

func TestPayrollRepository_Create(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewPayrollRepository(mock)

	query := regexp.QuoteMeta(`
        INSERT INTO salaries (employee_id, month, basic_salary, deduction, net_salary)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id`)

	mock.ExpectQuery(query).
		WithArgs("EMP001", "2026-02", 5000.0, 500.0, 4500.0).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(11)))

	entry := &domain.PayrollEntry{
		EmployeeCode: "EMP001",
		Month:        "2026-02",
		Basic:        5000,
		Deduction:    500,
		Net:          4500,
	}
	if err := repo.Create(context.Background(), entry); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if entry.ID != 11 {
		t.Fatalf("expected id 11, got %d", entry.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPayrollRepository_GetByEmployeeMonth(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewPayrollRepository(mock)

	query := regexp.QuoteMeta(`SELECT id, employee_id, month, basic_salary, deduction, net_salary FROM salaries WHERE employee_id=$1 AND month=$2`)

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs("EMP001", "2026-02").
			WillReturnRows(pgxmock.NewRows([]string{"id", "employee_id", "month", "basic_salary", "deduction", "net_salary"}).
				AddRow(int64(11), "EMP001", "2026-02", 5000.0, 500.0, 4500.0))

		entry, err := repo.GetByEmployeeMonth(context.Background(), "EMP001", "2026-02")
		if err != nil {
			t.Fatalf("GetByEmployeeMonth returned error: %v", err)
		}
		if entry.Net != 4500 {
			t.Fatalf("expected net 4500, got %v", entry.Net)
		}
	})

	t.Run("missing month surfaces ErrNoRows", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs("EMP001", "2026-03").
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.GetByEmployeeMonth(context.Background(), "EMP001", "2026-03")
		if !errors.Is(err, pgx.ErrNoRows) {
			t.Fatalf("expected pgx.ErrNoRows, got %v", err)
		}
	})

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPayrollRepository_ListByEmployee(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewPayrollRepository(mock)

	query := regexp.QuoteMeta(`SELECT id, employee_id, month, basic_salary, deduction, net_salary FROM salaries WHERE employee_id=$1 ORDER BY month DESC`)

	rows := pgxmock.NewRows([]string{"id", "employee_id", "month", "basic_salary", "deduction", "net_salary"}).
		AddRow(int64(12), "EMP001", "2026-02", 5000.0, 500.0, 4500.0).
		AddRow(int64(11), "EMP001", "2026-01", 5000.0, 250.0, 4750.0)

	mock.ExpectQuery(query).WithArgs("EMP001").WillReturnRows(rows)

	entries, err := repo.ListByEmployee(context.Background(), "EMP001")
	if err != nil {
		t.Fatalf("ListByEmployee returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Month != "2026-02" || entries[1].Month != "2026-01" {
		t.Fatalf("unexpected order: %+v", entries)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
