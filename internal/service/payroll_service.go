package service

import (
	"context"
	"errors"
	"regexp"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/hr-service/internal/domain"
	"github.com/spec-kit/hr-service/internal/events"
	"github.com/spec-kit/hr-service/internal/repository"
	apperrors "github.com/spec-kit/hr-service/pkg/util"
)

// monthPattern accepts only zero-padded YYYY-MM tokens. Padding matters:
// "latest entry" ordering is lexical on this column.
var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// PayrollService owns the one-entry-per-employee-per-month ledger. Entries
// are write-once; net always equals basic minus deduction.
type PayrollService struct {
	payroll    repository.PayrollRepository
	employees  repository.EmployeeRepository
	dispatcher events.Dispatcher
	clock      Clock
}

// NewPayrollService constructs the service.
func NewPayrollService(payroll repository.PayrollRepository, employees repository.EmployeeRepository, dispatcher events.Dispatcher, clock Clock) *PayrollService {
	if clock == nil {
		clock = NewClock()
	}
	return &PayrollService{
		payroll:    payroll,
		employees:  employees,
		dispatcher: dispatcher,
		clock:      clock,
	}
}

// Add records a month's pay for an employee. The duplicate-month pre-check
// is best effort; the unique constraint on (employee_id, month) catches a
// racing insert and surfaces it as the same conflict.
func (s *PayrollService) Add(ctx context.Context, actor domain.Identity, employeeCode, month string, basic, deduction float64) (*domain.PayrollEntry, error) {
	emp, err := s.employees.GetByCode(ctx, employeeCode)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("employee", map[string]any{"employee_id": employeeCode})
		}
		return nil, apperrors.MapError(err)
	}

	if !monthPattern.MatchString(month) {
		return nil, apperrors.NewValidationError("invalid month, use zero-padded YYYY-MM", map[string]any{"month": month})
	}

	if _, err := s.payroll.GetByEmployeeMonth(ctx, emp.Code, month); err == nil {
		return nil, apperrors.NewConflict("salary already exists for this employee in this month", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	entry := &domain.PayrollEntry{
		EmployeeCode: emp.Code,
		Month:        month,
		Basic:        basic,
		Deduction:    deduction,
		Net:          basic - deduction,
	}
	if err := s.payroll.Create(ctx, entry); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, actor, emp.Code, events.PayrollAddedPayload{
		PayrollID: entry.ID,
		Month:     entry.Month,
		Net:       entry.Net,
	})

	return entry, nil
}

// ListForEmployee returns the calling employee's payroll history.
func (s *PayrollService) ListForEmployee(ctx context.Context, actor domain.Identity) (string, []domain.PayrollEntry, error) {
	emp, err := s.employees.GetByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil, apperrors.NewNotFound("employee", nil)
		}
		return "", nil, apperrors.MapError(err)
	}

	entries, err := s.payroll.ListByEmployee(ctx, emp.Code)
	if err != nil {
		return "", nil, apperrors.MapError(err)
	}
	return emp.Code, entries, nil
}

// ListByCode returns an employee's payroll history for the admin view.
func (s *PayrollService) ListByCode(ctx context.Context, employeeCode string) ([]domain.PayrollEntry, error) {
	if _, err := s.employees.GetByCode(ctx, employeeCode); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("employee", map[string]any{"employee_id": employeeCode})
		}
		return nil, apperrors.MapError(err)
	}

	entries, err := s.payroll.ListByEmployee(ctx, employeeCode)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return entries, nil
}

// ListAll returns every payroll entry, for the admin overview.
func (s *PayrollService) ListAll(ctx context.Context) ([]domain.PayrollEntry, error) {
	entries, err := s.payroll.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return entries, nil
}

// LatestForEmployee returns the most recent entry by month token, or nil when
// the employee has no payroll yet.
func (s *PayrollService) LatestForEmployee(ctx context.Context, employeeCode string) (*domain.PayrollEntry, error) {
	entry, err := s.payroll.LatestByEmployee(ctx, employeeCode)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.MapError(err)
	}
	return entry, nil
}

func (s *PayrollService) publish(ctx context.Context, actor domain.Identity, employeeCode string, payload events.PayrollAddedPayload) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:           uuid.NewString(),
		Type:         events.EventPayrollAdded,
		EmployeeCode: employeeCode,
		Actor:        events.Actor{ID: actor.ID, Role: actor.Role},
		Timestamp:    s.clock.Now(),
		Payload:      payload,
	})
}
