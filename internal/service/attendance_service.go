package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/hr-service/internal/domain"
	"github.com/spec-kit/hr-service/internal/events"
	"github.com/spec-kit/hr-service/internal/repository"
	apperrors "github.com/spec-kit/hr-service/pkg/util"
)

const dateLayout = "2006-01-02"

const defaultReportWindowDays = 30

// MarkResult reports the outcome of a daily attendance mark.
type MarkResult struct {
	AttendanceID int64
	Status       domain.AttendanceStatus
	Created      bool
}

// AttendanceReport is the admin report over a date range.
type AttendanceReport struct {
	StartDate string
	EndDate   string
	Rows      []repository.AttendanceReportRow
}

// AttendanceService owns the one-status-per-employee-per-day ledger.
type AttendanceService struct {
	attendance repository.AttendanceRepository
	employees  repository.EmployeeRepository
	dispatcher events.Dispatcher
	clock      Clock
}

// NewAttendanceService constructs the service.
func NewAttendanceService(attendance repository.AttendanceRepository, employees repository.EmployeeRepository, dispatcher events.Dispatcher, clock Clock) *AttendanceService {
	if clock == nil {
		clock = NewClock()
	}
	return &AttendanceService{
		attendance: attendance,
		employees:  employees,
		dispatcher: dispatcher,
		clock:      clock,
	}
}

// Mark records today's status for an employee. Repeated marks on the same day
// replace the stored status; the day never holds more than one record.
func (s *AttendanceService) Mark(ctx context.Context, actor domain.Identity, employeeCode, status string) (*MarkResult, error) {
	emp, err := s.employees.GetByCode(ctx, employeeCode)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("employee", map[string]any{"employee_id": employeeCode})
		}
		return nil, apperrors.MapError(err)
	}

	marked := domain.AttendanceStatus(status)
	if !marked.Valid() {
		return nil, apperrors.NewValidationError("invalid status, must be one of: present, absent, late", nil)
	}

	rec := &domain.AttendanceRecord{
		EmployeeCode: emp.Code,
		Day:          dateOnly(s.clock.Now()),
		Status:       marked,
	}
	created, err := s.attendance.UpsertForDay(ctx, rec)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, actor, emp.Code, events.AttendanceMarkedPayload{
		AttendanceID: rec.ID,
		Day:          rec.Day.Format(dateLayout),
		Status:       rec.Status,
		Created:      created,
	})

	return &MarkResult{AttendanceID: rec.ID, Status: rec.Status, Created: created}, nil
}

// Report returns attendance rows in the requested range, newest day first.
// Both bounds default to the trailing 30 days when omitted. An inverted
// range is not rejected; it simply yields no rows, a hazard callers inherit
// from the behavior this service preserves.
func (s *AttendanceService) Report(ctx context.Context, startStr, endStr string) (*AttendanceReport, error) {
	today := dateOnly(s.clock.Now())

	start := today.AddDate(0, 0, -defaultReportWindowDays)
	end := today
	var err error

	if startStr != "" {
		if start, err = time.Parse(dateLayout, startStr); err != nil {
			return nil, apperrors.NewValidationError("invalid date format, use YYYY-MM-DD", map[string]any{"start_date": startStr})
		}
	}
	if endStr != "" {
		if end, err = time.Parse(dateLayout, endStr); err != nil {
			return nil, apperrors.NewValidationError("invalid date format, use YYYY-MM-DD", map[string]any{"end_date": endStr})
		}
	}

	rows, err := s.attendance.Report(ctx, start, end)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	return &AttendanceReport{
		StartDate: start.Format(dateLayout),
		EndDate:   end.Format(dateLayout),
		Rows:      rows,
	}, nil
}

func (s *AttendanceService) publish(ctx context.Context, actor domain.Identity, employeeCode string, payload events.AttendanceMarkedPayload) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:           uuid.NewString(),
		Type:         events.EventAttendanceMarked,
		EmployeeCode: employeeCode,
		Actor:        events.Actor{ID: actor.ID, Role: actor.Role},
		Timestamp:    s.clock.Now(),
		Payload:      payload,
	})
}
