package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/hr-service/internal/domain"
	"github.com/spec-kit/hr-service/internal/events"
	"github.com/spec-kit/hr-service/internal/repository"
	apperrors "github.com/spec-kit/hr-service/pkg/util"
)

// ApplyLeaveInput is the employee-facing leave application payload.
type ApplyLeaveInput struct {
	LeaveType string
	StartDate time.Time
	EndDate   time.Time
	Reason    *string
}

// LeaveService runs the leave request state machine:
// pending -> approved | rejected, with both outcomes terminal.
type LeaveService struct {
	leaves     repository.LeaveRepository
	employees  repository.EmployeeRepository
	dispatcher events.Dispatcher
	clock      Clock
}

// NewLeaveService constructs the service.
func NewLeaveService(leaves repository.LeaveRepository, employees repository.EmployeeRepository, dispatcher events.Dispatcher, clock Clock) *LeaveService {
	if clock == nil {
		clock = NewClock()
	}
	return &LeaveService{
		leaves:     leaves,
		employees:  employees,
		dispatcher: dispatcher,
		clock:      clock,
	}
}

// Apply creates a pending leave request for the calling employee. Validation
// runs in order: leave type, date rules against today, then overlap against
// the employee's pending and approved requests.
func (s *LeaveService) Apply(ctx context.Context, actor domain.Identity, input ApplyLeaveInput) (*domain.LeaveRequest, error) {
	emp, err := s.employees.GetByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("employee", nil)
		}
		return nil, apperrors.MapError(err)
	}

	leaveType := domain.LeaveType(strings.ToLower(input.LeaveType))
	if !leaveType.Valid() {
		return nil, apperrors.NewValidationError("invalid leave type, allowed types: annual, sick, personal, maternity, unpaid", nil)
	}

	start := dateOnly(input.StartDate)
	end := dateOnly(input.EndDate)
	today := dateOnly(s.clock.Now())

	if start.Before(today) {
		return nil, apperrors.NewValidationError("start date cannot be in the past", nil)
	}
	if end.Before(start) {
		return nil, apperrors.NewValidationError("end date cannot be before start date", nil)
	}

	overlapping, err := s.leaves.HasOverlapping(ctx, emp.Code, start, end)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if overlapping {
		return nil, apperrors.NewConflict("a pending or approved leave application already covers these dates", nil)
	}

	req := &domain.LeaveRequest{
		EmployeeCode: emp.Code,
		Type:         leaveType,
		StartDate:    start,
		EndDate:      end,
		Status:       domain.LeavePending,
		Reason:       input.Reason,
	}
	if err := s.leaves.Create(ctx, req); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, actor, emp.Code, events.EventLeaveApplied, events.LeaveAppliedPayload{
		LeaveID:   req.ID,
		LeaveType: req.Type,
		StartDate: req.StartDate.Format(dateLayout),
		EndDate:   req.EndDate.Format(dateLayout),
		Days:      req.Days(),
	})

	return req, nil
}

// Approve moves a pending request to approved.
func (s *LeaveService) Approve(ctx context.Context, actor domain.Identity, leaveID int64) error {
	return s.decide(ctx, actor, leaveID, domain.LeaveApproved)
}

// Reject moves a pending request to rejected.
func (s *LeaveService) Reject(ctx context.Context, actor domain.Identity, leaveID int64) error {
	return s.decide(ctx, actor, leaveID, domain.LeaveRejected)
}

func (s *LeaveService) decide(ctx context.Context, actor domain.Identity, leaveID int64, next domain.LeaveStatus) error {
	req, err := s.leaves.GetByID(ctx, leaveID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("leave", map[string]any{"leave_id": leaveID})
		}
		return apperrors.MapError(err)
	}

	// Terminal states are immutable: a decided request cannot be re-decided.
	if req.Status.Terminal() {
		return apperrors.NewConflict(fmt.Sprintf("leave request is already %s", req.Status), nil)
	}

	if err := s.leaves.UpdateStatus(ctx, leaveID, next); err != nil {
		return apperrors.MapError(err)
	}

	s.publish(ctx, actor, req.EmployeeCode, events.EventLeaveStatusChanged, events.LeaveStatusChangedPayload{
		LeaveID:   leaveID,
		OldStatus: req.Status,
		NewStatus: next,
	})
	return nil
}

// ListForEmployee returns the calling employee's requests.
func (s *LeaveService) ListForEmployee(ctx context.Context, actor domain.Identity) (string, []domain.LeaveRequest, error) {
	emp, err := s.employees.GetByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil, apperrors.NewNotFound("employee", nil)
		}
		return "", nil, apperrors.MapError(err)
	}

	leaves, err := s.leaves.ListByEmployee(ctx, emp.Code)
	if err != nil {
		return "", nil, apperrors.MapError(err)
	}
	return emp.Code, leaves, nil
}

// ListAll returns every request, for the admin overview.
func (s *LeaveService) ListAll(ctx context.Context) ([]domain.LeaveRequest, error) {
	leaves, err := s.leaves.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return leaves, nil
}

func (s *LeaveService) publish(ctx context.Context, actor domain.Identity, employeeCode string, eventType events.EventType, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:           uuid.NewString(),
		Type:         eventType,
		EmployeeCode: employeeCode,
		Actor:        events.Actor{ID: actor.ID, Role: actor.Role},
		Timestamp:    s.clock.Now(),
		Payload:      payload,
	})
}
