package events

import (
	"time"

	"github.com/spec-kit/hr-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLeaveApplied       EventType = "leave_applied"
	EventLeaveStatusChanged EventType = "leave_status_changed"
	EventAttendanceMarked   EventType = "attendance_marked"
	EventPayrollAdded       EventType = "payroll_added"
)

// Actor identifies who triggered the event.
type Actor struct {
	ID   int64       `json:"id"`
	Role domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID           string      `json:"id"`
	Type         EventType   `json:"type"`
	EmployeeCode string      `json:"employee_id"`
	Actor        Actor       `json:"actor"`
	Timestamp    time.Time   `json:"timestamp"`
	Payload      interface{} `json:"payload"`
}

// LeaveAppliedPayload payload.
type LeaveAppliedPayload struct {
	LeaveID   int64            `json:"leave_id"`
	LeaveType domain.LeaveType `json:"leave_type"`
	StartDate string           `json:"start_date"`
	EndDate   string           `json:"end_date"`
	Days      int              `json:"number_of_days"`
}

// LeaveStatusChangedPayload payload.
type LeaveStatusChangedPayload struct {
	LeaveID   int64              `json:"leave_id"`
	OldStatus domain.LeaveStatus `json:"old_status"`
	NewStatus domain.LeaveStatus `json:"new_status"`
}

// AttendanceMarkedPayload payload.
type AttendanceMarkedPayload struct {
	AttendanceID int64                   `json:"attendance_id"`
	Day          string                  `json:"date"`
	Status       domain.AttendanceStatus `json:"status"`
	Created      bool                    `json:"created"`
}

// PayrollAddedPayload payload.
type PayrollAddedPayload struct {
	PayrollID int64   `json:"salary_id"`
	Month     string  `json:"month"`
	Net       float64 `json:"net_salary"`
}
