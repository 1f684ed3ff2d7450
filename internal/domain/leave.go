package domain

import "time"

// LeaveType enumerates the leave categories an employee may request.
type LeaveType string

const (
	LeaveAnnual    LeaveType = "annual"
	LeaveSick      LeaveType = "sick"
	LeavePersonal  LeaveType = "personal"
	LeaveMaternity LeaveType = "maternity"
	LeaveUnpaid    LeaveType = "unpaid"
)

// Valid reports whether the leave type is one of the fixed set.
func (t LeaveType) Valid() bool {
	switch t {
	case LeaveAnnual, LeaveSick, LeavePersonal, LeaveMaternity, LeaveUnpaid:
		return true
	}
	return false
}

// LeaveStatus enumerates the request lifecycle. Pending is the only
// non-terminal state; approved and rejected admit no further transition.
type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

// Terminal reports whether no further status change is allowed.
func (s LeaveStatus) Terminal() bool {
	return s == LeaveApproved || s == LeaveRejected
}

// LeaveRequest models a dated leave application.
type LeaveRequest struct {
	ID           int64
	EmployeeCode string
	Type         LeaveType
	StartDate    time.Time
	EndDate      time.Time
	Status       LeaveStatus
	Reason       *string
}

// Days returns the inclusive day count of the requested range.
func (l *LeaveRequest) Days() int {
	return int(l.EndDate.Sub(l.StartDate).Hours()/24) + 1
}

// Overlaps reports whether the request shares at least one calendar day with
// the [start, end] range.
func (l *LeaveRequest) Overlaps(start, end time.Time) bool {
	return !l.StartDate.After(end) && !l.EndDate.Before(start)
}
