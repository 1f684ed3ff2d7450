package domain

import "time"

// AttendanceStatus enumerates the daily attendance markings.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
)

// Valid reports whether the status is one of the allowed markings.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate:
		return true
	}
	return false
}

// AttendanceRecord holds one status per employee per calendar day. The pair
// (EmployeeCode, Day) is unique; marking twice the same day replaces the
// status rather than appending a second row.
type AttendanceRecord struct {
	ID           int64
	EmployeeCode string
	Day          time.Time
	Status       AttendanceStatus
}
