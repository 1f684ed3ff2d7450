package domain

import "time"

// Role enumerates the two access roles. There is no hierarchy: an operation
// requires exactly one role and the other is rejected.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// Employee is the domain model for staff identities. Referenced everywhere
// else by the external Code, never by pointer.
type Employee struct {
	ID           int64
	Code         string
	FirstName    string
	LastName     string
	Email        string
	Phone        *string
	PasswordHash string
	Role         Role
	DepartmentID *int64
	IsActive     bool
	Address      *string
	DateOfBirth  *time.Time
	Salary       *float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DisplayName returns the name shown in reports.
func (e *Employee) DisplayName() string {
	return e.FirstName + " " + e.LastName
}
