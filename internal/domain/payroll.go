package domain

// PayrollEntry records one month's pay for an employee. Net is always
// Basic - Deduction and the pair (EmployeeCode, Month) is unique. Entries
// are never mutated once written.
type PayrollEntry struct {
	ID           int64
	EmployeeCode string
	// Month is a zero-padded "YYYY-MM" token; lexical descending order is
	// therefore chronological descending order.
	Month     string
	Basic     float64
	Deduction float64
	Net       float64
}
