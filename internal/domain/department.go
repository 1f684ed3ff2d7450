package domain

// Department represents an organizational unit. Read-mostly: employees
// reference it by id.
type Department struct {
	ID          int64
	Name        string
	Description string
}
