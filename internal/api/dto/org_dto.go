package dto

// CreateEmployeeRequest is the admin payload for POST /admin/employees.
type CreateEmployeeRequest struct {
	EmployeeID  string   `json:"employee_id" form:"employee_id"`
	FirstName   string   `json:"first_name" form:"first_name"`
	LastName    string   `json:"last_name" form:"last_name"`
	Email       string   `json:"email" form:"email"`
	Phone       *string  `json:"phone" form:"phone"`
	Department  string   `json:"department" form:"department"`
	Salary      *float64 `json:"salary" form:"salary"`
	IsActive    *bool    `json:"is_active" form:"is_active"`
	Address     *string  `json:"address" form:"address"`
	DateOfBirth string   `json:"date_of_birth" form:"date_of_birth"`
	Role        string   `json:"role" form:"role"`
	Password    string   `json:"password" form:"password"`
}

// EmployeeItem is one employee in a listing.
type EmployeeItem struct {
	ID           int64    `json:"id"`
	EmployeeID   string   `json:"employee_id"`
	FirstName    string   `json:"first_name"`
	LastName     string   `json:"last_name"`
	Email        string   `json:"email"`
	Phone        *string  `json:"phone"`
	Role         string   `json:"role"`
	DepartmentID *int64   `json:"department_id"`
	IsActive     bool     `json:"is_active"`
	Salary       *float64 `json:"salary"`
}

// EmployeeListResponse lists employees.
type EmployeeListResponse struct {
	TotalEmployees int            `json:"total_employees"`
	Employees      []EmployeeItem `json:"employees"`
}

// CreateDepartmentRequest is the admin payload for POST /admin/departments.
type CreateDepartmentRequest struct {
	DepartmentName string `json:"department_name" form:"department_name"`
	Description    string `json:"description" form:"description"`
}

// DepartmentItem is one department in a listing.
type DepartmentItem struct {
	ID             int64  `json:"id"`
	DepartmentName string `json:"department_name"`
	Description    string `json:"description"`
}

// DepartmentListResponse lists departments.
type DepartmentListResponse struct {
	TotalDepartments int              `json:"total_departments"`
	Departments      []DepartmentItem `json:"departments"`
}
