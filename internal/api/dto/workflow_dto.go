package dto

// MarkAttendanceRequest is the admin payload for POST /admin/attendance.
type MarkAttendanceRequest struct {
	EmployeeID string `json:"employee_id" form:"employee_id"`
	Status     string `json:"status" form:"status"`
}

// MarkAttendanceResponse reports the stored record.
type MarkAttendanceResponse struct {
	Message      string `json:"message"`
	AttendanceID int64  `json:"attendance_id"`
	Status       string `json:"status"`
}

// AttendanceReportRow is one line of the admin attendance report.
type AttendanceReportRow struct {
	ID           int64  `json:"id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	DepartmentID *int64 `json:"department_id"`
	Date         string `json:"date"`
	Status       string `json:"status"`
}

// AttendanceReportResponse is the admin report over a date range.
type AttendanceReportResponse struct {
	StartDate      string                `json:"start_date"`
	EndDate        string                `json:"end_date"`
	TotalRecords   int                   `json:"total_records"`
	AttendanceData []AttendanceReportRow `json:"attendance_data"`
}

// ApplyLeaveRequest is the employee payload for POST /employee/apply-leave.
type ApplyLeaveRequest struct {
	LeaveType string  `json:"leave_type" form:"leave_type"`
	StartDate string  `json:"start_date" form:"start_date"`
	EndDate   string  `json:"end_date" form:"end_date"`
	Reason    *string `json:"reason" form:"reason"`
}

// LeaveResponse reports a created or decided leave request.
type LeaveResponse struct {
	Message   string `json:"message"`
	LeaveID   int64  `json:"leave_id"`
	Status    string `json:"status"`
	LeaveType string `json:"leave_type,omitempty"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	Days      int    `json:"number_of_days,omitempty"`
}

// LeaveListItem is one request in a leave listing.
type LeaveListItem struct {
	ID         int64   `json:"id"`
	EmployeeID string  `json:"employee_id"`
	LeaveType  string  `json:"leave_type"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	Status     string  `json:"status"`
	Reason     *string `json:"reason"`
	Days       int     `json:"days"`
}

// MyLeavesResponse is the employee's leave history.
type MyLeavesResponse struct {
	EmployeeID        string          `json:"employee_id"`
	TotalApplications int             `json:"total_applications"`
	Leaves            []LeaveListItem `json:"leaves"`
}

// LeaveListResponse is the admin view over all requests.
type LeaveListResponse struct {
	TotalApplications int             `json:"total_applications"`
	Leaves            []LeaveListItem `json:"leaves"`
}

// AddSalaryRequest is the admin payload for POST /admin/payroll.
type AddSalaryRequest struct {
	EmployeeID  string  `json:"employee_id" form:"employee_id"`
	Month       string  `json:"month" form:"month"`
	BasicSalary float64 `json:"basic_salary" form:"basic_salary"`
	Deduction   float64 `json:"deduction" form:"deduction"`
}

// AddSalaryResponse reports a recorded payroll entry.
type AddSalaryResponse struct {
	Message   string  `json:"message"`
	SalaryID  int64   `json:"salary_id"`
	NetSalary float64 `json:"net_salary"`
}

// SalaryItem is one payroll entry in a listing.
type SalaryItem struct {
	ID          int64   `json:"id"`
	EmployeeID  string  `json:"employee_id"`
	Month       string  `json:"month"`
	BasicSalary float64 `json:"basic_salary"`
	Deduction   float64 `json:"deduction"`
	NetSalary   float64 `json:"net_salary"`
}

// MySalariesResponse is an employee's payroll history.
type MySalariesResponse struct {
	EmployeeID    string       `json:"employee_id"`
	TotalSalaries int          `json:"total_salaries"`
	Salaries      []SalaryItem `json:"salaries"`
}
