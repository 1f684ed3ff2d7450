package handlers

import (
	"context"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hr-service/internal/api/dto"
	"github.com/spec-kit/hr-service/internal/auth"
	"github.com/spec-kit/hr-service/internal/domain"
	"github.com/spec-kit/hr-service/internal/service"
	apperrors "github.com/spec-kit/hr-service/pkg/util"
)

// AdminHandler exposes the admin-only workflow and administration routes.
type AdminHandler struct {
	attendance *service.AttendanceService
	leaves     *service.LeaveService
	payroll    *service.PayrollService
	org        *service.OrgService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(attendance *service.AttendanceService, leaves *service.LeaveService, payroll *service.PayrollService, org *service.OrgService) *AdminHandler {
	return &AdminHandler{attendance: attendance, leaves: leaves, payroll: payroll, org: org}
}

// MarkAttendance handles POST /admin/attendance.
func (h *AdminHandler) MarkAttendance(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)

	var req dto.MarkAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.EmployeeID == "" {
		return apperrors.NewValidationError("employee_id is required", nil)
	}

	result, err := h.attendance.Mark(c.UserContext(), identity, req.EmployeeID, req.Status)
	if err != nil {
		return err
	}

	message := "attendance updated"
	status := fiber.StatusOK
	if result.Created {
		message = "attendance marked"
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(dto.MarkAttendanceResponse{
		Message:      message,
		AttendanceID: result.AttendanceID,
		Status:       string(result.Status),
	})
}

// AttendanceReport handles GET /admin/attendance-report.
func (h *AdminHandler) AttendanceReport(c *fiber.Ctx) error {
	report, err := h.attendance.Report(c.UserContext(), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return err
	}

	rows := make([]dto.AttendanceReportRow, 0, len(report.Rows))
	for _, row := range report.Rows {
		rows = append(rows, dto.AttendanceReportRow{
			ID:           row.Record.ID,
			EmployeeID:   row.Record.EmployeeCode,
			EmployeeName: row.EmployeeName,
			DepartmentID: row.DepartmentID,
			Date:         row.Record.Day.Format(wireDateLayout),
			Status:       string(row.Record.Status),
		})
	}

	return c.JSON(dto.AttendanceReportResponse{
		StartDate:      report.StartDate,
		EndDate:        report.EndDate,
		TotalRecords:   len(rows),
		AttendanceData: rows,
	})
}

// ListLeaves handles GET /admin/leaves.
func (h *AdminHandler) ListLeaves(c *fiber.Ctx) error {
	leaves, err := h.leaves.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	items := toLeaveItems(leaves)
	return c.JSON(dto.LeaveListResponse{TotalApplications: len(items), Leaves: items})
}

// ApproveLeave handles PUT /admin/leaves/:id/approve.
func (h *AdminHandler) ApproveLeave(c *fiber.Ctx) error {
	return h.decideLeave(c, h.leaves.Approve, "approved")
}

// RejectLeave handles PUT /admin/leaves/:id/reject.
func (h *AdminHandler) RejectLeave(c *fiber.Ctx) error {
	return h.decideLeave(c, h.leaves.Reject, "rejected")
}

func (h *AdminHandler) decideLeave(c *fiber.Ctx, decide func(context.Context, domain.Identity, int64) error, outcome string) error {
	identity, _ := auth.IdentityFromContext(c)

	leaveID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("invalid leave id", nil)
	}

	if err := decide(c.UserContext(), identity, leaveID); err != nil {
		return err
	}
	return c.JSON(dto.LeaveResponse{
		Message: "leave request " + outcome,
		LeaveID: leaveID,
		Status:  outcome,
	})
}

// AddSalary handles POST /admin/payroll.
func (h *AdminHandler) AddSalary(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)

	var req dto.AddSalaryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.EmployeeID == "" {
		return apperrors.NewValidationError("employee_id is required", nil)
	}

	entry, err := h.payroll.Add(c.UserContext(), identity, req.EmployeeID, req.Month, req.BasicSalary, req.Deduction)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.AddSalaryResponse{
		Message:   "salary added successfully",
		SalaryID:  entry.ID,
		NetSalary: entry.Net,
	})
}

// ListSalaries handles GET /admin/payroll.
func (h *AdminHandler) ListSalaries(c *fiber.Ctx) error {
	entries, err := h.payroll.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	items := toSalaryItems(entries)
	return c.JSON(fiber.Map{
		"total_salaries": len(items),
		"salaries":       items,
	})
}

// EmployeePayroll handles GET /admin/employees/:code/payroll.
func (h *AdminHandler) EmployeePayroll(c *fiber.Ctx) error {
	code := c.Params("code")
	entries, err := h.payroll.ListByCode(c.UserContext(), code)
	if err != nil {
		return err
	}
	items := toSalaryItems(entries)
	return c.JSON(dto.MySalariesResponse{
		EmployeeID:    code,
		TotalSalaries: len(items),
		Salaries:      items,
	})
}

// CreateEmployee handles POST /admin/employees.
func (h *AdminHandler) CreateEmployee(c *fiber.Ctx) error {
	var req dto.CreateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	emp, err := h.org.CreateEmployee(c.UserContext(), service.CreateEmployeeInput{
		Code:           req.EmployeeID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		DepartmentName: req.Department,
		Salary:         req.Salary,
		IsActive:       active,
		Address:        req.Address,
		DateOfBirth:    req.DateOfBirth,
		Role:           req.Role,
		Password:       req.Password,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "employee created successfully",
		"id":          emp.ID,
		"employee_id": emp.Code,
	})
}

// ListEmployees handles GET /admin/employees.
func (h *AdminHandler) ListEmployees(c *fiber.Ctx) error {
	employees, err := h.org.ListEmployees(c.UserContext())
	if err != nil {
		return err
	}
	items := toEmployeeItems(employees)
	return c.JSON(dto.EmployeeListResponse{TotalEmployees: len(items), Employees: items})
}

// DepartmentEmployees handles GET /admin/departments/:name/employees.
func (h *AdminHandler) DepartmentEmployees(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return apperrors.NewValidationError("invalid department name", nil)
	}

	employees, err := h.org.ListEmployeesByDepartment(c.UserContext(), name)
	if err != nil {
		return err
	}
	items := toEmployeeItems(employees)
	return c.JSON(dto.EmployeeListResponse{TotalEmployees: len(items), Employees: items})
}

// CreateDepartment handles POST /admin/departments.
func (h *AdminHandler) CreateDepartment(c *fiber.Ctx) error {
	var req dto.CreateDepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	dept, err := h.org.CreateDepartment(c.UserContext(), req.DepartmentName, req.Description)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":         "department created successfully",
		"id":              dept.ID,
		"department_name": dept.Name,
	})
}

// ListDepartments handles GET /admin/departments.
func (h *AdminHandler) ListDepartments(c *fiber.Ctx) error {
	departments, err := h.org.ListDepartments(c.UserContext())
	if err != nil {
		return err
	}

	items := make([]dto.DepartmentItem, 0, len(departments))
	for _, dept := range departments {
		items = append(items, dto.DepartmentItem{
			ID:             dept.ID,
			DepartmentName: dept.Name,
			Description:    dept.Description,
		})
	}
	return c.JSON(dto.DepartmentListResponse{TotalDepartments: len(items), Departments: items})
}

// DashboardStats handles GET /admin/dashboard/stats.
func (h *AdminHandler) DashboardStats(c *fiber.Ctx) error {
	stats, err := h.org.AdminStats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(stats)
}
