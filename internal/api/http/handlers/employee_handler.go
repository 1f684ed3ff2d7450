package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hr-service/internal/api/dto"
	"github.com/spec-kit/hr-service/internal/auth"
	"github.com/spec-kit/hr-service/internal/service"
	apperrors "github.com/spec-kit/hr-service/pkg/util"
)

// EmployeeHandler exposes the employee self-service routes.
type EmployeeHandler struct {
	leaves  *service.LeaveService
	payroll *service.PayrollService
	org     *service.OrgService
}

// NewEmployeeHandler constructs handler.
func NewEmployeeHandler(leaves *service.LeaveService, payroll *service.PayrollService, org *service.OrgService) *EmployeeHandler {
	return &EmployeeHandler{leaves: leaves, payroll: payroll, org: org}
}

// ApplyLeave handles POST /employee/apply-leave.
func (h *EmployeeHandler) ApplyLeave(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)

	var req dto.ApplyLeaveRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	start, err := time.Parse(wireDateLayout, req.StartDate)
	if err != nil {
		return apperrors.NewValidationError("invalid date format, use YYYY-MM-DD", map[string]any{"start_date": req.StartDate})
	}
	end, err := time.Parse(wireDateLayout, req.EndDate)
	if err != nil {
		return apperrors.NewValidationError("invalid date format, use YYYY-MM-DD", map[string]any{"end_date": req.EndDate})
	}

	leave, err := h.leaves.Apply(c.UserContext(), identity, service.ApplyLeaveInput{
		LeaveType: req.LeaveType,
		StartDate: start,
		EndDate:   end,
		Reason:    req.Reason,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.LeaveResponse{
		Message:   "leave application submitted",
		LeaveID:   leave.ID,
		Status:    string(leave.Status),
		LeaveType: string(leave.Type),
		StartDate: leave.StartDate.Format(wireDateLayout),
		EndDate:   leave.EndDate.Format(wireDateLayout),
		Days:      leave.Days(),
	})
}

// MyLeaves handles GET /employee/my-leaves.
func (h *EmployeeHandler) MyLeaves(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)

	code, leaves, err := h.leaves.ListForEmployee(c.UserContext(), identity)
	if err != nil {
		return err
	}
	items := toLeaveItems(leaves)
	return c.JSON(dto.MyLeavesResponse{
		EmployeeID:        code,
		TotalApplications: len(items),
		Leaves:            items,
	})
}

// MySalaries handles GET /employee/my-payroll.
func (h *EmployeeHandler) MySalaries(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)

	code, entries, err := h.payroll.ListForEmployee(c.UserContext(), identity)
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

// DashboardStats handles GET /employee/dashboard/stats.
func (h *EmployeeHandler) DashboardStats(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)

	stats, err := h.org.EmployeeStats(c.UserContext(), identity)
	if err != nil {
		return err
	}
	return c.JSON(stats)
}
