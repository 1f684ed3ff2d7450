package handlers

import (
	"github.com/spec-kit/hr-service/internal/api/dto"
	"github.com/spec-kit/hr-service/internal/domain"
)

const wireDateLayout = "2006-01-02"

func toLeaveItems(leaves []domain.LeaveRequest) []dto.LeaveListItem {
	items := make([]dto.LeaveListItem, 0, len(leaves))
	for i := range leaves {
		req := &leaves[i]
		items = append(items, dto.LeaveListItem{
			ID:         req.ID,
			EmployeeID: req.EmployeeCode,
			LeaveType:  string(req.Type),
			StartDate:  req.StartDate.Format(wireDateLayout),
			EndDate:    req.EndDate.Format(wireDateLayout),
			Status:     string(req.Status),
			Reason:     req.Reason,
			Days:       req.Days(),
		})
	}
	return items
}

func toSalaryItems(entries []domain.PayrollEntry) []dto.SalaryItem {
	items := make([]dto.SalaryItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.SalaryItem{
			ID:          entry.ID,
			EmployeeID:  entry.EmployeeCode,
			Month:       entry.Month,
			BasicSalary: entry.Basic,
			Deduction:   entry.Deduction,
			NetSalary:   entry.Net,
		})
	}
	return items
}

func toEmployeeItems(employees []domain.Employee) []dto.EmployeeItem {
	items := make([]dto.EmployeeItem, 0, len(employees))
	for i := range employees {
		emp := &employees[i]
		items = append(items, dto.EmployeeItem{
			ID:           emp.ID,
			EmployeeID:   emp.Code,
			FirstName:    emp.FirstName,
			LastName:     emp.LastName,
			Email:        emp.Email,
			Phone:        emp.Phone,
			Role:         string(emp.Role),
			DepartmentID: emp.DepartmentID,
			IsActive:     emp.IsActive,
			Salary:       emp.Salary,
		})
	}
	return items
}
