package service

import (
	"context"
	"testing"

	"github.com/spec-kit/hr-service/internal/domain"
	"github.com/spec-kit/hr-service/internal/events"
)

func payrollFixture(t *testing.T) (*PayrollService, *fakePayrollRepo, *recordingDispatcher, domain.Identity, domain.Identity) {
	t.Helper()
	employees := newFakeEmployeeRepo()
	emp := employees.add(domain.Employee{
		Code:     "EMP001",
		Email:    "alice@ems.com",
		Role:     domain.RoleEmployee,
		IsActive: true,
	})
	admin := employees.add(domain.Employee{
		Code:     "ADMIN001",
		Email:    "admin@ems.com",
		Role:     domain.RoleAdmin,
		IsActive: true,
	})

	payroll := newFakePayrollRepo()
	dispatcher := &recordingDispatcher{}
	clock := &stubClock{now: day(t, "2026-03-02")}
	svc := NewPayrollService(payroll, employees, dispatcher, clock)

	actorEmp := domain.Identity{ID: emp.ID, Email: emp.Email, Role: emp.Role}
	actorAdmin := domain.Identity{ID: admin.ID, Email: admin.Email, Role: admin.Role}
	return svc, payroll, dispatcher, actorEmp, actorAdmin
}

func TestAddPayroll(t *testing.T) {
	ctx := context.Background()

	t.Run("net is basic minus deduction", func(t *testing.T) {
		svc, _, dispatcher, _, admin := payrollFixture(t)
		entry, err := svc.Add(ctx, admin, "EMP001", "2026-02", 5000, 500)
		if err != nil {
			t.Fatalf("add: %v", err)
		}
		if entry.Net != 4500 {
			t.Errorf("net = %v, want 4500", entry.Net)
		}

		event, ok := dispatcher.lastOfType(events.EventPayrollAdded)
		if !ok {
			t.Fatal("no payroll_added event published")
		}
		payload := event.Payload.(events.PayrollAddedPayload)
		if payload.Month != "2026-02" || payload.Net != 4500 {
			t.Errorf("payload = %+v", payload)
		}
	})

	t.Run("duplicate month for the same employee conflicts", func(t *testing.T) {
		svc, _, _, _, admin := payrollFixture(t)
		if _, err := svc.Add(ctx, admin, "EMP001", "2026-02", 5000, 500); err != nil {
			t.Fatalf("first add: %v", err)
		}
		_, err := svc.Add(ctx, admin, "EMP001", "2026-02", 6000, 0)
		if code := domainErrCode(t, err); code != "CONFLICT" {
			t.Errorf("code = %q, want CONFLICT", code)
		}

		if _, err := svc.Add(ctx, admin, "EMP001", "2026-03", 5000, 500); err != nil {
			t.Errorf("next month: %v", err)
		}
	})

	t.Run("month token must be zero-padded YYYY-MM", func(t *testing.T) {
		svc, _, _, _, admin := payrollFixture(t)
		for _, month := range []string{"2026-2", "2026-13", "2026-00", "26-02", "2026/02", "2026-02-01"} {
			_, err := svc.Add(ctx, admin, "EMP001", month, 5000, 0)
			if code := domainErrCode(t, err); code != "VALIDATION_FAILED" {
				t.Errorf("month %q: code = %q, want VALIDATION_FAILED", month, code)
			}
		}
	})

	t.Run("unknown employee is not found", func(t *testing.T) {
		svc, _, _, _, admin := payrollFixture(t)
		_, err := svc.Add(ctx, admin, "EMP404", "2026-02", 5000, 0)
		if code := domainErrCode(t, err); code != "NOT_FOUND" {
			t.Errorf("code = %q, want NOT_FOUND", code)
		}
	})
}

func TestPayrollHistory(t *testing.T) {
	ctx := context.Background()
	svc, _, _, emp, admin := payrollFixture(t)

	for _, month := range []string{"2026-01", "2026-02"} {
		if _, err := svc.Add(ctx, admin, "EMP001", month, 5000, 250); err != nil {
			t.Fatalf("add %s: %v", month, err)
		}
	}

	t.Run("employee sees own history", func(t *testing.T) {
		code, entries, err := svc.ListForEmployee(ctx, emp)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if code != "EMP001" || len(entries) != 2 {
			t.Errorf("code = %q, entries = %d", code, len(entries))
		}
	})

	t.Run("admin lookup by code validates the employee", func(t *testing.T) {
		entries, err := svc.ListByCode(ctx, "EMP001")
		if err != nil {
			t.Fatalf("list by code: %v", err)
		}
		if len(entries) != 2 {
			t.Errorf("entries = %d, want 2", len(entries))
		}

		_, err = svc.ListByCode(ctx, "EMP404")
		if code := domainErrCode(t, err); code != "NOT_FOUND" {
			t.Errorf("code = %q, want NOT_FOUND", code)
		}
	})

	t.Run("latest entry follows month order", func(t *testing.T) {
		latest, err := svc.LatestForEmployee(ctx, "EMP001")
		if err != nil {
			t.Fatalf("latest: %v", err)
		}
		if latest == nil || latest.Month != "2026-02" {
			t.Errorf("latest = %+v", latest)
		}
	})

	t.Run("latest is nil without error when no payroll exists", func(t *testing.T) {
		latest, err := svc.LatestForEmployee(ctx, "ADMIN001")
		if err != nil {
			t.Fatalf("latest: %v", err)
		}
		if latest != nil {
			t.Errorf("latest = %+v, want nil", latest)
		}
	})
}
