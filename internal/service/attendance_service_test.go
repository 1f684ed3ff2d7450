package service

import (
	"context"
	"testing"

	"github.com/spec-kit/hr-service/internal/domain"
	"github.com/spec-kit/hr-service/internal/events"
)

func attendanceFixture(t *testing.T) (*AttendanceService, *fakeAttendanceRepo, *recordingDispatcher, domain.Identity) {
	t.Helper()
	employees := newFakeEmployeeRepo()
	employees.add(domain.Employee{
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

	attendance := newFakeAttendanceRepo()
	dispatcher := &recordingDispatcher{}
	clock := &stubClock{now: day(t, "2026-03-02")}
	svc := NewAttendanceService(attendance, employees, dispatcher, clock)
	return svc, attendance, dispatcher, domain.Identity{ID: admin.ID, Email: admin.Email, Role: admin.Role}
}

func TestMarkAttendance(t *testing.T) {
	ctx := context.Background()

	t.Run("first mark of the day creates a record", func(t *testing.T) {
		svc, _, dispatcher, admin := attendanceFixture(t)
		result, err := svc.Mark(ctx, admin, "EMP001", "present")
		if err != nil {
			t.Fatalf("mark: %v", err)
		}
		if !result.Created {
			t.Error("expected a created record")
		}
		if result.Status != domain.AttendancePresent {
			t.Errorf("status = %s, want present", result.Status)
		}

		event, ok := dispatcher.lastOfType(events.EventAttendanceMarked)
		if !ok {
			t.Fatal("no attendance_marked event published")
		}
		payload := event.Payload.(events.AttendanceMarkedPayload)
		if payload.Day != "2026-03-02" || !payload.Created {
			t.Errorf("payload = %+v", payload)
		}
	})

	t.Run("second mark replaces the status and keeps one record", func(t *testing.T) {
		svc, repo, _, admin := attendanceFixture(t)
		first, err := svc.Mark(ctx, admin, "EMP001", "present")
		if err != nil {
			t.Fatalf("first mark: %v", err)
		}
		second, err := svc.Mark(ctx, admin, "EMP001", "late")
		if err != nil {
			t.Fatalf("second mark: %v", err)
		}
		if second.Created {
			t.Error("second mark must not create a record")
		}
		if second.AttendanceID != first.AttendanceID {
			t.Errorf("id changed across marks: %d vs %d", first.AttendanceID, second.AttendanceID)
		}
		if len(repo.records) != 1 {
			t.Errorf("records = %d, want 1", len(repo.records))
		}

		n, _ := repo.CountOnDay(ctx, day(t, "2026-03-02"), domain.AttendanceLate)
		if n != 1 {
			t.Errorf("late count = %d, want 1", n)
		}
	})

	t.Run("unknown employee is not found", func(t *testing.T) {
		svc, _, _, admin := attendanceFixture(t)
		_, err := svc.Mark(ctx, admin, "EMP404", "present")
		if code := domainErrCode(t, err); code != "NOT_FOUND" {
			t.Errorf("code = %q, want NOT_FOUND", code)
		}
	})

	t.Run("unknown status is a validation error", func(t *testing.T) {
		svc, _, _, admin := attendanceFixture(t)
		_, err := svc.Mark(ctx, admin, "EMP001", "vacation")
		if code := domainErrCode(t, err); code != "VALIDATION_FAILED" {
			t.Errorf("code = %q, want VALIDATION_FAILED", code)
		}
	})
}

func TestAttendanceReport(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to the trailing thirty days", func(t *testing.T) {
		svc, _, _, _ := attendanceFixture(t)
		report, err := svc.Report(ctx, "", "")
		if err != nil {
			t.Fatalf("report: %v", err)
		}
		if report.StartDate != "2026-01-31" || report.EndDate != "2026-03-02" {
			t.Errorf("range = %s..%s", report.StartDate, report.EndDate)
		}
	})

	t.Run("returns rows inside an explicit range", func(t *testing.T) {
		svc, _, _, admin := attendanceFixture(t)
		if _, err := svc.Mark(ctx, admin, "EMP001", "present"); err != nil {
			t.Fatalf("mark: %v", err)
		}

		report, err := svc.Report(ctx, "2026-03-01", "2026-03-03")
		if err != nil {
			t.Fatalf("report: %v", err)
		}
		if len(report.Rows) != 1 {
			t.Fatalf("rows = %d, want 1", len(report.Rows))
		}
		if report.Rows[0].Record.EmployeeCode != "EMP001" {
			t.Errorf("row = %+v", report.Rows[0])
		}
	})

	t.Run("bad date format is a validation error", func(t *testing.T) {
		svc, _, _, _ := attendanceFixture(t)
		_, err := svc.Report(ctx, "01-03-2026", "")
		if code := domainErrCode(t, err); code != "VALIDATION_FAILED" {
			t.Errorf("code = %q, want VALIDATION_FAILED", code)
		}
	})

	t.Run("inverted range yields no rows instead of an error", func(t *testing.T) {
		svc, _, _, admin := attendanceFixture(t)
		if _, err := svc.Mark(ctx, admin, "EMP001", "present"); err != nil {
			t.Fatalf("mark: %v", err)
		}

		report, err := svc.Report(ctx, "2026-03-03", "2026-03-01")
		if err != nil {
			t.Fatalf("report: %v", err)
		}
		if len(report.Rows) != 0 {
			t.Errorf("rows = %d, want 0", len(report.Rows))
		}
	})
}
