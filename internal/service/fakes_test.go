package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/hr-service/internal/domain"
	"github.com/spec-kit/hr-service/internal/events"
	"github.com/spec-kit/hr-service/internal/repository"
)

type stubClock struct {
	now time.Time
}

func (c *stubClock) Now() time.Time { return c.now }

type fakeEmployeeRepo struct {
	nextID    int64
	employees map[int64]*domain.Employee
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{nextID: 1, employees: make(map[int64]*domain.Employee)}
}

func (r *fakeEmployeeRepo) add(emp domain.Employee) *domain.Employee {
	emp.ID = r.nextID
	r.nextID++
	stored := emp
	r.employees[stored.ID] = &stored
	return &stored
}

func (r *fakeEmployeeRepo) Create(_ context.Context, emp *domain.Employee) error {
	emp.ID = r.nextID
	r.nextID++
	stored := *emp
	r.employees[stored.ID] = &stored
	return nil
}

func (r *fakeEmployeeRepo) Update(_ context.Context, emp *domain.Employee) error {
	if _, ok := r.employees[emp.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *emp
	r.employees[stored.ID] = &stored
	return nil
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id int64) (*domain.Employee, error) {
	emp, ok := r.employees[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *emp
	return &copied, nil
}

func (r *fakeEmployeeRepo) GetByEmail(_ context.Context, email string) (*domain.Employee, error) {
	for _, emp := range r.employees {
		if emp.Email == email {
			copied := *emp
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeEmployeeRepo) GetByCode(_ context.Context, code string) (*domain.Employee, error) {
	for _, emp := range r.employees {
		if emp.Code == code {
			copied := *emp
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeEmployeeRepo) List(_ context.Context) ([]domain.Employee, error) {
	out := make([]domain.Employee, 0, len(r.employees))
	for _, emp := range r.employees {
		out = append(out, *emp)
	}
	return out, nil
}

func (r *fakeEmployeeRepo) ListByDepartment(_ context.Context, departmentID int64) ([]domain.Employee, error) {
	var out []domain.Employee
	for _, emp := range r.employees {
		if emp.DepartmentID != nil && *emp.DepartmentID == departmentID {
			out = append(out, *emp)
		}
	}
	return out, nil
}

func (r *fakeEmployeeRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.employees)), nil
}

func (r *fakeEmployeeRepo) HasRole(_ context.Context, role domain.Role) (bool, error) {
	for _, emp := range r.employees {
		if emp.Role == role {
			return true, nil
		}
	}
	return false, nil
}

type fakeLeaveRepo struct {
	nextID int64
	leaves map[int64]*domain.LeaveRequest
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{nextID: 1, leaves: make(map[int64]*domain.LeaveRequest)}
}

func (r *fakeLeaveRepo) Create(_ context.Context, req *domain.LeaveRequest) error {
	req.ID = r.nextID
	r.nextID++
	stored := *req
	r.leaves[stored.ID] = &stored
	return nil
}

func (r *fakeLeaveRepo) GetByID(_ context.Context, id int64) (*domain.LeaveRequest, error) {
	req, ok := r.leaves[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *req
	return &copied, nil
}

func (r *fakeLeaveRepo) UpdateStatus(_ context.Context, id int64, status domain.LeaveStatus) error {
	req, ok := r.leaves[id]
	if !ok {
		return pgx.ErrNoRows
	}
	req.Status = status
	return nil
}

func (r *fakeLeaveRepo) ListByEmployee(_ context.Context, code string) ([]domain.LeaveRequest, error) {
	var out []domain.LeaveRequest
	for _, req := range r.leaves {
		if req.EmployeeCode == code {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (r *fakeLeaveRepo) ListAll(_ context.Context) ([]domain.LeaveRequest, error) {
	out := make([]domain.LeaveRequest, 0, len(r.leaves))
	for _, req := range r.leaves {
		out = append(out, *req)
	}
	return out, nil
}

func (r *fakeLeaveRepo) HasOverlapping(_ context.Context, code string, start, end time.Time) (bool, error) {
	for _, req := range r.leaves {
		if req.EmployeeCode != code {
			continue
		}
		if req.Status != domain.LeavePending && req.Status != domain.LeaveApproved {
			continue
		}
		if req.Overlaps(start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeLeaveRepo) CountByStatus(_ context.Context, status domain.LeaveStatus) (int64, error) {
	var n int64
	for _, req := range r.leaves {
		if req.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *fakeLeaveRepo) ListApprovedInYear(_ context.Context, code string, year int) ([]domain.LeaveRequest, error) {
	var out []domain.LeaveRequest
	for _, req := range r.leaves {
		if req.EmployeeCode == code && req.Status == domain.LeaveApproved && req.StartDate.Year() == year {
			out = append(out, *req)
		}
	}
	return out, nil
}

type fakeDepartmentRepo struct {
	nextID      int64
	departments map[int64]*domain.Department
}

func newFakeDepartmentRepo() *fakeDepartmentRepo {
	return &fakeDepartmentRepo{nextID: 1, departments: make(map[int64]*domain.Department)}
}

func (r *fakeDepartmentRepo) Create(_ context.Context, dept *domain.Department) error {
	dept.ID = r.nextID
	r.nextID++
	stored := *dept
	r.departments[stored.ID] = &stored
	return nil
}

func (r *fakeDepartmentRepo) GetByID(_ context.Context, id int64) (*domain.Department, error) {
	dept, ok := r.departments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *dept
	return &copied, nil
}

func (r *fakeDepartmentRepo) GetByName(_ context.Context, name string) (*domain.Department, error) {
	for _, dept := range r.departments {
		if dept.Name == name {
			copied := *dept
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeDepartmentRepo) List(_ context.Context) ([]domain.Department, error) {
	out := make([]domain.Department, 0, len(r.departments))
	for _, dept := range r.departments {
		out = append(out, *dept)
	}
	return out, nil
}

func (r *fakeDepartmentRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.departments)), nil
}

type attendanceKey struct {
	code string
	day  string
}

type fakeAttendanceRepo struct {
	nextID  int64
	records map[attendanceKey]*domain.AttendanceRecord
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{nextID: 1, records: make(map[attendanceKey]*domain.AttendanceRecord)}
}

func (r *fakeAttendanceRepo) UpsertForDay(_ context.Context, rec *domain.AttendanceRecord) (bool, error) {
	key := attendanceKey{code: rec.EmployeeCode, day: rec.Day.Format("2006-01-02")}
	if existing, ok := r.records[key]; ok {
		existing.Status = rec.Status
		rec.ID = existing.ID
		return false, nil
	}
	rec.ID = r.nextID
	r.nextID++
	stored := *rec
	r.records[key] = &stored
	return true, nil
}

func (r *fakeAttendanceRepo) Report(_ context.Context, start, end time.Time) ([]repository.AttendanceReportRow, error) {
	var out []repository.AttendanceReportRow
	for _, rec := range r.records {
		if rec.Day.Before(start) || rec.Day.After(end) {
			continue
		}
		out = append(out, repository.AttendanceReportRow{Record: *rec})
	}
	return out, nil
}

func (r *fakeAttendanceRepo) CountOnDay(_ context.Context, day time.Time, status domain.AttendanceStatus) (int64, error) {
	var n int64
	for _, rec := range r.records {
		if rec.Day.Equal(day) && rec.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *fakeAttendanceRepo) CountForEmployeeMonth(_ context.Context, code string, year int, month time.Month, status domain.AttendanceStatus) (int64, error) {
	var n int64
	for _, rec := range r.records {
		if rec.EmployeeCode == code && rec.Day.Year() == year && rec.Day.Month() == month && rec.Status == status {
			n++
		}
	}
	return n, nil
}

type payrollKey struct {
	code  string
	month string
}

type fakePayrollRepo struct {
	nextID  int64
	entries map[payrollKey]*domain.PayrollEntry
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{nextID: 1, entries: make(map[payrollKey]*domain.PayrollEntry)}
}

func (r *fakePayrollRepo) Create(_ context.Context, entry *domain.PayrollEntry) error {
	entry.ID = r.nextID
	r.nextID++
	stored := *entry
	r.entries[payrollKey{code: stored.EmployeeCode, month: stored.Month}] = &stored
	return nil
}

func (r *fakePayrollRepo) GetByEmployeeMonth(_ context.Context, code, month string) (*domain.PayrollEntry, error) {
	entry, ok := r.entries[payrollKey{code: code, month: month}]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *entry
	return &copied, nil
}

func (r *fakePayrollRepo) ListByEmployee(_ context.Context, code string) ([]domain.PayrollEntry, error) {
	var out []domain.PayrollEntry
	for _, entry := range r.entries {
		if entry.EmployeeCode == code {
			out = append(out, *entry)
		}
	}
	return out, nil
}

func (r *fakePayrollRepo) ListAll(_ context.Context) ([]domain.PayrollEntry, error) {
	out := make([]domain.PayrollEntry, 0, len(r.entries))
	for _, entry := range r.entries {
		out = append(out, *entry)
	}
	return out, nil
}

func (r *fakePayrollRepo) LatestByEmployee(_ context.Context, code string) (*domain.PayrollEntry, error) {
	var latest *domain.PayrollEntry
	for _, entry := range r.entries {
		if entry.EmployeeCode != code {
			continue
		}
		if latest == nil || entry.Month > latest.Month {
			latest = entry
		}
	}
	if latest == nil {
		return nil, pgx.ErrNoRows
	}
	copied := *latest
	return &copied, nil
}

type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) lastOfType(eventType events.EventType) (events.Event, bool) {
	for i := len(d.published) - 1; i >= 0; i-- {
		if d.published[i].Type == eventType {
			return d.published[i], true
		}
	}
	return events.Event{}, false
}
