package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/hr-service/internal/auth"
	"github.com/spec-kit/hr-service/internal/config"
	"github.com/spec-kit/hr-service/internal/domain"
	"github.com/spec-kit/hr-service/internal/events"
	"github.com/spec-kit/hr-service/internal/persistence"
	"github.com/spec-kit/hr-service/internal/repository"
	apperrors "github.com/spec-kit/hr-service/pkg/util"
)

const (
	adminStatsCacheKey       = "stats:admin"
	employeeStatsCachePrefix = "stats:employee:"
	annualLeaveAllowanceDays = 30
)

// CreateEmployeeInput describes the admin employee-creation payload.
type CreateEmployeeInput struct {
	Code           string
	FirstName      string
	LastName       string
	Email          string
	Phone          *string
	DepartmentName string
	Salary         *float64
	IsActive       bool
	Address        *string
	DateOfBirth    string
	Role           string
	Password       string
}

// AdminDashboardStats summarizes the org for the admin dashboard.
type AdminDashboardStats struct {
	TotalEmployees   int64 `json:"total_employees"`
	TotalDepartments int64 `json:"total_departments"`
	TodayAttendance  int64 `json:"today_attendance"`
	PendingLeaves    int64 `json:"pending_leaves"`
}

// EmployeeDashboardStats summarizes an employee's own standing.
type EmployeeDashboardStats struct {
	EmployeeStatus    string  `json:"employee_status"`
	MonthlyAttendance int64   `json:"monthly_attendance"`
	LeaveBalance      int     `json:"leave_balance"`
	CurrentSalary     float64 `json:"current_salary"`
	TotalLeaves       int     `json:"total_leaves"`
}

// OrgService handles employee and department administration, dashboard
// statistics and the bootstrap seed. Read-heavy stats are cached in Redis
// for a short TTL; an unreachable cache degrades to direct reads.
type OrgService struct {
	employees   repository.EmployeeRepository
	departments repository.DepartmentRepository
	attendance  repository.AttendanceRepository
	leaves      repository.LeaveRepository
	payroll     repository.PayrollRepository
	cache       *persistence.Redis
	cacheTTL    time.Duration
	bcryptCost  int
	clock       Clock
	logger      *zap.Logger
}

// OrgDependencies bundles repo requirements for the org service.
type OrgDependencies struct {
	EmployeeRepo   repository.EmployeeRepository
	DepartmentRepo repository.DepartmentRepository
	AttendanceRepo repository.AttendanceRepository
	LeaveRepo      repository.LeaveRepository
	PayrollRepo    repository.PayrollRepository
	Cache          *persistence.Redis
}

// NewOrgService builds the service.
func NewOrgService(cfg *config.Config, deps OrgDependencies, clock Clock, logger *zap.Logger) *OrgService {
	if clock == nil {
		clock = NewClock()
	}
	return &OrgService{
		employees:   deps.EmployeeRepo,
		departments: deps.DepartmentRepo,
		attendance:  deps.AttendanceRepo,
		leaves:      deps.LeaveRepo,
		payroll:     deps.PayrollRepo,
		cache:       deps.Cache,
		cacheTTL:    cfg.Redis.StatsTTL(),
		bcryptCost:  cfg.Auth.BcryptCost,
		clock:       clock,
		logger:      logger,
	}
}

// CreateEmployee registers a new employee account.
func (s *OrgService) CreateEmployee(ctx context.Context, input CreateEmployeeInput) (*domain.Employee, error) {
	if input.Code == "" || input.Email == "" || input.Password == "" {
		return nil, apperrors.NewValidationError("employee_id, email and password are required", nil)
	}

	if _, err := s.employees.GetByCode(ctx, input.Code); err == nil {
		return nil, apperrors.NewConflict("employee ID or email already exists", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}
	if _, err := s.employees.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewConflict("employee ID or email already exists", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	if input.DepartmentName == "" {
		return nil, apperrors.NewValidationError("department is required", nil)
	}
	dept, err := s.departments.GetByName(ctx, input.DepartmentName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewValidationError("department does not exist", map[string]any{"department_name": input.DepartmentName})
		}
		return nil, apperrors.MapError(err)
	}

	role := domain.Role(strings.ToLower(strings.TrimSpace(input.Role)))
	if !role.Valid() {
		return nil, apperrors.NewValidationError("invalid role, must be admin or employee", nil)
	}

	var dob *time.Time
	if input.DateOfBirth != "" {
		parsed, err := parseFlexibleDate(input.DateOfBirth)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid date format, use DD-MM-YYYY or YYYY-MM-DD", nil)
		}
		dob = &parsed
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	emp := &domain.Employee{
		Code:         input.Code,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: hash,
		Role:         role,
		DepartmentID: &dept.ID,
		IsActive:     input.IsActive,
		Address:      input.Address,
		DateOfBirth:  dob,
		Salary:       input.Salary,
	}
	if err := s.employees.Create(ctx, emp); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.invalidateStats(ctx)
	return emp, nil
}

// ListEmployees returns all employees.
func (s *OrgService) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	list, err := s.employees.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

// ListEmployeesByDepartment returns the employees of a named department.
func (s *OrgService) ListEmployeesByDepartment(ctx context.Context, departmentName string) ([]domain.Employee, error) {
	dept, err := s.departments.GetByName(ctx, departmentName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("department", map[string]any{"department_name": departmentName})
		}
		return nil, apperrors.MapError(err)
	}

	list, err := s.employees.ListByDepartment(ctx, dept.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

// CreateDepartment registers a new department with a unique name.
func (s *OrgService) CreateDepartment(ctx context.Context, name, description string) (*domain.Department, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.NewValidationError("department name is required", nil)
	}

	if _, err := s.departments.GetByName(ctx, name); err == nil {
		return nil, apperrors.NewConflict("department name already exists", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	dept := &domain.Department{Name: name, Description: description}
	if err := s.departments.Create(ctx, dept); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.invalidateStats(ctx)
	return dept, nil
}

// ListDepartments returns all departments.
func (s *OrgService) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	list, err := s.departments.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

// AdminStats aggregates the admin dashboard counters.
func (s *OrgService) AdminStats(ctx context.Context) (*AdminDashboardStats, error) {
	var cached AdminDashboardStats
	if s.readCached(ctx, adminStatsCacheKey, &cached) {
		return &cached, nil
	}

	totalEmployees, err := s.employees.Count(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	totalDepartments, err := s.departments.Count(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	today := dateOnly(s.clock.Now())
	presentToday, err := s.attendance.CountOnDay(ctx, today, domain.AttendancePresent)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	pending, err := s.leaves.CountByStatus(ctx, domain.LeavePending)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	stats := &AdminDashboardStats{
		TotalEmployees:   totalEmployees,
		TotalDepartments: totalDepartments,
		TodayAttendance:  presentToday,
		PendingLeaves:    pending,
	}
	s.writeCached(ctx, adminStatsCacheKey, stats)
	return stats, nil
}

// EmployeeStats aggregates the calling employee's dashboard counters.
func (s *OrgService) EmployeeStats(ctx context.Context, actor domain.Identity) (*EmployeeDashboardStats, error) {
	emp, err := s.employees.GetByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("employee", nil)
		}
		return nil, apperrors.MapError(err)
	}

	cacheKey := employeeStatsCachePrefix + emp.Code
	var cached EmployeeDashboardStats
	if s.readCached(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	now := s.clock.Now()
	monthly, err := s.attendance.CountForEmployeeMonth(ctx, emp.Code, now.Year(), now.Month(), domain.AttendancePresent)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	allLeaves, err := s.leaves.ListByEmployee(ctx, emp.Code)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	approved, err := s.leaves.ListApprovedInYear(ctx, emp.Code, now.Year())
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	usedDays := 0
	for i := range approved {
		usedDays += approved[i].Days()
	}
	balance := annualLeaveAllowanceDays - usedDays
	if balance < 0 {
		balance = 0
	}

	currentSalary := 0.0
	if emp.Salary != nil {
		currentSalary = *emp.Salary
	}
	latest, err := s.payroll.LatestByEmployee(ctx, emp.Code)
	if err == nil {
		currentSalary = latest.Net
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	status := "Inactive"
	if emp.IsActive {
		status = "Active"
	}

	stats := &EmployeeDashboardStats{
		EmployeeStatus:    status,
		MonthlyAttendance: monthly,
		LeaveBalance:      balance,
		CurrentSalary:     currentSalary,
		TotalLeaves:       len(allLeaves),
	}
	s.writeCached(ctx, cacheKey, stats)
	return stats, nil
}

// Seed ensures the default department and one admin account exist, so a
// fresh install is immediately usable.
func (s *OrgService) Seed(ctx context.Context, cfg config.SeedConfig) error {
	if !cfg.Enabled {
		return nil
	}

	dept, err := s.departments.GetByName(ctx, "Administration")
	if errors.Is(err, pgx.ErrNoRows) {
		dept = &domain.Department{Name: "Administration", Description: "System administrators"}
		if err := s.departments.Create(ctx, dept); err != nil {
			return err
		}
		s.logger.Info("seeded default department", zap.String("name", dept.Name))
	} else if err != nil {
		return err
	}

	hasAdmin, err := s.employees.HasRole(ctx, domain.RoleAdmin)
	if err != nil {
		return err
	}
	if hasAdmin {
		return nil
	}

	hash, err := auth.HashPassword(cfg.AdminPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	admin := &domain.Employee{
		Code:         cfg.AdminCode,
		FirstName:    "System",
		LastName:     "Admin",
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		DepartmentID: &dept.ID,
		IsActive:     true,
	}
	if err := s.employees.Create(ctx, admin); err != nil {
		return err
	}
	s.logger.Info("seeded admin account", zap.String("employee_id", admin.Code))
	return nil
}

// RegisterInvalidationHandlers drops cached dashboards whenever a workflow
// event touches the numbers behind them.
func (s *OrgService) RegisterInvalidationHandlers(dispatcher events.Dispatcher) {
	handler := func(ctx context.Context, event events.Event) error {
		s.InvalidateStatsFor(ctx, event.EmployeeCode)
		return nil
	}
	for _, eventType := range []events.EventType{
		events.EventAttendanceMarked,
		events.EventLeaveApplied,
		events.EventLeaveStatusChanged,
		events.EventPayrollAdded,
	} {
		dispatcher.Subscribe(eventType, handler)
	}
}

// InvalidateStatsFor drops the cached dashboards touched by a change to the
// given employee.
func (s *OrgService) InvalidateStatsFor(ctx context.Context, employeeCode string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateCached(ctx, adminStatsCacheKey, employeeStatsCachePrefix+employeeCode); err != nil {
		s.logger.Warn("stats cache invalidation failed", zap.Error(err))
	}
}

func (s *OrgService) invalidateStats(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateCached(ctx, adminStatsCacheKey); err != nil {
		s.logger.Warn("stats cache invalidation failed", zap.Error(err))
	}
}

func (s *OrgService) readCached(ctx context.Context, key string, out any) bool {
	if s.cache == nil {
		return false
	}
	raw, ok, err := s.cache.GetCached(ctx, key)
	if err != nil {
		s.logger.Warn("stats cache read failed", zap.Error(err))
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false
	}
	return true
}

func (s *OrgService) writeCached(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.SetCached(ctx, key, string(raw), s.cacheTTL); err != nil {
		s.logger.Warn("stats cache write failed", zap.Error(err))
	}
}

func parseFlexibleDate(value string) (time.Time, error) {
	if parsed, err := time.Parse("02-01-2006", value); err == nil {
		return parsed, nil
	}
	return time.Parse(dateLayout, value)
}
