package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hr-service/internal/api/http/handlers"
	"github.com/spec-kit/hr-service/internal/auth"
	"github.com/spec-kit/hr-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Settings       *handlers.SettingsHandler
	Admin          *handlers.AdminHandler
	Employee       *handlers.EmployeeHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Admin routes require the admin role and
// employee routes the employee role; neither role passes the other's gate.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated(), cfg.Auth.Me)

	settings := app.Group("/settings", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	settings.Get("/profile", cfg.Auth.Me)
	settings.Post("/change-password", cfg.Settings.ChangePassword)
	settings.Post("/update-phone", cfg.Settings.UpdatePhone)
	settings.Post("/update-address", cfg.Settings.UpdateAddress)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin))
	admin.Get("/dashboard/stats", cfg.Admin.DashboardStats)
	admin.Post("/attendance", cfg.Admin.MarkAttendance)
	admin.Get("/attendance-report", cfg.Admin.AttendanceReport)
	admin.Get("/leaves", cfg.Admin.ListLeaves)
	admin.Put("/leaves/:id/approve", cfg.Admin.ApproveLeave)
	admin.Put("/leaves/:id/reject", cfg.Admin.RejectLeave)
	admin.Post("/payroll", cfg.Admin.AddSalary)
	admin.Get("/payroll", cfg.Admin.ListSalaries)
	admin.Get("/employees/:code/payroll", cfg.Admin.EmployeePayroll)
	admin.Post("/employees", cfg.Admin.CreateEmployee)
	admin.Get("/employees", cfg.Admin.ListEmployees)
	admin.Post("/departments", cfg.Admin.CreateDepartment)
	admin.Get("/departments", cfg.Admin.ListDepartments)
	admin.Get("/departments/:name/employees", cfg.Admin.DepartmentEmployees)

	employee := app.Group("/employee", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleEmployee))
	employee.Get("/dashboard/stats", cfg.Employee.DashboardStats)
	employee.Post("/apply-leave", cfg.Employee.ApplyLeave)
	employee.Get("/my-leaves", cfg.Employee.MyLeaves)
	employee.Get("/my-payroll", cfg.Employee.MySalaries)
}
