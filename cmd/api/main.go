package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/hr-service/internal/api/http"
	"github.com/spec-kit/hr-service/internal/api/http/handlers"
	"github.com/spec-kit/hr-service/internal/auth"
	"github.com/spec-kit/hr-service/internal/config"
	"github.com/spec-kit/hr-service/internal/events"
	"github.com/spec-kit/hr-service/internal/observability"
	"github.com/spec-kit/hr-service/internal/persistence"
	"github.com/spec-kit/hr-service/internal/repository"
	"github.com/spec-kit/hr-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	employeeRepo := repository.NewEmployeeRepository(pool)
	departmentRepo := repository.NewDepartmentRepository(pool)
	attendanceRepo := repository.NewAttendanceRepository(pool)
	leaveRepo := repository.NewLeaveRepository(pool)
	payrollRepo := repository.NewPayrollRepository(pool)
	auditRepo := repository.NewAuditRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	clock := service.NewClock()

	authService := service.NewAuthService(cfg.Auth, employeeRepo)
	attendanceService := service.NewAttendanceService(attendanceRepo, employeeRepo, dispatcher, clock)
	leaveService := service.NewLeaveService(leaveRepo, employeeRepo, dispatcher, clock)
	payrollService := service.NewPayrollService(payrollRepo, employeeRepo, dispatcher, clock)
	orgService := service.NewOrgService(cfg, service.OrgDependencies{
		EmployeeRepo:   employeeRepo,
		DepartmentRepo: departmentRepo,
		AttendanceRepo: attendanceRepo,
		LeaveRepo:      leaveRepo,
		PayrollRepo:    payrollRepo,
		Cache:          redis,
	}, clock, logger)

	auditRecorder := service.NewAuditRecorder(auditRepo, logger)
	auditRecorder.RegisterHandlers(dispatcher)
	orgService.RegisterInvalidationHandlers(dispatcher)

	if err := orgService.Seed(ctx, cfg.Seed); err != nil {
		logger.Fatal("failed to seed initial data", zap.Error(err))
	}

	authMiddleware := auth.NewMiddleware(authService.TokenManager())
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Settings:       handlers.NewSettingsHandler(authService),
		Admin:          handlers.NewAdminHandler(attendanceService, leaveService, payrollService, orgService),
		Employee:       handlers.NewEmployeeHandler(leaveService, payrollService, orgService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
