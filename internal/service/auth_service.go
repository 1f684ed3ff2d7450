package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/hr-service/internal/auth"
	"github.com/spec-kit/hr-service/internal/config"
	"github.com/spec-kit/hr-service/internal/domain"
	"github.com/spec-kit/hr-service/internal/repository"
	apperrors "github.com/spec-kit/hr-service/pkg/util"
)

// Dashboard redirect targets returned with a successful login.
const (
	AdminDashboardURL    = "/admin/dashboard"
	EmployeeDashboardURL = "/employee/dashboard"
)

const minPasswordLength = 6

// LoginResult carries everything the presentation layer needs after login.
type LoginResult struct {
	Employee    *domain.Employee
	Session     domain.Session
	RedirectURL string
}

// AuthService coordinates credential verification, session issuance and
// self-service profile updates.
type AuthService struct {
	employees  repository.EmployeeRepository
	tokens     *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, employees repository.EmployeeRepository) *AuthService {
	return &AuthService{
		employees:  employees,
		tokens:     auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		bcryptCost: cfg.BcryptCost,
	}
}

// Login verifies credentials and issues a session token plus the dashboard
// URL for the employee's role.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	emp, err := s.employees.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(emp.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}
	if !emp.IsActive {
		return nil, apperrors.NewUnauthorized("account is inactive")
	}

	var redirect string
	switch emp.Role {
	case domain.RoleAdmin:
		redirect = AdminDashboardURL
	case domain.RoleEmployee:
		redirect = EmployeeDashboardURL
	default:
		return nil, apperrors.NewForbidden("invalid role")
	}

	token, expiresAt, err := s.tokens.Generate(domain.Identity{
		ID:    emp.ID,
		Email: emp.Email,
		Role:  emp.Role,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	return &LoginResult{
		Employee:    emp,
		Session:     domain.Session{Token: token, ExpiresAt: expiresAt},
		RedirectURL: redirect,
	}, nil
}

// Profile returns the employee row behind an authenticated identity.
func (s *AuthService) Profile(ctx context.Context, identity domain.Identity) (*domain.Employee, error) {
	emp, err := s.employees.GetByID(ctx, identity.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("employee", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return emp, nil
}

// ChangePassword verifies the old password and stores a new hash. The
// confirmation mismatch is checked before the old password, and the length
// rule after it, matching the order clients already depend on.
func (s *AuthService) ChangePassword(ctx context.Context, identity domain.Identity, oldPassword, newPassword, confirmPassword string) error {
	if newPassword != confirmPassword {
		return apperrors.NewValidationError("new passwords do not match", nil)
	}

	emp, err := s.employees.GetByID(ctx, identity.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("employee", nil)
		}
		return apperrors.MapError(err)
	}

	if err := auth.ComparePassword(emp.PasswordHash, oldPassword); err != nil {
		return apperrors.NewUnauthorized("old password is incorrect")
	}
	if len(newPassword) < minPasswordLength {
		return apperrors.NewValidationError("new password must be at least 6 characters long", nil)
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.MapError(err)
	}
	emp.PasswordHash = hash
	return apperrors.MapError(s.employees.Update(ctx, emp))
}

// UpdatePhone stores a trimmed, non-empty phone number.
func (s *AuthService) UpdatePhone(ctx context.Context, identity domain.Identity, phone string) (string, error) {
	return s.updateContactField(ctx, identity, phone, "phone number cannot be empty", func(emp *domain.Employee, value string) {
		emp.Phone = &value
	})
}

// UpdateAddress stores a trimmed, non-empty address.
func (s *AuthService) UpdateAddress(ctx context.Context, identity domain.Identity, address string) (string, error) {
	return s.updateContactField(ctx, identity, address, "address cannot be empty", func(emp *domain.Employee, value string) {
		emp.Address = &value
	})
}

func (s *AuthService) updateContactField(ctx context.Context, identity domain.Identity, value, emptyMsg string, assign func(*domain.Employee, string)) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", apperrors.NewValidationError(emptyMsg, nil)
	}

	emp, err := s.employees.GetByID(ctx, identity.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.NewNotFound("employee", nil)
		}
		return "", apperrors.MapError(err)
	}

	assign(emp, trimmed)
	if err := s.employees.Update(ctx, emp); err != nil {
		return "", apperrors.MapError(err)
	}
	return trimmed, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}
