package service

import (
	"context"
	"errors"
	"testing"

	"github.com/spec-kit/hr-service/internal/auth"
	"github.com/spec-kit/hr-service/internal/config"
	"github.com/spec-kit/hr-service/internal/domain"
	apperrors "github.com/spec-kit/hr-service/pkg/util"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 60,
		BcryptCost:            4,
	}
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := auth.HashPassword(password, 4)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

func domainErrCode(t *testing.T, err error) string {
	t.Helper()
	var derr *apperrors.DomainError
	if !errors.As(err, &derr) {
		t.Fatalf("expected DomainError, got %T: %v", err, err)
	}
	return derr.Code
}

func TestLogin(t *testing.T) {
	repo := newFakeEmployeeRepo()
	repo.add(domain.Employee{
		Code:         "EMP001",
		Email:        "alice@ems.com",
		PasswordHash: mustHash(t, "secret123"),
		Role:         domain.RoleEmployee,
		IsActive:     true,
	})
	repo.add(domain.Employee{
		Code:         "ADMIN001",
		Email:        "admin@ems.com",
		PasswordHash: mustHash(t, "admin123"),
		Role:         domain.RoleAdmin,
		IsActive:     true,
	})
	repo.add(domain.Employee{
		Code:         "EMP002",
		Email:        "gone@ems.com",
		PasswordHash: mustHash(t, "secret123"),
		Role:         domain.RoleEmployee,
		IsActive:     false,
	})

	svc := NewAuthService(testAuthConfig(), repo)
	ctx := context.Background()

	t.Run("employee login issues token and employee redirect", func(t *testing.T) {
		result, err := svc.Login(ctx, "alice@ems.com", "secret123")
		if err != nil {
			t.Fatalf("login: %v", err)
		}
		if result.RedirectURL != EmployeeDashboardURL {
			t.Errorf("redirect = %q, want %q", result.RedirectURL, EmployeeDashboardURL)
		}
		if result.Session.Token == "" {
			t.Error("expected a session token")
		}

		identity, err := svc.TokenManager().Parse(result.Session.Token)
		if err != nil {
			t.Fatalf("parse issued token: %v", err)
		}
		if identity.Email != "alice@ems.com" || identity.Role != domain.RoleEmployee {
			t.Errorf("identity = %+v", identity)
		}
	})

	t.Run("admin login redirects to admin dashboard", func(t *testing.T) {
		result, err := svc.Login(ctx, "admin@ems.com", "admin123")
		if err != nil {
			t.Fatalf("login: %v", err)
		}
		if result.RedirectURL != AdminDashboardURL {
			t.Errorf("redirect = %q, want %q", result.RedirectURL, AdminDashboardURL)
		}
	})

	t.Run("unknown email is unauthorized", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@ems.com", "secret123")
		if code := domainErrCode(t, err); code != "UNAUTHORIZED" {
			t.Errorf("code = %q, want UNAUTHORIZED", code)
		}
	})

	t.Run("wrong password is unauthorized with the same message", func(t *testing.T) {
		_, err := svc.Login(ctx, "alice@ems.com", "wrong")
		var derr *apperrors.DomainError
		if !errors.As(err, &derr) {
			t.Fatalf("expected DomainError, got %v", err)
		}
		if derr.Code != "UNAUTHORIZED" || derr.Message != "invalid credentials" {
			t.Errorf("got %q/%q", derr.Code, derr.Message)
		}
	})

	t.Run("inactive account is rejected even with valid password", func(t *testing.T) {
		_, err := svc.Login(ctx, "gone@ems.com", "secret123")
		var derr *apperrors.DomainError
		if !errors.As(err, &derr) {
			t.Fatalf("expected DomainError, got %v", err)
		}
		if derr.Code != "UNAUTHORIZED" || derr.Message != "account is inactive" {
			t.Errorf("got %q/%q", derr.Code, derr.Message)
		}
	})
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*AuthService, *fakeEmployeeRepo, domain.Identity) {
		repo := newFakeEmployeeRepo()
		emp := repo.add(domain.Employee{
			Code:         "EMP001",
			Email:        "alice@ems.com",
			PasswordHash: mustHash(t, "oldpass"),
			Role:         domain.RoleEmployee,
			IsActive:     true,
		})
		return NewAuthService(testAuthConfig(), repo), repo, domain.Identity{ID: emp.ID, Email: emp.Email, Role: emp.Role}
	}

	t.Run("success rotates the stored hash", func(t *testing.T) {
		svc, repo, identity := setup(t)
		if err := svc.ChangePassword(ctx, identity, "oldpass", "newpass1", "newpass1"); err != nil {
			t.Fatalf("change password: %v", err)
		}
		emp, _ := repo.GetByID(ctx, identity.ID)
		if err := auth.ComparePassword(emp.PasswordHash, "newpass1"); err != nil {
			t.Error("new password does not verify")
		}
		if err := auth.ComparePassword(emp.PasswordHash, "oldpass"); err == nil {
			t.Error("old password still verifies")
		}
	})

	t.Run("confirmation mismatch is reported before the old password check", func(t *testing.T) {
		svc, _, identity := setup(t)
		err := svc.ChangePassword(ctx, identity, "totally-wrong", "newpass1", "different")
		if code := domainErrCode(t, err); code != "VALIDATION_FAILED" {
			t.Errorf("code = %q, want VALIDATION_FAILED", code)
		}
	})

	t.Run("wrong old password is unauthorized", func(t *testing.T) {
		svc, _, identity := setup(t)
		err := svc.ChangePassword(ctx, identity, "wrong", "newpass1", "newpass1")
		if code := domainErrCode(t, err); code != "UNAUTHORIZED" {
			t.Errorf("code = %q, want UNAUTHORIZED", code)
		}
	})

	t.Run("short new password fails only after old password verifies", func(t *testing.T) {
		svc, _, identity := setup(t)
		err := svc.ChangePassword(ctx, identity, "oldpass", "abc", "abc")
		if code := domainErrCode(t, err); code != "VALIDATION_FAILED" {
			t.Errorf("code = %q, want VALIDATION_FAILED", code)
		}

		err = svc.ChangePassword(ctx, identity, "wrong", "abc", "abc")
		if code := domainErrCode(t, err); code != "UNAUTHORIZED" {
			t.Errorf("code = %q, want UNAUTHORIZED before length check", code)
		}
	})
}

func TestUpdateContactFields(t *testing.T) {
	ctx := context.Background()
	repo := newFakeEmployeeRepo()
	emp := repo.add(domain.Employee{
		Code:         "EMP001",
		Email:        "alice@ems.com",
		PasswordHash: mustHash(t, "secret123"),
		Role:         domain.RoleEmployee,
		IsActive:     true,
	})
	svc := NewAuthService(testAuthConfig(), repo)
	identity := domain.Identity{ID: emp.ID, Email: emp.Email, Role: emp.Role}

	t.Run("phone is trimmed and stored", func(t *testing.T) {
		stored, err := svc.UpdatePhone(ctx, identity, "  +1-555-0100  ")
		if err != nil {
			t.Fatalf("update phone: %v", err)
		}
		if stored != "+1-555-0100" {
			t.Errorf("stored = %q", stored)
		}
		fresh, _ := repo.GetByID(ctx, emp.ID)
		if fresh.Phone == nil || *fresh.Phone != "+1-555-0100" {
			t.Errorf("persisted phone = %v", fresh.Phone)
		}
	})

	t.Run("blank address is a validation error", func(t *testing.T) {
		_, err := svc.UpdateAddress(ctx, identity, "   ")
		if code := domainErrCode(t, err); code != "VALIDATION_FAILED" {
			t.Errorf("code = %q, want VALIDATION_FAILED", code)
		}
	})

	t.Run("unknown identity is not found", func(t *testing.T) {
		_, err := svc.UpdatePhone(ctx, domain.Identity{ID: 999, Role: domain.RoleEmployee}, "+1-555-0100")
		if code := domainErrCode(t, err); code != "NOT_FOUND" {
			t.Errorf("code = %q, want NOT_FOUND", code)
		}
	})
}
