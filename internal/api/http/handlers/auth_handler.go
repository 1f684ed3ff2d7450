package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hr-service/internal/api/dto"
	"github.com/spec-kit/hr-service/internal/auth"
	"github.com/spec-kit/hr-service/internal/service"
	apperrors "github.com/spec-kit/hr-service/pkg/util"
)

// AuthHandler exposes login, logout and the authenticated profile.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /auth/login. The issued token is returned in the body
// and also set as an HTTP-only cookie for browser clients.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password are required", nil)
	}

	result, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     auth.AccessTokenCookie,
		Value:    result.Session.Token,
		Expires:  result.Session.ExpiresAt,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.JSON(dto.LoginResponse{
		Message:     "login successful",
		AccessToken: result.Session.Token,
		TokenType:   "bearer",
		RedirectURL: result.RedirectURL,
	})
}

// Logout handles POST /auth/logout by expiring the session cookie. The token
// itself stays valid until its expiry; there is no server-side revocation.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     auth.AccessTokenCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(dto.MessageResponse{Message: "logged out"})
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	emp, err := h.auth.Profile(c.UserContext(), identity)
	if err != nil {
		return err
	}

	resp := dto.ProfileResponse{
		ID:           emp.ID,
		EmployeeID:   emp.Code,
		FirstName:    emp.FirstName,
		LastName:     emp.LastName,
		Email:        emp.Email,
		Phone:        emp.Phone,
		Role:         string(emp.Role),
		DepartmentID: emp.DepartmentID,
		IsActive:     emp.IsActive,
		Address:      emp.Address,
		Salary:       emp.Salary,
	}
	if emp.DateOfBirth != nil {
		dob := emp.DateOfBirth.Format("2006-01-02")
		resp.DateOfBirth = &dob
	}
	return c.JSON(resp)
}
