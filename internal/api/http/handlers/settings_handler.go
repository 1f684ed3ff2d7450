package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hr-service/internal/api/dto"
	"github.com/spec-kit/hr-service/internal/auth"
	"github.com/spec-kit/hr-service/internal/service"
	apperrors "github.com/spec-kit/hr-service/pkg/util"
)

// SettingsHandler exposes self-service account updates for any
// authenticated role.
type SettingsHandler struct {
	auth *service.AuthService
}

// NewSettingsHandler constructs handler.
func NewSettingsHandler(authService *service.AuthService) *SettingsHandler {
	return &SettingsHandler{auth: authService}
}

// ChangePassword handles POST /settings/change-password.
func (h *SettingsHandler) ChangePassword(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if err := h.auth.ChangePassword(c.UserContext(), identity, req.OldPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "password changed successfully"})
}

// UpdatePhone handles POST /settings/update-phone.
func (h *SettingsHandler) UpdatePhone(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	var req dto.UpdatePhoneRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if _, err := h.auth.UpdatePhone(c.UserContext(), identity, req.Phone); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "phone number updated successfully"})
}

// UpdateAddress handles POST /settings/update-address.
func (h *SettingsHandler) UpdateAddress(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	var req dto.UpdateAddressRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if _, err := h.auth.UpdateAddress(c.UserContext(), identity, req.Address); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "address updated successfully"})
}
