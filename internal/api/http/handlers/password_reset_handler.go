package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/forum-service/internal/api/dto"
	"github.com/spec-kit/forum-service/internal/service"
	apperrors "github.com/spec-kit/forum-service/pkg/util"
)

// PasswordResetHandler exposes the forgot-password flow.
type PasswordResetHandler struct {
	resets *service.PasswordResetService
}

func NewPasswordResetHandler(resetService *service.PasswordResetService) *PasswordResetHandler {
	return &PasswordResetHandler{resets: resetService}
}

// Request handles POST /users/password/reset. The response is identical
// whether or not the address belongs to a registered user.
func (h *PasswordResetHandler) Request(c *fiber.Ctx) error {
	var req dto.ResetRequestPayload
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" {
		return apperrors.NewValidationError("email required", nil)
	}
	if err := h.resets.RequestReset(c.Context(), req.Email); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusAccepted)
}

// Confirm handles POST /users/password/reset/confirm.
func (h *PasswordResetHandler) Confirm(c *fiber.Ctx) error {
	var req dto.ResetConfirmPayload
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Token == "" || req.NewPassword == "" {
		return apperrors.NewValidationError("token and new_password required", nil)
	}
	if err := h.resets.ResetPassword(c.Context(), req.Token, req.NewPassword); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
