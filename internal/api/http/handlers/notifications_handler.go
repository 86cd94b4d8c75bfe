package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/forum-service/internal/api/dto"
	"github.com/spec-kit/forum-service/internal/auth"
	"github.com/spec-kit/forum-service/internal/service"
	apperrors "github.com/spec-kit/forum-service/pkg/util"
)

// NotificationsHandler exposes a user's notification feed.
type NotificationsHandler struct {
	notifications *service.NotificationService
}

func NewNotificationsHandler(notificationService *service.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{notifications: notificationService}
}

// List handles GET /notifications, newest first, scoped to the caller.
func (h *NotificationsHandler) List(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	notifications, err := h.notifications.GetUserNotifications(c.Context(), identity.ID)
	if err != nil {
		return err
	}

	views := make([]dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		views = append(views, dto.FromNotification(&notifications[i]))
	}
	return c.JSON(fiber.Map{"data": views})
}

// MarkRead handles PATCH /notifications/:id/read. Marking an already read
// or unknown notification succeeds without effect.
func (h *NotificationsHandler) MarkRead(c *fiber.Ctx) error {
	if _, ok := auth.IdentityFromContext(c); !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := parseID(c, "id", "notification")
	if err != nil {
		return err
	}
	if err := h.notifications.MarkAsRead(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
