package dto

import (
	"time"

	"github.com/spec-kit/forum-service/internal/domain"
)

// NotificationResponse is the serialized notification view, used both for
// API responses and for the realtime push payload. The message text is
// derived from the type.
type NotificationResponse struct {
	ID           int64                   `json:"id"`
	UserID       int64                   `json:"userId"`
	Message      string                  `json:"message"`
	QuestionID   *int64                  `json:"questionId,omitempty"`
	AnswerID     *int64                  `json:"answerId,omitempty"`
	Type         domain.NotificationType `json:"type"`
	Read         bool                    `json:"read"`
	CreationDate time.Time               `json:"creationDate"`
}

// FromNotification maps a domain notification to its serialized view.
func FromNotification(notification *domain.Notification) NotificationResponse {
	return NotificationResponse{
		ID:           notification.ID,
		UserID:       notification.UserID,
		Message:      notification.Type.Message(),
		QuestionID:   notification.QuestionID,
		AnswerID:     notification.AnswerID,
		Type:         notification.Type,
		Read:         notification.Read,
		CreationDate: notification.CreatedAt,
	}
}
