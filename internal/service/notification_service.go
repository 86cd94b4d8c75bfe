package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/forum-service/internal/api/dto"
	"github.com/spec-kit/forum-service/internal/domain"
	"github.com/spec-kit/forum-service/internal/events"
	"github.com/spec-kit/forum-service/internal/observability"
	"github.com/spec-kit/forum-service/internal/realtime"
	"github.com/spec-kit/forum-service/internal/repository"
)

// NotificationService creates notification records and pushes them over the
// per-user realtime channel. The persisted record is the durable source of
// truth; the push is best-effort and its failure never rolls anything back.
type NotificationService struct {
	notifications repository.NotificationRepository
	publisher     realtime.Publisher
	metrics       *observability.Metrics
	logger        *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(notifications repository.NotificationRepository, publisher realtime.Publisher, metrics *observability.Metrics, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		publisher:     publisher,
		metrics:       metrics,
		logger:        logger,
	}
}

// RegisterHandlers subscribes to the domain events that produce notifications.
func (n *NotificationService) RegisterHandlers(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	dispatcher.Subscribe(events.EventQuestionAnswered, n.handleQuestionAnswered)
	dispatcher.Subscribe(events.EventAnswerRated, n.handleAnswerRated)
}

func (n *NotificationService) handleQuestionAnswered(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.QuestionAnsweredPayload)
	if !ok {
		return fmt.Errorf("unexpected payload for %s", event.Type)
	}
	return n.NotifyNewAnswer(ctx, payload.QuestionAuthorID, payload.QuestionID, payload.AnswerID)
}

func (n *NotificationService) handleAnswerRated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.AnswerRatedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload for %s", event.Type)
	}
	return n.NotifyAnswerRated(ctx, payload.AnswerAuthorID, payload.QuestionID, payload.AnswerID)
}

// NotifyNewAnswer records that the question author's question was answered.
// Callers must not invoke it for self-answers.
func (n *NotificationService) NotifyNewAnswer(ctx context.Context, recipientID, questionID, answerID int64) error {
	return n.notify(ctx, recipientID, domain.NotificationQuestionReplied, &questionID, &answerID)
}

// NotifyAnswerRated records that the answer author's answer was rated.
func (n *NotificationService) NotifyAnswerRated(ctx context.Context, recipientID, questionID, answerID int64) error {
	return n.notify(ctx, recipientID, domain.NotificationAnswerRated, &questionID, &answerID)
}

func (n *NotificationService) notify(ctx context.Context, recipientID int64, notificationType domain.NotificationType, questionID, answerID *int64) error {
	notification := &domain.Notification{
		UserID:     recipientID,
		QuestionID: questionID,
		AnswerID:   answerID,
		Type:       notificationType,
		Read:       false,
	}
	if err := n.notifications.Create(ctx, notification); err != nil {
		return err
	}

	view := dto.FromNotification(notification)
	channel := realtime.NotificationChannel(recipientID)
	if err := n.publisher.Publish(ctx, channel, view); err != nil {
		n.metrics.RecordPushFailure()
		n.logger.Warn("notification push failed",
			zap.String("channel", channel),
			zap.Int64("notification_id", notification.ID),
			zap.Error(err),
		)
	}
	return nil
}

// MarkAsRead flips a notification to read. An unknown id is a no-op so a
// stale client acknowledging twice never sees an error, and a second call
// on the same id has no further effect.
func (n *NotificationService) MarkAsRead(ctx context.Context, notificationID int64) error {
	updated, err := n.notifications.MarkRead(ctx, notificationID)
	if err != nil {
		return err
	}
	if !updated {
		n.logger.Debug("mark-as-read for unknown notification", zap.Int64("notification_id", notificationID))
	}
	return nil
}

// GetUserNotifications returns the recipient's notifications, newest first,
// with related question and answer ids already resolved.
func (n *NotificationService) GetUserNotifications(ctx context.Context, userID int64) ([]domain.Notification, error) {
	return n.notifications.ListByUser(ctx, userID)
}
