package worker

import (
	"github.com/spec-kit/forum-service/internal/events"
	"github.com/spec-kit/forum-service/internal/service"
)

// StartNotificationWorker wires the notification service into the event
// pipeline.
func StartNotificationWorker(dispatcher events.Dispatcher, notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers(dispatcher)
}
