package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/forum-service/internal/domain"
	"github.com/spec-kit/forum-service/internal/events"
	"github.com/spec-kit/forum-service/internal/observability"
	"github.com/spec-kit/forum-service/internal/realtime"
)

// Exercises the full path: answer posted, event dispatched, notification
// persisted and pushed to the question author's channel.
func TestAnswerToNotificationPipeline(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	questions := newFakeQuestionRepo()
	answers := newFakeAnswerRepo()
	notifications := newFakeNotificationRepo()
	publisher := &fakeRealtimePublisher{}

	dispatcher := events.NewInMemoryDispatcher(logger)
	notificationSvc := NewNotificationService(notifications, publisher, observability.NewMetrics(), logger)
	notificationSvc.RegisterHandlers(dispatcher)
	answerSvc := NewAnswerService(answers, questions, dispatcher, logger)

	question := seedQuestion(t, questions, 1)

	answer, err := answerSvc.CreateAnswer(ctx, memberIdentity(2), question.ID, "Use context cancellation.")
	if err != nil {
		t.Fatalf("create answer: %v", err)
	}

	authorFeed, err := notificationSvc.GetUserNotifications(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(authorFeed) != 1 {
		t.Fatalf("expected 1 notification for the question author, got %d", len(authorFeed))
	}
	if authorFeed[0].Type != domain.NotificationQuestionReplied {
		t.Fatalf("unexpected type %s", authorFeed[0].Type)
	}
	if authorFeed[0].AnswerID == nil || *authorFeed[0].AnswerID != answer.ID {
		t.Fatalf("expected answer id %d, got %v", answer.ID, authorFeed[0].AnswerID)
	}

	if len(publisher.pushes) != 1 {
		t.Fatalf("expected 1 push, got %d", len(publisher.pushes))
	}
	if got, want := publisher.pushes[0].channel, realtime.NotificationChannel(1); got != want {
		t.Fatalf("expected channel %s, got %s", want, got)
	}

	// Rating the answer notifies its author on their own channel.
	if _, err := answerSvc.RateAnswer(ctx, memberIdentity(1), answer.ID, 5); err != nil {
		t.Fatalf("rate: %v", err)
	}
	raterFeed, err := notificationSvc.GetUserNotifications(ctx, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(raterFeed) != 1 || raterFeed[0].Type != domain.NotificationAnswerRated {
		t.Fatalf("expected one ANSWER_RATED notification for the answer author, got %+v", raterFeed)
	}
}
