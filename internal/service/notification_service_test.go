package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/forum-service/internal/api/dto"
	"github.com/spec-kit/forum-service/internal/domain"
	"github.com/spec-kit/forum-service/internal/observability"
	"github.com/spec-kit/forum-service/internal/realtime"
)

func newNotificationFixture() (*NotificationService, *fakeNotificationRepo, *fakeRealtimePublisher, *observability.Metrics) {
	repo := newFakeNotificationRepo()
	publisher := &fakeRealtimePublisher{}
	metrics := observability.NewMetrics()
	svc := NewNotificationService(repo, publisher, metrics, zap.NewNop())
	return svc, repo, publisher, metrics
}

func TestNotifyNewAnswerPersistsThenPushes(t *testing.T) {
	svc, repo, publisher, _ := newNotificationFixture()
	ctx := context.Background()

	if err := svc.NotifyNewAnswer(ctx, 7, 3, 11); err != nil {
		t.Fatalf("notify: %v", err)
	}

	stored, err := repo.GetByID(ctx, 1)
	if err != nil {
		t.Fatalf("expected persisted notification: %v", err)
	}
	if stored.UserID != 7 || stored.Type != domain.NotificationQuestionReplied {
		t.Fatalf("unexpected record: %+v", stored)
	}
	if stored.Read {
		t.Fatal("new notification must start unread")
	}
	if stored.QuestionID == nil || *stored.QuestionID != 3 {
		t.Fatalf("expected question id 3, got %v", stored.QuestionID)
	}
	if stored.AnswerID == nil || *stored.AnswerID != 11 {
		t.Fatalf("expected answer id 11, got %v", stored.AnswerID)
	}

	if len(publisher.pushes) != 1 {
		t.Fatalf("expected 1 push, got %d", len(publisher.pushes))
	}
	if got, want := publisher.pushes[0].channel, realtime.NotificationChannel(7); got != want {
		t.Fatalf("expected channel %s, got %s", want, got)
	}
	view, ok := publisher.pushes[0].payload.(dto.NotificationResponse)
	if !ok {
		t.Fatalf("unexpected push payload type %T", publisher.pushes[0].payload)
	}
	if view.Message != "You have an answer" {
		t.Fatalf("unexpected push message %q", view.Message)
	}
}

func TestNotifyAnswerRatedMessage(t *testing.T) {
	svc, _, publisher, _ := newNotificationFixture()

	if err := svc.NotifyAnswerRated(context.Background(), 5, 3, 11); err != nil {
		t.Fatalf("notify: %v", err)
	}
	view := publisher.pushes[0].payload.(dto.NotificationResponse)
	if view.Message != "Answer rated" {
		t.Fatalf("unexpected push message %q", view.Message)
	}
}

func TestNotifySurvivesPushFailure(t *testing.T) {
	svc, repo, publisher, metrics := newNotificationFixture()
	publisher.failErr = errors.New("redis unreachable")

	if err := svc.NotifyNewAnswer(context.Background(), 7, 3, 11); err != nil {
		t.Fatalf("push failure must not surface: %v", err)
	}
	if _, err := repo.GetByID(context.Background(), 1); err != nil {
		t.Fatalf("record must persist despite push failure: %v", err)
	}
	if metrics.PushFailures() != 1 {
		t.Fatalf("expected 1 recorded push failure, got %d", metrics.PushFailures())
	}
}

func TestNotifyFailsWhenPersistenceFails(t *testing.T) {
	svc, repo, publisher, _ := newNotificationFixture()
	repo.createErr = errors.New("insert failed")

	if err := svc.NotifyNewAnswer(context.Background(), 7, 3, 11); err == nil {
		t.Fatal("expected error when the record cannot be persisted")
	}
	if len(publisher.pushes) != 0 {
		t.Fatal("nothing may be pushed when persistence fails")
	}
}

func TestMarkAsReadIsIdempotent(t *testing.T) {
	svc, repo, _, _ := newNotificationFixture()
	ctx := context.Background()

	if err := svc.NotifyNewAnswer(ctx, 7, 3, 11); err != nil {
		t.Fatalf("notify: %v", err)
	}

	if err := svc.MarkAsRead(ctx, 1); err != nil {
		t.Fatalf("first mark: %v", err)
	}
	if err := svc.MarkAsRead(ctx, 1); err != nil {
		t.Fatalf("second mark must be a no-op, got %v", err)
	}

	stored, err := repo.GetByID(ctx, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !stored.Read {
		t.Fatal("notification must be read")
	}
}

func TestMarkAsReadUnknownIDIsNoOp(t *testing.T) {
	svc, _, _, _ := newNotificationFixture()
	if err := svc.MarkAsRead(context.Background(), 999); err != nil {
		t.Fatalf("unknown id must not error, got %v", err)
	}
}

func TestGetUserNotificationsNewestFirst(t *testing.T) {
	svc, _, _, _ := newNotificationFixture()
	ctx := context.Background()

	if err := svc.NotifyNewAnswer(ctx, 7, 1, 10); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if err := svc.NotifyAnswerRated(ctx, 7, 2, 20); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if err := svc.NotifyNewAnswer(ctx, 8, 3, 30); err != nil {
		t.Fatalf("notify: %v", err)
	}

	list, err := svc.GetUserNotifications(ctx, 7)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 notifications for user 7, got %d", len(list))
	}
	if list[0].ID < list[1].ID {
		t.Fatal("expected newest first ordering")
	}
}
