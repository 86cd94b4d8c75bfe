package domain

import "time"

// NotificationType enumerates the events a member can be notified about.
type NotificationType string

const (
	NotificationQuestionReplied NotificationType = "QUESTION_REPLIED"
	NotificationAnswerRated     NotificationType = "ANSWER_RATED"
)

// notificationMessages maps each type to its user-facing message.
var notificationMessages = map[NotificationType]string{
	NotificationQuestionReplied: "You have an answer",
	NotificationAnswerRated:     "Answer rated",
}

// Message returns the display text for the notification type.
func (t NotificationType) Message() string {
	return notificationMessages[t]
}

// Notification is created once for a recipient, may transition to read
// exactly once, and is never deleted.
type Notification struct {
	ID         int64
	UserID     int64
	QuestionID *int64
	AnswerID   *int64
	Type       NotificationType
	Read       bool
	CreatedAt  time.Time
}
