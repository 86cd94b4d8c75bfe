package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventQuestionAnswered EventType = "question_answered"
	EventAnswerRated      EventType = "answer_rated"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// QuestionAnsweredPayload is published when someone answers another
// member's question. Services never publish it for self-answers.
type QuestionAnsweredPayload struct {
	QuestionID       int64 `json:"question_id"`
	QuestionAuthorID int64 `json:"question_author_id"`
	AnswerID         int64 `json:"answer_id"`
	AnswerAuthorID   int64 `json:"answer_author_id"`
}

// AnswerRatedPayload is published when someone rates another member's answer.
type AnswerRatedPayload struct {
	QuestionID     int64 `json:"question_id"`
	AnswerID       int64 `json:"answer_id"`
	AnswerAuthorID int64 `json:"answer_author_id"`
	RaterID        int64 `json:"rater_id"`
	Rating         int   `json:"rating"`
}
