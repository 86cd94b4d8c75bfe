package dto

import (
	"time"

	"github.com/spec-kit/forum-service/internal/domain"
)

// CreateAnswerRequest payload.
type CreateAnswerRequest struct {
	Content string `json:"content"`
}

// UpdateAnswerRequest payload.
type UpdateAnswerRequest struct {
	Content string `json:"content"`
}

// RateAnswerRequest payload.
type RateAnswerRequest struct {
	Rating int `json:"rating"`
}

// AnswerResponse is the public view of an answer.
type AnswerResponse struct {
	ID         int64     `json:"id"`
	QuestionID int64     `json:"question_id"`
	AuthorID   int64     `json:"author_id"`
	Content    string    `json:"content"`
	Rating     *int      `json:"rating,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// FromAnswer maps a domain answer to its response view.
func FromAnswer(answer *domain.Answer) AnswerResponse {
	return AnswerResponse{
		ID:         answer.ID,
		QuestionID: answer.QuestionID,
		AuthorID:   answer.AuthorID,
		Content:    answer.Content,
		Rating:     answer.Rating,
		CreatedAt:  answer.CreatedAt,
		UpdatedAt:  answer.UpdatedAt,
	}
}
