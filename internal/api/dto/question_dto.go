package dto

import (
	"time"

	"github.com/spec-kit/forum-service/internal/domain"
)

// CreateQuestionRequest payload.
type CreateQuestionRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// UpdateQuestionRequest payload.
type UpdateQuestionRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// QuestionResponse is the public view of a question.
type QuestionResponse struct {
	ID          int64            `json:"id"`
	AuthorID    int64            `json:"author_id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Tags        []string         `json:"tags"`
	Views       int              `json:"views"`
	Answers     []AnswerResponse `json:"answers,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// FromQuestion maps a domain question to its response view.
func FromQuestion(question *domain.Question) QuestionResponse {
	tags := question.Tags
	if tags == nil {
		tags = []string{}
	}
	return QuestionResponse{
		ID:          question.ID,
		AuthorID:    question.AuthorID,
		Title:       question.Title,
		Description: question.Description,
		Tags:        tags,
		Views:       question.Views,
		CreatedAt:   question.CreatedAt,
		UpdatedAt:   question.UpdatedAt,
	}
}
