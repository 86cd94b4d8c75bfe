package domain

import "time"

// Answer belongs to a question.
type Answer struct {
	ID         int64
	QuestionID int64
	AuthorID   int64
	Content    string
	Rating     *int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
