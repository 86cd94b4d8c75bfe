package domain

import "time"

// Tag labels questions. Tags are created on demand and shared across questions.
type Tag struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}
