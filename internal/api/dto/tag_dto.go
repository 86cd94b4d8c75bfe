package dto

import (
	"time"

	"github.com/spec-kit/forum-service/internal/domain"
)

// TagResponse is the public view of a tag.
type TagResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// FromTag maps a domain tag to its response view.
func FromTag(tag *domain.Tag) TagResponse {
	return TagResponse{ID: tag.ID, Name: tag.Name, CreatedAt: tag.CreatedAt}
}
