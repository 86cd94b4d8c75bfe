package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/forum-service/internal/auth"
	"github.com/spec-kit/forum-service/internal/domain"
	"github.com/spec-kit/forum-service/internal/repository"
	apperrors "github.com/spec-kit/forum-service/pkg/util"
)

// TagService manages the shared tag vocabulary. Tags are created implicitly
// through questions; only deletion is an explicit, admin-gated operation.
type TagService struct {
	tags repository.TagRepository
}

// NewTagService constructs the service.
func NewTagService(tags repository.TagRepository) *TagService {
	return &TagService{tags: tags}
}

// ListTags returns all tags sorted by name.
func (s *TagService) ListTags(ctx context.Context) ([]domain.Tag, error) {
	return s.tags.List(ctx)
}

// DeleteTag removes a tag. Admin only.
func (s *TagService) DeleteTag(ctx context.Context, identity *auth.Identity, id int64) error {
	if !auth.CanDeleteTag(identity) {
		return apperrors.NewForbidden("admin role required")
	}
	if err := s.tags.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("tag", nil)
		}
		return err
	}
	return nil
}
