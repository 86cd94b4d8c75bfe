package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/forum-service/internal/auth"
	"github.com/spec-kit/forum-service/internal/domain"
	"github.com/spec-kit/forum-service/internal/repository"
	apperrors "github.com/spec-kit/forum-service/pkg/util"
)

// QuestionService coordinates question workflows, including view counting.
type QuestionService struct {
	questions repository.QuestionRepository
	tags      repository.TagRepository
	logger    *zap.Logger
}

// QuestionInput describes a create or update payload.
type QuestionInput struct {
	Title       string
	Description string
	Tags        []string
}

// NewQuestionService constructs the service.
func NewQuestionService(questions repository.QuestionRepository, tags repository.TagRepository, logger *zap.Logger) *QuestionService {
	return &QuestionService{questions: questions, tags: tags, logger: logger}
}

// CreateQuestion creates a question for the caller.
func (s *QuestionService) CreateQuestion(ctx context.Context, identity *auth.Identity, input QuestionInput) (*domain.Question, error) {
	if !auth.CanCreateQuestion(identity) {
		return nil, apperrors.NewForbidden("not allowed to create questions")
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("title required", nil)
	}

	question := &domain.Question{
		AuthorID:    identity.ID,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
	}
	if err := s.questions.Create(ctx, question); err != nil {
		return nil, err
	}

	tags, err := s.processTags(ctx, input.Tags)
	if err != nil {
		return nil, err
	}
	if len(tags) > 0 {
		if err := s.questions.ReplaceTags(ctx, question.ID, tagIDs(tags)); err != nil {
			return nil, err
		}
		question.Tags = tagNames(tags)
	}
	return question, nil
}

// GetQuestion fetches a single question.
func (s *QuestionService) GetQuestion(ctx context.Context, id int64) (*domain.Question, error) {
	question, err := s.questions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("question", nil)
		}
		return nil, err
	}
	return question, nil
}

// ListQuestions returns questions matching the optional title filter.
func (s *QuestionService) ListQuestions(ctx context.Context, title string, limit, offset int) ([]domain.Question, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.questions.ListWithFilter(ctx, repository.QuestionFilter{
		Title:  strings.TrimSpace(title),
		Limit:  limit,
		Offset: offset,
	})
}

// UpdateQuestion edits a question. Admins may edit any question, authors
// their own; a missing question stays distinguishable from a denied one.
func (s *QuestionService) UpdateQuestion(ctx context.Context, identity *auth.Identity, id int64, input QuestionInput) (*domain.Question, error) {
	question, err := s.GetQuestion(ctx, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanMutateQuestion(identity, question.AuthorID) {
		return nil, apperrors.NewForbidden("not allowed to update this question")
	}

	if title := strings.TrimSpace(input.Title); title != "" {
		question.Title = title
	}
	question.Description = strings.TrimSpace(input.Description)
	if err := s.questions.Update(ctx, question); err != nil {
		return nil, err
	}

	if input.Tags != nil {
		tags, err := s.processTags(ctx, input.Tags)
		if err != nil {
			return nil, err
		}
		if err := s.questions.ReplaceTags(ctx, question.ID, tagIDs(tags)); err != nil {
			return nil, err
		}
		question.Tags = tagNames(tags)
	}
	return question, nil
}

// DeleteQuestion removes a question. Admin or author only.
func (s *QuestionService) DeleteQuestion(ctx context.Context, identity *auth.Identity, id int64) error {
	question, err := s.GetQuestion(ctx, id)
	if err != nil {
		return err
	}
	if !auth.CanDeleteQuestion(identity, question.AuthorID) {
		return apperrors.NewForbidden("not allowed to delete this question")
	}
	return s.questions.Delete(ctx, id)
}

// RegisterView counts a view at most once per distinct viewer. When the
// caller is authenticated the user id is the viewer key, regardless of how
// many sessions they browse from; otherwise the session id is used. The
// storage layer performs the set-insert and counter bump atomically.
func (s *QuestionService) RegisterView(ctx context.Context, questionID int64, sessionID string, identity *auth.Identity) (bool, error) {
	if _, err := s.GetQuestion(ctx, questionID); err != nil {
		return false, err
	}

	switch {
	case identity != nil:
		return s.questions.RegisterUserView(ctx, questionID, identity.ID)
	case sessionID != "":
		return s.questions.RegisterSessionView(ctx, questionID, sessionID)
	default:
		return false, nil
	}
}

// processTags resolves tag names to records, creating missing ones.
func (s *QuestionService) processTags(ctx context.Context, names []string) ([]domain.Tag, error) {
	seen := make(map[string]struct{}, len(names))
	var tags []domain.Tag
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		tag, err := s.tags.EnsureByName(ctx, name)
		if err != nil {
			return nil, err
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}

func tagIDs(tags []domain.Tag) []int64 {
	ids := make([]int64, 0, len(tags))
	for _, tag := range tags {
		ids = append(ids, tag.ID)
	}
	return ids
}

func tagNames(tags []domain.Tag) []string {
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	return names
}
