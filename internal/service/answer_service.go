package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/forum-service/internal/auth"
	"github.com/spec-kit/forum-service/internal/domain"
	"github.com/spec-kit/forum-service/internal/events"
	"github.com/spec-kit/forum-service/internal/repository"
	apperrors "github.com/spec-kit/forum-service/pkg/util"
)

// AnswerService coordinates answer workflows and emits the events that feed
// the notification pipeline.
type AnswerService struct {
	answers    repository.AnswerRepository
	questions  repository.QuestionRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAnswerService constructs the service.
func NewAnswerService(answers repository.AnswerRepository, questions repository.QuestionRepository, dispatcher events.Dispatcher, logger *zap.Logger) *AnswerService {
	return &AnswerService{answers: answers, questions: questions, dispatcher: dispatcher, logger: logger}
}

// CreateAnswer posts an answer. The question author is notified unless they
// answered their own question.
func (s *AnswerService) CreateAnswer(ctx context.Context, identity *auth.Identity, questionID int64, content string) (*domain.Answer, error) {
	if !auth.CanCreateAnswer(identity) {
		return nil, apperrors.NewForbidden("not allowed to post answers")
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationError("content required", nil)
	}

	question, err := s.getQuestion(ctx, questionID)
	if err != nil {
		return nil, err
	}

	answer := &domain.Answer{
		QuestionID: question.ID,
		AuthorID:   identity.ID,
		Content:    content,
	}
	if err := s.answers.Create(ctx, answer); err != nil {
		return nil, err
	}

	if question.AuthorID != identity.ID {
		s.publishEvent(ctx, events.Event{
			Type: events.EventQuestionAnswered,
			Payload: events.QuestionAnsweredPayload{
				QuestionID:       question.ID,
				QuestionAuthorID: question.AuthorID,
				AnswerID:         answer.ID,
				AnswerAuthorID:   answer.AuthorID,
			},
		})
	}
	return answer, nil
}

// RateAnswer assigns a 1-5 rating. The answer author is notified unless
// they rated themselves.
func (s *AnswerService) RateAnswer(ctx context.Context, identity *auth.Identity, answerID int64, rating int) (*domain.Answer, error) {
	if !auth.CanCreateAnswer(identity) {
		return nil, apperrors.NewForbidden("not allowed to rate answers")
	}
	if rating < 1 || rating > 5 {
		return nil, apperrors.NewValidationError("rating must be between 1 and 5", nil)
	}

	answer, err := s.getAnswer(ctx, answerID)
	if err != nil {
		return nil, err
	}

	answer.Rating = &rating
	if err := s.answers.Update(ctx, answer); err != nil {
		return nil, err
	}

	if answer.AuthorID != identity.ID {
		s.publishEvent(ctx, events.Event{
			Type: events.EventAnswerRated,
			Payload: events.AnswerRatedPayload{
				QuestionID:     answer.QuestionID,
				AnswerID:       answer.ID,
				AnswerAuthorID: answer.AuthorID,
				RaterID:        identity.ID,
				Rating:         rating,
			},
		})
	}
	return answer, nil
}

// UpdateAnswer edits an answer's content. Admin or author only.
func (s *AnswerService) UpdateAnswer(ctx context.Context, identity *auth.Identity, answerID int64, content string) (*domain.Answer, error) {
	answer, err := s.getAnswer(ctx, answerID)
	if err != nil {
		return nil, err
	}
	if !auth.CanMutateAnswer(identity, answer.AuthorID) {
		return nil, apperrors.NewForbidden("not allowed to update this answer")
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationError("content required", nil)
	}
	answer.Content = content
	if err := s.answers.Update(ctx, answer); err != nil {
		return nil, err
	}
	return answer, nil
}

// DeleteAnswer removes an answer. Admin or author only.
func (s *AnswerService) DeleteAnswer(ctx context.Context, identity *auth.Identity, answerID int64) error {
	answer, err := s.getAnswer(ctx, answerID)
	if err != nil {
		return err
	}
	if !auth.CanMutateAnswer(identity, answer.AuthorID) {
		return apperrors.NewForbidden("not allowed to delete this answer")
	}
	return s.answers.Delete(ctx, answerID)
}

// ListByQuestion returns a question's answers in posting order.
func (s *AnswerService) ListByQuestion(ctx context.Context, questionID int64) ([]domain.Answer, error) {
	if _, err := s.getQuestion(ctx, questionID); err != nil {
		return nil, err
	}
	return s.answers.ListByQuestion(ctx, questionID)
}

func (s *AnswerService) getQuestion(ctx context.Context, id int64) (*domain.Question, error) {
	question, err := s.questions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("question", nil)
		}
		return nil, err
	}
	return question, nil
}

func (s *AnswerService) getAnswer(ctx context.Context, id int64) (*domain.Answer, error) {
	answer, err := s.answers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("answer", nil)
		}
		return nil, err
	}
	return answer, nil
}

func (s *AnswerService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now().UTC()
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event publish failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
