package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/forum-service/internal/auth"
	"github.com/spec-kit/forum-service/internal/mail"
	"github.com/spec-kit/forum-service/internal/repository"
	apperrors "github.com/spec-kit/forum-service/pkg/util"
)

// Whatever went wrong with a reset token, the requester only ever sees this.
const genericResetMessage = "invalid or expired password reset token"

// PasswordResetService issues single-purpose reset tokens and completes
// resets. Reset tokens are self-contained and are not stored; a used token
// stays formally valid until it expires.
type PasswordResetService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	mailer     mail.Publisher
	baseURL    string
	bcryptCost int
	logger     *zap.Logger
}

// NewPasswordResetService builds the service.
func NewPasswordResetService(users repository.UserRepository, tokenMgr *auth.TokenManager, mailer mail.Publisher, baseURL string, bcryptCost int, logger *zap.Logger) *PasswordResetService {
	return &PasswordResetService{
		users:      users,
		tokenMgr:   tokenMgr,
		mailer:     mailer,
		baseURL:    baseURL,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// RequestReset enqueues a reset email when the address belongs to a member.
// The outcome is identical for unknown addresses, so the endpoint cannot be
// used to probe which emails have accounts. The enqueue itself is
// best-effort.
func (s *PasswordResetService) RequestReset(ctx context.Context, email string) error {
	if _, err := s.users.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Debug("password reset requested for unknown email")
			return nil
		}
		return err
	}

	token, err := s.tokenMgr.IssueReset(email)
	if err != nil {
		return err
	}
	resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.baseURL, token)

	if err := s.mailer.EnqueuePasswordReset(ctx, email, resetLink); err != nil {
		s.logger.Warn("reset email enqueue failed", zap.Error(err))
	}
	return nil
}

// ResetPassword verifies the reset token and updates the member's password.
// Every verification failure collapses to the same generic message.
func (s *PasswordResetService) ResetPassword(ctx context.Context, token, newPassword string) error {
	email, err := s.tokenMgr.VerifyReset(token)
	if err != nil {
		s.logger.Debug("reset token rejected", zap.Error(err))
		return apperrors.NewValidationError(genericResetMessage, nil)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewValidationError(genericResetMessage, nil)
		}
		return err
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.users.Update(ctx, user)
}
