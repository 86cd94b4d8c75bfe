// Package mail enqueues outbound email jobs. Rendering and delivery happen
// in a downstream consumer; this service only publishes the job.
package mail

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/spec-kit/forum-service/internal/config"
)

// PasswordResetJob is the queue payload for a reset email.
type PasswordResetJob struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	ResetLink string    `json:"reset_link"`
	CreatedAt time.Time `json:"created_at"`
}

// Publisher enqueues password reset emails.
type Publisher interface {
	EnqueuePasswordReset(ctx context.Context, email, resetLink string) error
}

type amqpPublisher struct {
	cfg    config.MailConfig
	logger *zap.Logger
}

// NewAMQPPublisher builds a RabbitMQ-backed publisher. Connections are
// established per publish; the reset flow is low-volume and the caller
// treats failures as best-effort.
func NewAMQPPublisher(cfg config.MailConfig, logger *zap.Logger) Publisher {
	return &amqpPublisher{cfg: cfg, logger: logger}
}

func (p *amqpPublisher) EnqueuePasswordReset(ctx context.Context, email, resetLink string) error {
	conn, err := amqp.Dial(p.cfg.AMQPURL)
	if err != nil {
		p.logger.Warn("rabbitmq dial failed", zap.Error(err))
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.logger.Warn("rabbitmq channel open failed", zap.Error(err))
		return err
	}
	defer func() { _ = ch.Close() }()

	// Durable so jobs survive broker restarts.
	if _, err := ch.QueueDeclare(p.cfg.Queue, true, false, false, false, nil); err != nil {
		p.logger.Warn("rabbitmq queue declare failed", zap.Error(err))
		return err
	}

	job := PasswordResetJob{
		ID:        uuid.NewString(),
		Email:     email,
		ResetLink: resetLink,
		CreatedAt: time.Now().UTC(),
	}
	body, err := json.Marshal(job)
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    job.CreatedAt,
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", p.cfg.Queue, false, false, pub); err != nil {
		p.logger.Warn("rabbitmq publish failed", zap.Error(err))
		return err
	}
	return nil
}
