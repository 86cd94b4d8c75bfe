package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Publisher pushes serialized payloads to a per-recipient channel. Pushes
// are best-effort; the persisted record is the source of truth.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload any) error
}

// NotificationChannel addresses a single user's notification stream.
func NotificationChannel(userID int64) string {
	return fmt.Sprintf("notifications/%d", userID)
}

type redisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher wraps a Redis client as a Publisher using Pub/Sub.
func NewRedisPublisher(client *redis.Client) Publisher {
	return &redisPublisher{client: client}
}

func (p *redisPublisher) Publish(ctx context.Context, channel string, payload any) error {
	if p.client == nil {
		return fmt.Errorf("redis client not configured")
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return p.client.Publish(ctx, channel, body).Err()
}
