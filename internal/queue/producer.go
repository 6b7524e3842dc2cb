package queue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

type Producer interface {
	Publish(ctx context.Context, evt Event) error
	Close() error
}

type redisProducer struct {
	client *redis.Client
	stream string
	logger *slog.Logger
}

func NewRedisProducer(client *redis.Client, stream string, logger *slog.Logger) Producer {
	if logger == nil {
		logger = slog.Default()
	}
	return &redisProducer{
		client: client,
		stream: stream,
		logger: logger,
	}
}

func (p *redisProducer) Publish(ctx context.Context, evt Event) error {
	if !evt.Type.Valid() {
		return fmt.Errorf("publish: unknown event type %q", evt.Type)
	}
	if evt.Attempt <= 0 {
		evt.Attempt = 1
	}

	if err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: eventValues(evt),
	}).Err(); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}

	p.logger.InfoContext(ctx, "event published",
		"event_type", evt.Type,
		"organization_id", evt.OrganizationID,
		"subject_id", evt.SubjectID)
	return nil
}

func (p *redisProducer) Close() error {
	return p.client.Close()
}

func eventValues(evt Event) map[string]any {
	values := map[string]any{
		"event_type":      string(evt.Type),
		"organization_id": evt.OrganizationID,
		"actor_id":        evt.ActorID,
		"subject_id":      evt.SubjectID,
		"attempt":         evt.Attempt,
	}
	if evt.TraceID != "" {
		values["trace_id"] = evt.TraceID
	}
	return values
}
