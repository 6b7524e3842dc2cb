package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"peoplehub.app/api/common/logger"
	"peoplehub.app/api/internal/queue"
)

type ReclaimerConfig struct {
	Stream    string
	Group     string
	Consumer  string
	MinIdle   time.Duration
	Interval  time.Duration
	BatchSize int64
}

// Reclaimer periodically takes over messages that another consumer read
// but never acked, e.g. because it crashed mid-transaction.
type Reclaimer struct {
	client    redis.Cmdable
	cfg       ReclaimerConfig
	consumer  Consumer
	processor queue.MessageProcessor

	stopCh    chan struct{}
	stoppedCh chan struct{}
}

func NewReclaimer(client redis.Cmdable, cfg ReclaimerConfig, consumer Consumer, processor queue.MessageProcessor) *Reclaimer {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	return &Reclaimer{
		client:    client,
		cfg:       cfg,
		consumer:  consumer,
		processor: processor,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Run blocks until Stop is called or ctx is done.
func (r *Reclaimer) Run(ctx context.Context) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component: "hrm.worker.reclaimer",
	})

	defer close(r.stoppedCh)

	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	slog.InfoContext(ctx, "reclaimer started",
		"interval", r.cfg.Interval,
		"min_idle", r.cfg.MinIdle,
		"stream", r.cfg.Stream,
		"group", r.cfg.Group)

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stopCh:
			slog.InfoContext(ctx, "reclaimer stopping")
			return
		case <-ticker.C:
			if _, err := r.ReclaimOnce(ctx); err != nil {
				slog.ErrorContext(ctx, "reclaim cycle error", "error", err)
			}
		}
	}
}

func (r *Reclaimer) Stop() {
	close(r.stopCh)
	<-r.stoppedCh
}

// ReclaimOnce claims one batch of stale messages and processes them,
// returning how many were claimed.
func (r *Reclaimer) ReclaimOnce(ctx context.Context) (int, error) {
	messages, _, err := r.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
		Stream:   r.cfg.Stream,
		Group:    r.cfg.Group,
		Consumer: r.cfg.Consumer,
		MinIdle:  r.cfg.MinIdle,
		Start:    "0-0",
		Count:    r.cfg.BatchSize,
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("xautoclaim: %w", err)
	}

	if len(messages) == 0 {
		return 0, nil
	}

	slog.InfoContext(ctx, "claimed stale messages", "count", len(messages))

	for _, m := range messages {
		if err := r.reclaimMessage(ctx, m); err != nil {
			slog.ErrorContext(ctx, "failed to reprocess reclaimed message",
				"error", err,
				"message_id", m.ID)
		}
	}

	return len(messages), nil
}

func (r *Reclaimer) reclaimMessage(ctx context.Context, raw redis.XMessage) error {
	msgID := raw.ID
	ctx = logger.WithLogFields(ctx, logger.LogFields{MessageID: &msgID})

	parsed, err := queue.ParseMessage(raw)
	if err != nil {
		slog.ErrorContext(ctx, "failed to parse reclaimed message, acknowledging to prevent loop",
			"error", err)
		_ = r.consumer.Ack(ctx, queue.Message{ID: raw.ID, Raw: raw})
		return nil
	}

	eventType := string(parsed.Event.Type)
	ctx = logger.WithLogFields(ctx, logger.LogFields{EventType: &eventType})

	start := time.Now()
	if err := r.processor(ctx, parsed); err != nil {
		return fmt.Errorf("processing reclaimed message: %w", err)
	}

	slog.InfoContext(ctx, "reclaimed message processed",
		"duration_ms", time.Since(start).Milliseconds())
	return nil
}
