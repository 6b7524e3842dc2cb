package service

import (
	"context"
	"log/slog"

	"peoplehub.app/api/common/logger"
	"peoplehub.app/api/internal/queue"
)

// eventPublisher emits domain events after the owning write has committed.
// Publishing is best effort: the write already succeeded, so a broker
// failure is logged and swallowed.
type eventPublisher struct {
	producer queue.Producer
}

func (p eventPublisher) publish(ctx context.Context, evt queue.Event) {
	if p.producer == nil {
		return
	}
	if evt.TraceID == "" {
		evt.TraceID = logger.TraceIDFromContext(ctx)
	}
	if err := p.producer.Publish(ctx, evt); err != nil {
		slog.ErrorContext(ctx, "failed to publish event",
			"error", err,
			"event_type", evt.Type,
			"organization_id", evt.OrganizationID,
			"subject_id", evt.SubjectID)
	}
}
