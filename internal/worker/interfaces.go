package worker

import (
	"context"

	"peoplehub.app/api/internal/queue"
)

// Consumer abstracts the message queue for testability.
type Consumer interface {
	Read(ctx context.Context) ([]queue.Message, error)
	Ack(ctx context.Context, msg queue.Message) error
	Requeue(ctx context.Context, msg queue.Message, errMsg string) error
	SendDLQ(ctx context.Context, msg queue.Message, errMsg string) error
}

// EventProcessor applies one event using stores bound to the worker's transaction.
type EventProcessor interface {
	Process(ctx context.Context, msg queue.Message, stores StoreProvider) error
}
