package worker_test

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"peoplehub.app/api/internal/queue"
	"peoplehub.app/api/internal/worker"
)

var _ = Describe("Worker", func() {
	var (
		consumer  *mockConsumer
		processor *mockProcessor
		txRunner  *mockTxRunner
		w         *worker.Worker
		ctx       context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		consumer = &mockConsumer{}
		processor = &mockProcessor{}
		txRunner = &mockTxRunner{stores: newStoreProvider()}
		w = worker.New(consumer, txRunner, processor, worker.Config{MaxAttempts: 3})
	})

	Describe("ProcessMessage", func() {
		It("acks after the transaction commits", func() {
			msg := message("1-0", queue.Event{Type: queue.EventMemberAdded, Attempt: 1})

			Expect(w.ProcessMessage(ctx, msg)).To(Succeed())
			Expect(txRunner.calls).To(Equal(1))
			Expect(consumer.acked).To(ConsistOf("1-0"))
		})

		It("does not ack when processing fails", func() {
			processor.processFn = func(context.Context, queue.Message, worker.StoreProvider) error {
				return errors.New("db down")
			}

			err := w.ProcessMessage(ctx, message("1-0", queue.Event{Attempt: 1}))

			Expect(err).To(MatchError(ContainSubstring("db down")))
			Expect(consumer.acked).To(BeEmpty())
		})

		It("tolerates ack failures", func() {
			consumer.ackErr = errors.New("redis gone")

			Expect(w.ProcessMessage(ctx, message("1-0", queue.Event{Attempt: 1}))).To(Succeed())
		})
	})

	Describe("Run", func() {
		runOnce := func(msgs ...queue.Message) {
			var delivered atomic.Bool
			consumer.readFn = func(context.Context) ([]queue.Message, error) {
				if delivered.Swap(true) {
					time.Sleep(5 * time.Millisecond)
					return nil, nil
				}
				return msgs, nil
			}

			done := make(chan error, 1)
			go func() { done <- w.Run(ctx) }()
			Eventually(delivered.Load).Should(BeTrue())
			time.Sleep(20 * time.Millisecond)
			w.Stop()
			Eventually(done).Should(Receive(BeNil()))
		}

		It("requeues failed messages below the attempt limit", func() {
			processor.processFn = func(context.Context, queue.Message, worker.StoreProvider) error {
				return errors.New("boom")
			}

			runOnce(message("1-0", queue.Event{Attempt: 1}))

			Expect(consumer.requeued).To(ConsistOf("1-0"))
			Expect(consumer.dlq).To(BeEmpty())
		})

		It("dead-letters messages at the attempt limit", func() {
			processor.processFn = func(context.Context, queue.Message, worker.StoreProvider) error {
				return errors.New("boom")
			}

			runOnce(message("1-0", queue.Event{Attempt: 3}))

			Expect(consumer.dlq).To(ConsistOf("1-0"))
			Expect(consumer.requeued).To(BeEmpty())
		})

		It("recovers from panics and keeps going", func() {
			processor.processFn = func(_ context.Context, msg queue.Message, _ worker.StoreProvider) error {
				if msg.ID == "1-0" {
					panic("nil map")
				}
				return nil
			}

			runOnce(
				message("1-0", queue.Event{Attempt: 1}),
				message("2-0", queue.Event{Attempt: 1}),
			)

			Expect(consumer.requeued).To(ConsistOf("1-0"))
			Expect(consumer.acked).To(ConsistOf("2-0"))
		})
	})
})
