package worker_test

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"peoplehub.app/api/internal/model"
	"peoplehub.app/api/internal/queue"
	"peoplehub.app/api/internal/store"
	"peoplehub.app/api/internal/worker"
)

type mockConsumer struct {
	readFn   func(ctx context.Context) ([]queue.Message, error)
	acked    []string
	requeued []string
	dlq      []string
	ackErr   error
}

func (m *mockConsumer) Read(ctx context.Context) ([]queue.Message, error) {
	if m.readFn != nil {
		return m.readFn(ctx)
	}
	return nil, nil
}

func (m *mockConsumer) Ack(_ context.Context, msg queue.Message) error {
	m.acked = append(m.acked, msg.ID)
	return m.ackErr
}

func (m *mockConsumer) Requeue(_ context.Context, msg queue.Message, _ string) error {
	m.requeued = append(m.requeued, msg.ID)
	return nil
}

func (m *mockConsumer) SendDLQ(_ context.Context, msg queue.Message, _ string) error {
	m.dlq = append(m.dlq, msg.ID)
	return nil
}

type mockProcessor struct {
	processFn func(ctx context.Context, msg queue.Message, stores worker.StoreProvider) error
}

func (m *mockProcessor) Process(ctx context.Context, msg queue.Message, stores worker.StoreProvider) error {
	if m.processFn != nil {
		return m.processFn(ctx, msg, stores)
	}
	return nil
}

type mockLeaveStore struct {
	store.LeaveStore
	leaves map[int64]*model.LeaveRequest
	locked []int64
}

func (m *mockLeaveStore) GetByIDForUpdate(_ context.Context, id int64) (*model.LeaveRequest, error) {
	m.locked = append(m.locked, id)
	if l, ok := m.leaves[id]; ok {
		return l, nil
	}
	return nil, store.ErrNotFound
}

type markCall struct {
	orgID, userID, leaveID int64
	days                   []time.Time
}

type mockAttendanceStore struct {
	store.AttendanceStore
	marked  []markCall
	cleared []int64
	markErr error
}

func (m *mockAttendanceStore) MarkOnLeave(_ context.Context, orgID, userID, leaveID int64, days []time.Time, _ func() int64) (int, error) {
	if m.markErr != nil {
		return 0, m.markErr
	}
	m.marked = append(m.marked, markCall{orgID: orgID, userID: userID, leaveID: leaveID, days: days})
	return len(days), nil
}

func (m *mockAttendanceStore) ClearLeave(_ context.Context, leaveID int64) (int, error) {
	m.cleared = append(m.cleared, leaveID)
	return 1, nil
}

type mockActivityStore struct {
	store.ActivityStore
	seen     map[string]bool
	appended []model.Activity
}

func (m *mockActivityStore) Append(_ context.Context, a *model.Activity) (bool, error) {
	if m.seen == nil {
		m.seen = map[string]bool{}
	}
	if m.seen[a.StreamID] {
		return false, nil
	}
	m.seen[a.StreamID] = true
	m.appended = append(m.appended, *a)
	return true, nil
}

type mockStoreProvider struct {
	leaves     *mockLeaveStore
	attendance *mockAttendanceStore
	activity   *mockActivityStore
}

func newStoreProvider() *mockStoreProvider {
	return &mockStoreProvider{
		leaves:     &mockLeaveStore{leaves: map[int64]*model.LeaveRequest{}},
		attendance: &mockAttendanceStore{},
		activity:   &mockActivityStore{},
	}
}

func (m *mockStoreProvider) Leaves() store.LeaveStore { return m.leaves }
func (m *mockStoreProvider) Attendance() store.AttendanceStore { return m.attendance }
func (m *mockStoreProvider) Activity() store.ActivityStore { return m.activity }

type mockTxRunner struct {
	stores worker.StoreProvider
	calls  int
}

func (m *mockTxRunner) WithTx(_ context.Context, fn func(stores worker.StoreProvider) error) error {
	m.calls++
	return fn(m.stores)
}

// fakeRedis answers XAUTOCLAIM; every other command panics on the nil embed.
type fakeRedis struct {
	redis.Cmdable
	claimed []redis.XMessage
	args    *redis.XAutoClaimArgs
}

func (f *fakeRedis) XAutoClaim(ctx context.Context, a *redis.XAutoClaimArgs) *redis.XAutoClaimCmd {
	f.args = a
	cmd := redis.NewXAutoClaimCmd(ctx)
	cmd.SetVal(f.claimed, "0-0")
	f.claimed = nil
	return cmd
}

func message(id string, evt queue.Event) queue.Message {
	return queue.Message{ID: id, Event: evt}
}
