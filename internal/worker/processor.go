package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"peoplehub.app/api/internal/model"
	"peoplehub.app/api/internal/queue"
	"peoplehub.app/api/internal/store"
)

// Processor records every event in the activity log and keeps on_leave
// attendance rows in step with approved leave.
type Processor struct {
	newID func() int64
}

func NewProcessor(newID func() int64) *Processor {
	return &Processor{newID: newID}
}

func (p *Processor) Process(ctx context.Context, msg queue.Message, sp StoreProvider) error {
	evt := msg.Event

	var leave *model.LeaveRequest
	if isLeaveEvent(evt.Type) {
		// The lock orders this transaction against a concurrent status change,
		// so a cancellation cannot slip in between the status check and MarkOnLeave.
		l, err := sp.Leaves().GetByIDForUpdate(ctx, evt.SubjectID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("loading leave %d: %w", evt.SubjectID, err)
		}
		leave = l
	}

	payload, err := activityPayload(evt, leave)
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	written, err := sp.Activity().Append(ctx, &model.Activity{
		ID:             p.newID(),
		OrganizationID: evt.OrganizationID,
		ActorID:        evt.ActorID,
		EventType:      string(evt.Type),
		SubjectID:      evt.SubjectID,
		StreamID:       msg.DedupKey(),
		Payload:        payload,
	})
	if err != nil {
		return fmt.Errorf("appending activity: %w", err)
	}
	if !written {
		slog.InfoContext(ctx, "event already recorded, skipping")
		return nil
	}

	switch evt.Type {
	case queue.EventLeaveApproved:
		if leave == nil {
			slog.WarnContext(ctx, "approved leave no longer exists", "leave_id", evt.SubjectID)
			return nil
		}
		if leave.Status != model.LeaveApproved {
			// Cancelled before the worker caught up.
			return nil
		}
		n, err := sp.Attendance().MarkOnLeave(ctx, leave.OrganizationID, leave.UserID, leave.ID, leave.Dates(), p.newID)
		if err != nil {
			return fmt.Errorf("marking leave days: %w", err)
		}
		slog.InfoContext(ctx, "leave days marked", "leave_id", leave.ID, "days", n)

	case queue.EventLeaveCancelled:
		n, err := sp.Attendance().ClearLeave(ctx, evt.SubjectID)
		if err != nil {
			return fmt.Errorf("clearing leave days: %w", err)
		}
		slog.InfoContext(ctx, "leave days cleared", "leave_id", evt.SubjectID, "days", n)
	}

	return nil
}

func isLeaveEvent(t queue.EventType) bool {
	switch t {
	case queue.EventLeaveRequested, queue.EventLeaveApproved, queue.EventLeaveRejected, queue.EventLeaveCancelled:
		return true
	}
	return false
}

type leavePayload struct {
	Type      model.LeaveType   `json:"type"`
	Status    model.LeaveStatus `json:"status"`
	UserID    int64             `json:"user_id,string"`
	StartDate string            `json:"start_date"`
	EndDate   string            `json:"end_date"`
	Days      int               `json:"days"`
}

type eventPayload struct {
	TraceID string        `json:"trace_id,omitempty"`
	Attempt int           `json:"attempt"`
	Leave   *leavePayload `json:"leave,omitempty"`
}

func activityPayload(evt queue.Event, leave *model.LeaveRequest) (json.RawMessage, error) {
	p := eventPayload{TraceID: evt.TraceID, Attempt: evt.Attempt}
	if leave != nil {
		p.Leave = &leavePayload{
			Type:      leave.Type,
			Status:    leave.Status,
			UserID:    leave.UserID,
			StartDate: leave.StartDate.Format("2006-01-02"),
			EndDate:   leave.EndDate.Format("2006-01-02"),
			Days:      leave.Days,
		}
	}
	return json.Marshal(p)
}
