package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"peoplehub.app/api/common/id"
	"peoplehub.app/api/internal/model"
	"peoplehub.app/api/internal/queue"
	"peoplehub.app/api/internal/store"
)

type LeaveService interface {
	Create(ctx context.Context, userID int64, in CreateLeaveInput) (*model.LeaveRequest, error)
	ListMine(ctx context.Context, userID, orgID int64, status *model.LeaveStatus) ([]model.LeaveRequest, error)
	ListForOrg(ctx context.Context, actorID, orgID int64, status *model.LeaveStatus, userID *int64) ([]model.LeaveRequest, error)
	Get(ctx context.Context, actorID, leaveID int64) (*model.LeaveRequest, error)
	Approve(ctx context.Context, actorID, leaveID int64, comment *string) (*model.LeaveRequest, error)
	Reject(ctx context.Context, actorID, leaveID int64, comment *string) (*model.LeaveRequest, error)
	Cancel(ctx context.Context, actorID, leaveID int64, comment *string) (*model.LeaveRequest, error)
}

type CreateLeaveInput struct {
	OrganizationID int64
	Type           model.LeaveType
	StartDate      time.Time
	EndDate        time.Time
	Reason         string
}

type leaveService struct {
	txRunner    TxRunner
	orgStore    store.OrganizationStore
	memberStore store.MemberStore
	leaveStore  store.LeaveStore
	now         func() time.Time
	events      eventPublisher
}

func NewLeaveService(
	txRunner TxRunner,
	orgStore store.OrganizationStore,
	memberStore store.MemberStore,
	leaveStore store.LeaveStore,
	producer queue.Producer,
	now func() time.Time,
) LeaveService {
	if now == nil {
		now = time.Now
	}
	return &leaveService{
		txRunner:    txRunner,
		orgStore:    orgStore,
		memberStore: memberStore,
		leaveStore:  leaveStore,
		now:         now,
		events:      eventPublisher{producer: producer},
	}
}

func (s *leaveService) Create(ctx context.Context, userID int64, in CreateLeaveInput) (*model.LeaveRequest, error) {
	if !in.Type.Valid() {
		return nil, ErrInvalidLeaveType
	}
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return nil, ErrBlankReason
	}
	start, end := CalendarDay(in.StartDate), CalendarDay(in.EndDate)
	if start.After(end) {
		return nil, fmt.Errorf("%w: start_date must not be after end_date", ErrInvalidRange)
	}
	if model.InclusiveDays(start, end) > maxRangeDays {
		return nil, fmt.Errorf("%w: at most %d days", ErrInvalidRange, maxRangeDays)
	}

	var leave *model.LeaveRequest
	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		if _, err := requireRole(ctx, stores.Organizations(), stores.Members(), in.OrganizationID, userID, model.RoleEmployee); err != nil {
			return err
		}

		overlap, err := stores.Leaves().HasOverlap(ctx, in.OrganizationID, userID, start, end)
		if err != nil {
			return fmt.Errorf("checking overlap: %w", err)
		}
		if overlap {
			return ErrLeaveOverlap
		}

		leave = &model.LeaveRequest{
			ID:             id.New(),
			OrganizationID: in.OrganizationID,
			UserID:         userID,
			Type:           in.Type,
			StartDate:      start,
			EndDate:        end,
			Days:           model.InclusiveDays(start, end),
			Reason:         reason,
			Status:         model.LeavePending,
		}
		if err := stores.Leaves().Create(ctx, leave); err != nil {
			// leave_requests_no_overlap catches requests racing past HasOverlap.
			if errors.Is(err, store.ErrConflict) {
				return ErrLeaveOverlap
			}
			return fmt.Errorf("creating leave request: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.events.publish(ctx, queue.Event{
		Type:           queue.EventLeaveRequested,
		OrganizationID: leave.OrganizationID,
		ActorID:        userID,
		SubjectID:      leave.ID,
	})

	slog.InfoContext(ctx, "leave requested",
		"leave_id", leave.ID,
		"organization_id", leave.OrganizationID,
		"days", leave.Days)
	return leave, nil
}

func (s *leaveService) ListMine(ctx context.Context, userID, orgID int64, status *model.LeaveStatus) ([]model.LeaveRequest, error) {
	if _, err := requireRole(ctx, s.orgStore, s.memberStore, orgID, userID, model.RoleEmployee); err != nil {
		return nil, err
	}

	leaves, err := s.leaveStore.List(ctx, store.LeaveFilter{
		OrganizationID: orgID,
		UserID:         &userID,
		Status:         status,
	})
	if err != nil {
		return nil, fmt.Errorf("listing leave requests: %w", err)
	}
	return leaves, nil
}

func (s *leaveService) ListForOrg(ctx context.Context, actorID, orgID int64, status *model.LeaveStatus, userID *int64) ([]model.LeaveRequest, error) {
	if _, err := requireRole(ctx, s.orgStore, s.memberStore, orgID, actorID, model.RoleManager); err != nil {
		return nil, err
	}

	leaves, err := s.leaveStore.List(ctx, store.LeaveFilter{
		OrganizationID: orgID,
		UserID:         userID,
		Status:         status,
	})
	if err != nil {
		return nil, fmt.Errorf("listing leave requests: %w", err)
	}
	return leaves, nil
}

func (s *leaveService) Get(ctx context.Context, actorID, leaveID int64) (*model.LeaveRequest, error) {
	leave, err := s.load(ctx, leaveID)
	if err != nil {
		return nil, err
	}
	if leave.UserID == actorID {
		return leave, nil
	}

	if _, err := requireRole(ctx, s.orgStore, s.memberStore, leave.OrganizationID, actorID, model.RoleManager); err != nil {
		// Other employees cannot tell whether the request exists.
		return nil, ErrLeaveNotFound
	}
	return leave, nil
}

func (s *leaveService) Approve(ctx context.Context, actorID, leaveID int64, comment *string) (*model.LeaveRequest, error) {
	return s.review(ctx, actorID, leaveID, model.LeaveApproved, comment)
}

func (s *leaveService) Reject(ctx context.Context, actorID, leaveID int64, comment *string) (*model.LeaveRequest, error) {
	return s.review(ctx, actorID, leaveID, model.LeaveRejected, comment)
}

func (s *leaveService) review(ctx context.Context, actorID, leaveID int64, next model.LeaveStatus, comment *string) (*model.LeaveRequest, error) {
	leave, err := s.loadAsReviewer(ctx, actorID, leaveID)
	if err != nil {
		return nil, err
	}
	if leave.UserID == actorID {
		return nil, ErrSelfReview
	}
	if leave.Status != model.LeavePending {
		return nil, ErrInvalidTransition
	}

	if err := s.transition(ctx, leave, next, actorID, comment, model.LeavePending); err != nil {
		return nil, err
	}
	return leave, nil
}

// Cancel lets the requester withdraw a pending request, and lets a reviewer
// cancel a pending or approved one.
func (s *leaveService) Cancel(ctx context.Context, actorID, leaveID int64, comment *string) (*model.LeaveRequest, error) {
	leave, err := s.load(ctx, leaveID)
	if err != nil {
		return nil, err
	}

	if leave.UserID == actorID && leave.Status == model.LeavePending {
		if err := s.transition(ctx, leave, model.LeaveCancelled, 0, comment, model.LeavePending); err != nil {
			return nil, err
		}
		return leave, nil
	}

	member, err := requireRole(ctx, s.orgStore, s.memberStore, leave.OrganizationID, actorID, model.RoleManager)
	if err != nil {
		if errors.Is(err, ErrOrganizationNotFound) {
			return nil, ErrLeaveNotFound
		}
		if leave.UserID == actorID {
			// The requester may only withdraw while pending.
			return nil, ErrInvalidTransition
		}
		return nil, err
	}
	if !leave.Status.CanTransition(model.LeaveCancelled) {
		return nil, ErrInvalidTransition
	}
	if leave.UserID == actorID {
		return nil, ErrSelfReview
	}

	if err := s.transition(ctx, leave, model.LeaveCancelled, member.UserID, comment, model.LeavePending, model.LeaveApproved); err != nil {
		return nil, err
	}
	return leave, nil
}

func (s *leaveService) transition(ctx context.Context, leave *model.LeaveRequest, next model.LeaveStatus, reviewerID int64, comment *string, from ...model.LeaveStatus) error {
	leave.Status = next
	if reviewerID != 0 {
		now := s.now().UTC()
		leave.ReviewerID = &reviewerID
		leave.ReviewedAt = &now
	}
	if comment != nil {
		leave.ReviewComment = comment
	}

	if err := s.leaveStore.UpdateStatus(ctx, leave, from...); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Someone else moved it first.
			return ErrInvalidTransition
		}
		return fmt.Errorf("updating leave status: %w", err)
	}

	actorID := reviewerID
	if actorID == 0 {
		actorID = leave.UserID
	}

	var evtType queue.EventType
	switch next {
	case model.LeaveApproved:
		evtType = queue.EventLeaveApproved
	case model.LeaveRejected:
		evtType = queue.EventLeaveRejected
	case model.LeaveCancelled:
		evtType = queue.EventLeaveCancelled
	}
	s.events.publish(ctx, queue.Event{
		Type:           evtType,
		OrganizationID: leave.OrganizationID,
		ActorID:        actorID,
		SubjectID:      leave.ID,
	})

	slog.InfoContext(ctx, "leave status changed",
		"leave_id", leave.ID,
		"status", next,
		"actor_id", actorID)
	return nil
}

func (s *leaveService) load(ctx context.Context, leaveID int64) (*model.LeaveRequest, error) {
	leave, err := s.leaveStore.GetByID(ctx, leaveID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrLeaveNotFound
		}
		return nil, fmt.Errorf("loading leave request: %w", err)
	}
	return leave, nil
}

func (s *leaveService) loadAsReviewer(ctx context.Context, actorID, leaveID int64) (*model.LeaveRequest, error) {
	leave, err := s.load(ctx, leaveID)
	if err != nil {
		return nil, err
	}

	if _, err := requireRole(ctx, s.orgStore, s.memberStore, leave.OrganizationID, actorID, model.RoleManager); err != nil {
		if errors.Is(err, ErrOrganizationNotFound) {
			return nil, ErrLeaveNotFound
		}
		return nil, err
	}
	return leave, nil
}
