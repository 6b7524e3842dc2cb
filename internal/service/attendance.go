package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"peoplehub.app/api/common/id"
	"peoplehub.app/api/core/config"
	"peoplehub.app/api/internal/model"
	"peoplehub.app/api/internal/queue"
	"peoplehub.app/api/internal/store"
)

const (
	defaultHistoryDays = 30
	maxRangeDays       = 366
)

type AttendanceService interface {
	CheckIn(ctx context.Context, userID, orgID int64, note *string) (*model.AttendanceRecord, error)
	CheckOut(ctx context.Context, userID, orgID int64, note *string) (*model.AttendanceRecord, error)
	ListMine(ctx context.Context, userID, orgID int64, r DateRange) ([]model.AttendanceRecord, error)
	ListForDay(ctx context.Context, actorID, orgID int64, day *time.Time, userID *int64) ([]model.AttendanceRecord, error)
	Summary(ctx context.Context, actorID, orgID int64, r DateRange) ([]model.AttendanceSummary, error)
}

// DateRange is an inclusive span of calendar days; nil ends take defaults.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

type attendanceService struct {
	orgStore        store.OrganizationStore
	memberStore     store.MemberStore
	attendanceStore store.AttendanceStore
	cfg             config.AttendanceConfig
	now             func() time.Time
	events          eventPublisher
}

func NewAttendanceService(
	orgStore store.OrganizationStore,
	memberStore store.MemberStore,
	attendanceStore store.AttendanceStore,
	cfg config.AttendanceConfig,
	producer queue.Producer,
	now func() time.Time,
) AttendanceService {
	if now == nil {
		now = time.Now
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &attendanceService{
		orgStore:        orgStore,
		memberStore:     memberStore,
		attendanceStore: attendanceStore,
		cfg:             cfg,
		now:             now,
		events:          eventPublisher{producer: producer},
	}
}

func (s *attendanceService) CheckIn(ctx context.Context, userID, orgID int64, note *string) (*model.AttendanceRecord, error) {
	if _, err := requireRole(ctx, s.orgStore, s.memberStore, orgID, userID, model.RoleEmployee); err != nil {
		return nil, err
	}

	now := s.now().In(s.cfg.Location)
	day := CalendarDay(now)

	existing, err := s.attendanceStore.GetByDay(ctx, orgID, userID, day)
	switch {
	case err == nil && existing.Status == model.AttendanceOnLeave:
		return nil, ErrOnLeave
	case err == nil:
		return nil, ErrAlreadyCheckedIn
	case !errors.Is(err, store.ErrNotFound):
		return nil, fmt.Errorf("loading attendance: %w", err)
	}

	status := model.AttendancePresent
	if s.isLate(now) {
		status = model.AttendanceLate
	}

	checkIn := now.UTC()
	rec := &model.AttendanceRecord{
		ID:             id.New(),
		OrganizationID: orgID,
		UserID:         userID,
		WorkDate:       day,
		Status:         status,
		CheckInAt:      &checkIn,
		Note:           note,
	}
	if err := s.attendanceStore.Create(ctx, rec); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, ErrAlreadyCheckedIn
		}
		return nil, fmt.Errorf("creating attendance: %w", err)
	}

	s.events.publish(ctx, queue.Event{
		Type:           queue.EventAttendanceCheckedIn,
		OrganizationID: orgID,
		ActorID:        userID,
		SubjectID:      rec.ID,
	})

	slog.InfoContext(ctx, "checked in", "organization_id", orgID, "status", rec.Status)
	return rec, nil
}

func (s *attendanceService) CheckOut(ctx context.Context, userID, orgID int64, note *string) (*model.AttendanceRecord, error) {
	if _, err := requireRole(ctx, s.orgStore, s.memberStore, orgID, userID, model.RoleEmployee); err != nil {
		return nil, err
	}

	now := s.now().In(s.cfg.Location)

	rec, err := s.attendanceStore.GetByDay(ctx, orgID, userID, CalendarDay(now))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotCheckedIn
		}
		return nil, fmt.Errorf("loading attendance: %w", err)
	}
	if rec.CheckInAt == nil {
		return nil, ErrNotCheckedIn
	}
	if rec.CheckOutAt != nil {
		return nil, ErrAlreadyCheckedOut
	}

	checkOut := now.UTC()
	minutes := int(checkOut.Sub(*rec.CheckInAt).Minutes())
	if minutes < 0 {
		minutes = 0
	}
	rec.CheckOutAt = &checkOut
	rec.WorkMinutes = &minutes
	if note != nil {
		rec.Note = note
	}

	if err := s.attendanceStore.CheckOut(ctx, rec); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrAlreadyCheckedOut
		}
		return nil, fmt.Errorf("checking out: %w", err)
	}

	s.events.publish(ctx, queue.Event{
		Type:           queue.EventAttendanceCheckedOut,
		OrganizationID: orgID,
		ActorID:        userID,
		SubjectID:      rec.ID,
	})

	slog.InfoContext(ctx, "checked out", "organization_id", orgID, "work_minutes", minutes)
	return rec, nil
}

func (s *attendanceService) ListMine(ctx context.Context, userID, orgID int64, r DateRange) ([]model.AttendanceRecord, error) {
	if _, err := requireRole(ctx, s.orgStore, s.memberStore, orgID, userID, model.RoleEmployee); err != nil {
		return nil, err
	}

	from, to, err := s.resolveRange(r)
	if err != nil {
		return nil, err
	}

	records, err := s.attendanceStore.ListByUser(ctx, orgID, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing attendance: %w", err)
	}
	return records, nil
}

func (s *attendanceService) ListForDay(ctx context.Context, actorID, orgID int64, day *time.Time, userID *int64) ([]model.AttendanceRecord, error) {
	if _, err := requireRole(ctx, s.orgStore, s.memberStore, orgID, actorID, model.RoleManager); err != nil {
		return nil, err
	}

	d := CalendarDay(s.now().In(s.cfg.Location))
	if day != nil {
		d = CalendarDay(*day)
	}

	records, err := s.attendanceStore.ListByDay(ctx, orgID, d, userID)
	if err != nil {
		return nil, fmt.Errorf("listing attendance: %w", err)
	}
	return records, nil
}

func (s *attendanceService) Summary(ctx context.Context, actorID, orgID int64, r DateRange) ([]model.AttendanceSummary, error) {
	if _, err := requireRole(ctx, s.orgStore, s.memberStore, orgID, actorID, model.RoleManager); err != nil {
		return nil, err
	}

	from, to, err := s.resolveRange(r)
	if err != nil {
		return nil, err
	}

	summary, err := s.attendanceStore.Summarize(ctx, orgID, from, to)
	if err != nil {
		return nil, fmt.Errorf("summarizing attendance: %w", err)
	}
	return summary, nil
}

func (s *attendanceService) isLate(local time.Time) bool {
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.cfg.Location)
	return local.After(midnight.Add(s.cfg.WorkdayStart + s.cfg.LateGrace))
}

func (s *attendanceService) resolveRange(r DateRange) (time.Time, time.Time, error) {
	to := CalendarDay(s.now().In(s.cfg.Location))
	if r.To != nil {
		to = CalendarDay(*r.To)
	}
	from := to.AddDate(0, 0, -(defaultHistoryDays - 1))
	if r.From != nil {
		from = CalendarDay(*r.From)
	}

	if from.After(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: from must not be after to", ErrInvalidRange)
	}
	if model.InclusiveDays(from, to) > maxRangeDays {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: at most %d days", ErrInvalidRange, maxRangeDays)
	}
	return from, to, nil
}

// CalendarDay truncates t to its date as seen in t's own location,
// represented as midnight UTC.
func CalendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
