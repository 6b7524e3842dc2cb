package store

import (
	"context"
	"errors"
	"time"

	"peoplehub.app/api/internal/model"
)

var (
	// ErrNotFound is returned when a requested entity does not exist
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a write violates a uniqueness constraint
	ErrConflict = errors.New("conflict")
)

// UserStore defines the contract for user data access
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

// OrganizationStore defines the contract for organization data access
type OrganizationStore interface {
	GetByID(ctx context.Context, id int64) (*model.Organization, error)
	GetBySlug(ctx context.Context, slug string) (*model.Organization, error)
	Create(ctx context.Context, org *model.Organization) error
	Update(ctx context.Context, org *model.Organization) error
	Delete(ctx context.Context, id int64) error // soft delete
	ListByMember(ctx context.Context, userID int64) ([]model.Membership, error)
}

// MemberStore defines the contract for organization membership data access
type MemberStore interface {
	Get(ctx context.Context, orgID, userID int64) (*model.Member, error)
	Add(ctx context.Context, member *model.Member) error
	Update(ctx context.Context, member *model.Member) error
	Remove(ctx context.Context, orgID, userID int64) error
	List(ctx context.Context, orgID int64) ([]model.Member, error)
}

// AttendanceStore defines the contract for attendance data access
type AttendanceStore interface {
	GetByDay(ctx context.Context, orgID, userID int64, day time.Time) (*model.AttendanceRecord, error)
	Create(ctx context.Context, rec *model.AttendanceRecord) error
	CheckOut(ctx context.Context, rec *model.AttendanceRecord) error
	ListByUser(ctx context.Context, orgID, userID int64, from, to time.Time) ([]model.AttendanceRecord, error)
	ListByDay(ctx context.Context, orgID int64, day time.Time, userID *int64) ([]model.AttendanceRecord, error)
	Summarize(ctx context.Context, orgID int64, from, to time.Time) ([]model.AttendanceSummary, error)
	// MarkOnLeave inserts on_leave records for days with no record yet and
	// returns how many were inserted.
	MarkOnLeave(ctx context.Context, orgID, userID, leaveID int64, days []time.Time, newID func() int64) (int, error)
	// ClearLeave removes the on_leave records created for leaveID.
	ClearLeave(ctx context.Context, leaveID int64) (int, error)
}

// LeaveFilter narrows leave listings; nil fields are ignored.
type LeaveFilter struct {
	OrganizationID int64
	UserID         *int64
	Status         *model.LeaveStatus
}

// LeaveStore defines the contract for leave request data access
type LeaveStore interface {
	GetByID(ctx context.Context, id int64) (*model.LeaveRequest, error)
	// GetByIDForUpdate also row-locks the request until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id int64) (*model.LeaveRequest, error)
	Create(ctx context.Context, leave *model.LeaveRequest) error
	// UpdateStatus moves a request from one of the from statuses to leave.Status.
	// It returns ErrNotFound when the row is missing or no longer in an allowed status.
	UpdateStatus(ctx context.Context, leave *model.LeaveRequest, from ...model.LeaveStatus) error
	HasOverlap(ctx context.Context, orgID, userID int64, start, end time.Time) (bool, error)
	List(ctx context.Context, filter LeaveFilter) ([]model.LeaveRequest, error)
}

// ActivityStore defines the contract for the organization audit trail
type ActivityStore interface {
	// Append is idempotent on StreamID; it reports whether a row was written.
	Append(ctx context.Context, a *model.Activity) (bool, error)
	ListByOrganization(ctx context.Context, orgID int64, before *int64, limit int32) ([]model.Activity, error)
}
