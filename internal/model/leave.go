package model

import "time"

type LeaveType string

const (
	LeaveAnnual LeaveType = "annual"
	LeaveSick   LeaveType = "sick"
	LeaveCasual LeaveType = "casual"
	LeaveUnpaid LeaveType = "unpaid"
)

func (t LeaveType) Valid() bool {
	switch t {
	case LeaveAnnual, LeaveSick, LeaveCasual, LeaveUnpaid:
		return true
	}
	return false
}

type LeaveStatus string

const (
	LeavePending   LeaveStatus = "pending"
	LeaveApproved  LeaveStatus = "approved"
	LeaveRejected  LeaveStatus = "rejected"
	LeaveCancelled LeaveStatus = "cancelled"
)

type LeaveRequest struct {
	ID             int64       `json:"id"`
	OrganizationID int64       `json:"organization_id"`
	UserID         int64       `json:"user_id"`
	Type           LeaveType   `json:"type"`
	StartDate      time.Time   `json:"start_date"`
	EndDate        time.Time   `json:"end_date"`
	Days           int         `json:"days"`
	Reason         string      `json:"reason"`
	Status         LeaveStatus `json:"status"`
	ReviewerID     *int64      `json:"reviewer_id,omitempty"`
	ReviewComment  *string     `json:"review_comment,omitempty"`
	ReviewedAt     *time.Time  `json:"reviewed_at,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

func (s LeaveStatus) Valid() bool {
	switch s {
	case LeavePending, LeaveApproved, LeaveRejected, LeaveCancelled:
		return true
	}
	return false
}

// CanTransition reports whether status may move to next.
// Requester cancellation of approved leave is checked by the service.
func (s LeaveStatus) CanTransition(next LeaveStatus) bool {
	switch s {
	case LeavePending:
		return next == LeaveApproved || next == LeaveRejected || next == LeaveCancelled
	case LeaveApproved:
		return next == LeaveCancelled
	default:
		return false
	}
}

// Dates returns every calendar day covered by the request, inclusive.
func (l *LeaveRequest) Dates() []time.Time {
	var out []time.Time
	for d := l.StartDate; !d.After(l.EndDate); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

// InclusiveDays counts calendar days from start to end, both included.
func InclusiveDays(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours()/24) + 1
}
