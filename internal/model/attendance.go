package model

import "time"

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceOnLeave AttendanceStatus = "on_leave"
)

type AttendanceRecord struct {
	ID             int64            `json:"id"`
	OrganizationID int64            `json:"organization_id"`
	UserID         int64            `json:"user_id"`
	WorkDate       time.Time        `json:"work_date"`
	Status         AttendanceStatus `json:"status"`
	CheckInAt      *time.Time       `json:"check_in_at,omitempty"`
	CheckOutAt     *time.Time       `json:"check_out_at,omitempty"`
	WorkMinutes    *int             `json:"work_minutes,omitempty"`
	Note           *string          `json:"note,omitempty"`
	LeaveID        *int64           `json:"leave_id,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

func (r *AttendanceRecord) IsOpen() bool {
	return r.CheckInAt != nil && r.CheckOutAt == nil
}

// AttendanceSummary aggregates one member's records over a date range.
type AttendanceSummary struct {
	UserID       int64  `json:"user_id"`
	UserName     string `json:"user_name"`
	PresentDays  int    `json:"present_days"`
	LateDays     int    `json:"late_days"`
	OnLeaveDays  int    `json:"on_leave_days"`
	TotalMinutes int    `json:"total_minutes"`
}
