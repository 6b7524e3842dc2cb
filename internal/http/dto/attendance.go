package dto

import (
	"time"

	"peoplehub.app/api/internal/model"
)

const DateLayout = "2006-01-02"

type AttendanceActionRequest struct {
	OrganizationID int64   `json:"organization_id,string" binding:"required"`
	Note           *string `json:"note,omitempty" binding:"omitempty,max=500"`
}

type AttendanceRangeQuery struct {
	OrganizationID int64  `form:"organization_id" binding:"required"`
	From           string `form:"from" binding:"omitempty,date"`
	To             string `form:"to" binding:"omitempty,date"`
}

type AttendanceDayQuery struct {
	Date   string `form:"date" binding:"omitempty,date"`
	UserID *int64 `form:"user_id" binding:"omitempty,min=1"`
}

type AttendanceSummaryQuery struct {
	From string `form:"from" binding:"omitempty,date"`
	To   string `form:"to" binding:"omitempty,date"`
}

type AttendanceResponse struct {
	ID             int64      `json:"id,string"`
	OrganizationID int64      `json:"organization_id,string"`
	UserID         int64      `json:"user_id,string"`
	Date           string     `json:"date"`
	Status         string     `json:"status"`
	CheckInAt      *time.Time `json:"check_in_at,omitempty"`
	CheckOutAt     *time.Time `json:"check_out_at,omitempty"`
	WorkMinutes    *int       `json:"work_minutes,omitempty"`
	Note           *string    `json:"note,omitempty"`
	LeaveID        *string    `json:"leave_id,omitempty"`
}

type AttendanceSummaryResponse struct {
	UserID       int64  `json:"user_id,string"`
	Name         string `json:"name"`
	PresentDays  int    `json:"present_days"`
	LateDays     int    `json:"late_days"`
	OnLeaveDays  int    `json:"on_leave_days"`
	TotalMinutes int    `json:"total_minutes"`
}

func ToAttendanceResponse(r *model.AttendanceRecord) *AttendanceResponse {
	return &AttendanceResponse{
		ID:             r.ID,
		OrganizationID: r.OrganizationID,
		UserID:         r.UserID,
		Date:           r.WorkDate.Format(DateLayout),
		Status:         string(r.Status),
		CheckInAt:      r.CheckInAt,
		CheckOutAt:     r.CheckOutAt,
		WorkMinutes:    r.WorkMinutes,
		Note:           r.Note,
		LeaveID:        idString(r.LeaveID),
	}
}

func ToAttendanceResponses(rs []model.AttendanceRecord) []*AttendanceResponse {
	out := make([]*AttendanceResponse, 0, len(rs))
	for i := range rs {
		out = append(out, ToAttendanceResponse(&rs[i]))
	}
	return out
}

func ToAttendanceSummaryResponses(ss []model.AttendanceSummary) []*AttendanceSummaryResponse {
	out := make([]*AttendanceSummaryResponse, 0, len(ss))
	for _, s := range ss {
		out = append(out, &AttendanceSummaryResponse{
			UserID:       s.UserID,
			Name:         s.UserName,
			PresentDays:  s.PresentDays,
			LateDays:     s.LateDays,
			OnLeaveDays:  s.OnLeaveDays,
			TotalMinutes: s.TotalMinutes,
		})
	}
	return out
}
