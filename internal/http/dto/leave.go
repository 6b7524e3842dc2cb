package dto

import (
	"strconv"
	"time"

	"peoplehub.app/api/internal/model"
)

type CreateLeaveRequest struct {
	OrganizationID int64  `json:"organization_id,string" binding:"required"`
	Type           string `json:"type" binding:"required,oneof=annual sick casual unpaid" jsonschema:"enum=annual,enum=sick,enum=casual,enum=unpaid"`
	StartDate      string `json:"start_date" binding:"required,date" jsonschema:"format=date"`
	EndDate        string `json:"end_date" binding:"required,date" jsonschema:"format=date"`
	Reason         string `json:"reason" binding:"required,notblank,max=1000" jsonschema:"minLength=1,maxLength=1000"`
}

type ReviewLeaveRequest struct {
	Comment *string `json:"comment,omitempty" binding:"omitempty,max=500"`
}

type MyLeaveQuery struct {
	OrganizationID int64  `form:"organization_id" binding:"required"`
	Status         string `form:"status" binding:"omitempty,oneof=pending approved rejected cancelled"`
}

type OrgLeaveQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=pending approved rejected cancelled"`
	UserID *int64 `form:"user_id" binding:"omitempty,min=1"`
}

type LeaveResponse struct {
	ID             int64      `json:"id,string"`
	OrganizationID int64      `json:"organization_id,string"`
	UserID         int64      `json:"user_id,string"`
	Type           string     `json:"type"`
	StartDate      string     `json:"start_date"`
	EndDate        string     `json:"end_date"`
	Days           int        `json:"days"`
	Reason         string     `json:"reason"`
	Status         string     `json:"status"`
	ReviewerID     *string    `json:"reviewer_id,omitempty"`
	ReviewComment  *string    `json:"review_comment,omitempty"`
	ReviewedAt     *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func ToLeaveResponse(l *model.LeaveRequest) *LeaveResponse {
	return &LeaveResponse{
		ID:             l.ID,
		OrganizationID: l.OrganizationID,
		UserID:         l.UserID,
		Type:           string(l.Type),
		StartDate:      l.StartDate.Format(DateLayout),
		EndDate:        l.EndDate.Format(DateLayout),
		Days:           l.Days,
		Reason:         l.Reason,
		Status:         string(l.Status),
		ReviewerID:     idString(l.ReviewerID),
		ReviewComment:  l.ReviewComment,
		ReviewedAt:     l.ReviewedAt,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
}

func ToLeaveResponses(ls []model.LeaveRequest) []*LeaveResponse {
	out := make([]*LeaveResponse, 0, len(ls))
	for i := range ls {
		out = append(out, ToLeaveResponse(&ls[i]))
	}
	return out
}

func idString(id *int64) *string {
	if id == nil {
		return nil
	}
	s := strconv.FormatInt(*id, 10)
	return &s
}
