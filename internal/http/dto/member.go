package dto

import (
	"time"

	"peoplehub.app/api/internal/model"
)

type AddMemberRequest struct {
	Email       string  `json:"email" binding:"required,email" jsonschema:"format=email"`
	Role        string  `json:"role" binding:"required,oneof=admin manager employee" jsonschema:"enum=admin,enum=manager,enum=employee"`
	Department  *string `json:"department,omitempty" binding:"omitempty,max=100"`
	Designation *string `json:"designation,omitempty" binding:"omitempty,max=100"`
}

type UpdateMemberRequest struct {
	Role        *string `json:"role,omitempty" binding:"omitempty,oneof=admin manager employee"`
	Department  *string `json:"department,omitempty" binding:"omitempty,max=100"`
	Designation *string `json:"designation,omitempty" binding:"omitempty,max=100"`
}

type MemberResponse struct {
	UserID      int64     `json:"user_id,string"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	Department  *string   `json:"department,omitempty"`
	Designation *string   `json:"designation,omitempty"`
	JoinedAt    time.Time `json:"joined_at"`
}

func ToMemberResponse(m *model.Member) *MemberResponse {
	return &MemberResponse{
		UserID:      m.UserID,
		Name:        m.UserName,
		Email:       m.UserEmail,
		Role:        string(m.Role),
		Department:  m.Department,
		Designation: m.Designation,
		JoinedAt:    m.JoinedAt,
	}
}

func ToMemberResponses(ms []model.Member) []*MemberResponse {
	out := make([]*MemberResponse, 0, len(ms))
	for i := range ms {
		out = append(out, ToMemberResponse(&ms[i]))
	}
	return out
}
