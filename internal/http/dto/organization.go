package dto

import (
	"time"

	"peoplehub.app/api/internal/model"
)

type CreateOrganizationRequest struct {
	Name        string  `json:"name" binding:"required,notblank,max=255"`
	Slug        *string `json:"slug,omitempty" binding:"omitempty,min=1,max=60"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=1000"`
}

type UpdateOrganizationRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,notblank,max=255"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=1000"`
}

type OrganizationResponse struct {
	ID          int64     `json:"id,string"`
	OwnerID     int64     `json:"owner_id,string"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description,omitempty"`
	Role        string    `json:"role,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToOrganizationResponse(org *model.Organization) *OrganizationResponse {
	return &OrganizationResponse{
		ID:          org.ID,
		OwnerID:     org.OwnerID,
		Name:        org.Name,
		Slug:        org.Slug,
		Description: org.Description,
		CreatedAt:   org.CreatedAt,
		UpdatedAt:   org.UpdatedAt,
	}
}

// ToMembershipResponse renders an organization together with the caller's role.
func ToMembershipResponse(m *model.Membership) *OrganizationResponse {
	resp := ToOrganizationResponse(&m.Organization)
	resp.Role = string(m.Role)
	return resp
}

func ToMembershipResponses(ms []model.Membership) []*OrganizationResponse {
	out := make([]*OrganizationResponse, 0, len(ms))
	for i := range ms {
		out = append(out, ToMembershipResponse(&ms[i]))
	}
	return out
}
