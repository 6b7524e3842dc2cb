package handler

import (
	"github.com/gin-gonic/gin"

	"peoplehub.app/api/internal/http/dto"
	"peoplehub.app/api/internal/http/response"
	"peoplehub.app/api/internal/model"
	"peoplehub.app/api/internal/service"
)

type OrganizationHandler struct {
	orgService service.OrganizationService
}

func NewOrganizationHandler(orgService service.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{orgService: orgService}
}

func (h *OrganizationHandler) Create(c *gin.Context) {
	var req dto.CreateOrganizationRequest
	if !bindJSON(c, &req) {
		return
	}

	org, err := h.orgService.Create(c.Request.Context(), currentUser(c).ID, req.Name, req.Slug, req.Description)
	if err != nil {
		fail(c, err)
		return
	}

	resp := dto.ToOrganizationResponse(org)
	resp.Role = string(model.RoleOwner)
	response.Created(c, "organization created", resp)
}

func (h *OrganizationHandler) List(c *gin.Context) {
	memberships, err := h.orgService.ListForUser(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		fail(c, err)
		return
	}

	response.OK(c, "organizations fetched", dto.ToMembershipResponses(memberships))
}

func (h *OrganizationHandler) Get(c *gin.Context) {
	orgID, ok := pathID(c, "org_id")
	if !ok {
		return
	}

	m, err := h.orgService.Get(c.Request.Context(), currentUser(c).ID, orgID)
	if err != nil {
		fail(c, err)
		return
	}

	response.OK(c, "organization fetched", dto.ToMembershipResponse(m))
}

func (h *OrganizationHandler) Update(c *gin.Context) {
	orgID, ok := pathID(c, "org_id")
	if !ok {
		return
	}
	var req dto.UpdateOrganizationRequest
	if !bindJSON(c, &req) {
		return
	}

	org, err := h.orgService.Update(c.Request.Context(), currentUser(c).ID, orgID, req.Name, req.Description)
	if err != nil {
		fail(c, err)
		return
	}

	response.OK(c, "organization updated", dto.ToOrganizationResponse(org))
}

func (h *OrganizationHandler) Delete(c *gin.Context) {
	orgID, ok := pathID(c, "org_id")
	if !ok {
		return
	}

	if err := h.orgService.Delete(c.Request.Context(), currentUser(c).ID, orgID); err != nil {
		fail(c, err)
		return
	}

	response.OK(c, "organization deleted", nil)
}

func (h *OrganizationHandler) ListMembers(c *gin.Context) {
	orgID, ok := pathID(c, "org_id")
	if !ok {
		return
	}

	members, err := h.orgService.ListMembers(c.Request.Context(), currentUser(c).ID, orgID)
	if err != nil {
		fail(c, err)
		return
	}

	response.OK(c, "members fetched", dto.ToMemberResponses(members))
}

func (h *OrganizationHandler) AddMember(c *gin.Context) {
	orgID, ok := pathID(c, "org_id")
	if !ok {
		return
	}
	var req dto.AddMemberRequest
	if !bindJSON(c, &req) {
		return
	}

	member, err := h.orgService.AddMember(c.Request.Context(), currentUser(c).ID, orgID, service.AddMemberInput{
		Email:       req.Email,
		Role:        model.Role(req.Role),
		Department:  req.Department,
		Designation: req.Designation,
	})
	if err != nil {
		fail(c, err)
		return
	}

	response.Created(c, "member added", dto.ToMemberResponse(member))
}

func (h *OrganizationHandler) UpdateMember(c *gin.Context) {
	orgID, ok := pathID(c, "org_id")
	if !ok {
		return
	}
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	var req dto.UpdateMemberRequest
	if !bindJSON(c, &req) {
		return
	}

	in := service.UpdateMemberInput{Department: req.Department, Designation: req.Designation}
	if req.Role != nil {
		role := model.Role(*req.Role)
		in.Role = &role
	}

	member, err := h.orgService.UpdateMember(c.Request.Context(), currentUser(c).ID, orgID, userID, in)
	if err != nil {
		fail(c, err)
		return
	}

	response.OK(c, "member updated", dto.ToMemberResponse(member))
}

func (h *OrganizationHandler) RemoveMember(c *gin.Context) {
	orgID, ok := pathID(c, "org_id")
	if !ok {
		return
	}
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	if err := h.orgService.RemoveMember(c.Request.Context(), currentUser(c).ID, orgID, userID); err != nil {
		fail(c, err)
		return
	}

	response.OK(c, "member removed", nil)
}
