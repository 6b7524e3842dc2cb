package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"peoplehub.app/api/internal/http/dto"
	"peoplehub.app/api/internal/http/response"
	"peoplehub.app/api/internal/model"
	"peoplehub.app/api/internal/service"
)

type LeaveHandler struct {
	leaveService service.LeaveService
}

func NewLeaveHandler(leaveService service.LeaveService) *LeaveHandler {
	return &LeaveHandler{leaveService: leaveService}
}

func (h *LeaveHandler) Create(c *gin.Context) {
	var req dto.CreateLeaveRequest
	if !bindJSON(c, &req) {
		return
	}

	leave, err := h.leaveService.Create(c.Request.Context(), currentUser(c).ID, service.CreateLeaveInput{
		OrganizationID: req.OrganizationID,
		Type:           model.LeaveType(req.Type),
		StartDate:      *parseDate(req.StartDate),
		EndDate:        *parseDate(req.EndDate),
		Reason:         req.Reason,
	})
	if err != nil {
		fail(c, err)
		return
	}

	response.Created(c, "leave request submitted", dto.ToLeaveResponse(leave))
}

func (h *LeaveHandler) ListMine(c *gin.Context) {
	var q dto.MyLeaveQuery
	if !bindQuery(c, &q) {
		return
	}

	leaves, err := h.leaveService.ListMine(c.Request.Context(), currentUser(c).ID, q.OrganizationID, parseLeaveStatus(q.Status))
	if err != nil {
		fail(c, err)
		return
	}

	response.OK(c, "leave requests fetched", dto.ToLeaveResponses(leaves))
}

func (h *LeaveHandler) ListForOrg(c *gin.Context) {
	orgID, ok := pathID(c, "org_id")
	if !ok {
		return
	}
	var q dto.OrgLeaveQuery
	if !bindQuery(c, &q) {
		return
	}

	leaves, err := h.leaveService.ListForOrg(c.Request.Context(), currentUser(c).ID, orgID, parseLeaveStatus(q.Status), q.UserID)
	if err != nil {
		fail(c, err)
		return
	}

	response.OK(c, "leave requests fetched", dto.ToLeaveResponses(leaves))
}

func (h *LeaveHandler) Get(c *gin.Context) {
	leaveID, ok := pathID(c, "leave_id")
	if !ok {
		return
	}

	leave, err := h.leaveService.Get(c.Request.Context(), currentUser(c).ID, leaveID)
	if err != nil {
		fail(c, err)
		return
	}

	response.OK(c, "leave request fetched", dto.ToLeaveResponse(leave))
}

func (h *LeaveHandler) Approve(c *gin.Context) {
	h.review(c, "leave request approved", h.leaveService.Approve)
}

func (h *LeaveHandler) Reject(c *gin.Context) {
	h.review(c, "leave request rejected", h.leaveService.Reject)
}

func (h *LeaveHandler) Cancel(c *gin.Context) {
	h.review(c, "leave request cancelled", h.leaveService.Cancel)
}

type reviewFunc func(ctx context.Context, actorID, leaveID int64, comment *string) (*model.LeaveRequest, error)

func (h *LeaveHandler) review(c *gin.Context, message string, fn reviewFunc) {
	leaveID, ok := pathID(c, "leave_id")
	if !ok {
		return
	}
	var req dto.ReviewLeaveRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	leave, err := fn(c.Request.Context(), currentUser(c).ID, leaveID, req.Comment)
	if err != nil {
		fail(c, err)
		return
	}

	response.OK(c, message, dto.ToLeaveResponse(leave))
}
