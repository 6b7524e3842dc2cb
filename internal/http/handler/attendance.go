package handler

import (
	"github.com/gin-gonic/gin"

	"peoplehub.app/api/internal/http/dto"
	"peoplehub.app/api/internal/http/response"
	"peoplehub.app/api/internal/service"
)

type AttendanceHandler struct {
	attendanceService service.AttendanceService
}

func NewAttendanceHandler(attendanceService service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	var req dto.AttendanceActionRequest
	if !bindJSON(c, &req) {
		return
	}

	rec, err := h.attendanceService.CheckIn(c.Request.Context(), currentUser(c).ID, req.OrganizationID, req.Note)
	if err != nil {
		fail(c, err)
		return
	}

	response.Created(c, "checked in", dto.ToAttendanceResponse(rec))
}

func (h *AttendanceHandler) CheckOut(c *gin.Context) {
	var req dto.AttendanceActionRequest
	if !bindJSON(c, &req) {
		return
	}

	rec, err := h.attendanceService.CheckOut(c.Request.Context(), currentUser(c).ID, req.OrganizationID, req.Note)
	if err != nil {
		fail(c, err)
		return
	}

	response.OK(c, "checked out", dto.ToAttendanceResponse(rec))
}

func (h *AttendanceHandler) ListMine(c *gin.Context) {
	var q dto.AttendanceRangeQuery
	if !bindQuery(c, &q) {
		return
	}

	records, err := h.attendanceService.ListMine(c.Request.Context(), currentUser(c).ID, q.OrganizationID, service.DateRange{
		From: parseDate(q.From),
		To:   parseDate(q.To),
	})
	if err != nil {
		fail(c, err)
		return
	}

	response.OK(c, "attendance fetched", dto.ToAttendanceResponses(records))
}

func (h *AttendanceHandler) ListForOrg(c *gin.Context) {
	orgID, ok := pathID(c, "org_id")
	if !ok {
		return
	}
	var q dto.AttendanceDayQuery
	if !bindQuery(c, &q) {
		return
	}

	records, err := h.attendanceService.ListForDay(c.Request.Context(), currentUser(c).ID, orgID, parseDate(q.Date), q.UserID)
	if err != nil {
		fail(c, err)
		return
	}

	response.OK(c, "attendance fetched", dto.ToAttendanceResponses(records))
}

func (h *AttendanceHandler) Summary(c *gin.Context) {
	orgID, ok := pathID(c, "org_id")
	if !ok {
		return
	}
	var q dto.AttendanceSummaryQuery
	if !bindQuery(c, &q) {
		return
	}

	summary, err := h.attendanceService.Summary(c.Request.Context(), currentUser(c).ID, orgID, service.DateRange{
		From: parseDate(q.From),
		To:   parseDate(q.To),
	})
	if err != nil {
		fail(c, err)
		return
	}

	response.OK(c, "attendance summary fetched", dto.ToAttendanceSummaryResponses(summary))
}
