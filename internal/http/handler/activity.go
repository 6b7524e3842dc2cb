package handler

import (
	"github.com/gin-gonic/gin"

	"peoplehub.app/api/internal/http/dto"
	"peoplehub.app/api/internal/http/response"
	"peoplehub.app/api/internal/service"
)

type ActivityHandler struct {
	activityService service.ActivityService
}

func NewActivityHandler(activityService service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

func (h *ActivityHandler) List(c *gin.Context) {
	orgID, ok := pathID(c, "org_id")
	if !ok {
		return
	}
	var q dto.ActivityQuery
	if !bindQuery(c, &q) {
		return
	}

	items, err := h.activityService.List(c.Request.Context(), currentUser(c).ID, orgID, q.Before, q.Limit)
	if err != nil {
		fail(c, err)
		return
	}

	response.OK(c, "activity fetched", dto.ToActivityResponses(items))
}
