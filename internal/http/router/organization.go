package router

import (
	"github.com/gin-gonic/gin"

	"peoplehub.app/api/internal/http/handler"
)

// OrganizationRouter expects rg to be authenticated; role checks happen in the services.
func OrganizationRouter(rg *gin.RouterGroup, h *handler.OrganizationHandler, activity *handler.ActivityHandler) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:org_id", h.Get)
	rg.PATCH("/:org_id", h.Update)
	rg.DELETE("/:org_id", h.Delete)

	members := rg.Group("/:org_id/members")
	{
		members.GET("", h.ListMembers)
		members.POST("", h.AddMember)
		members.PATCH("/:user_id", h.UpdateMember)
		members.DELETE("/:user_id", h.RemoveMember)
	}

	rg.GET("/:org_id/activity", activity.List)
}
