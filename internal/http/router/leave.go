package router

import (
	"github.com/gin-gonic/gin"

	"peoplehub.app/api/internal/http/handler"
)

func LeaveRouter(rg *gin.RouterGroup, h *handler.LeaveHandler) {
	rg.POST("", h.Create)
	rg.GET("/me", h.ListMine)
	rg.GET("/org/:org_id", h.ListForOrg)
	rg.GET("/:leave_id", h.Get)
	rg.POST("/:leave_id/approve", h.Approve)
	rg.POST("/:leave_id/reject", h.Reject)
	rg.POST("/:leave_id/cancel", h.Cancel)
}
