package router

import (
	"github.com/gin-gonic/gin"

	"peoplehub.app/api/internal/http/handler"
)

func AttendanceRouter(rg *gin.RouterGroup, h *handler.AttendanceHandler) {
	rg.POST("/check-in", h.CheckIn)
	rg.POST("/check-out", h.CheckOut)
	rg.GET("/me", h.ListMine)
	rg.GET("/org/:org_id", h.ListForOrg)
	rg.GET("/org/:org_id/summary", h.Summary)
}
