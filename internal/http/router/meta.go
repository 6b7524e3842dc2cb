package router

import (
	"github.com/gin-gonic/gin"

	"peoplehub.app/api/internal/http/handler"
)

func MetaRouter(rg *gin.RouterGroup, h *handler.MetaHandler) {
	rg.GET("/schemas", h.ListSchemas)
	rg.GET("/schemas/:name", h.GetSchema)
}
