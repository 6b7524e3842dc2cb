package router

import (
	"github.com/gin-gonic/gin"

	"peoplehub.app/api/internal/http/handler"
)

// AuthRouter mounts the auth endpoints. credentialLimit only guards register and login.
func AuthRouter(rg *gin.RouterGroup, requireAuth gin.HandlerFunc, h *handler.AuthHandler, credentialLimit ...gin.HandlerFunc) {
	rg.POST("/register", withHandler(credentialLimit, h.Register)...)
	rg.POST("/login", withHandler(credentialLimit, h.Login)...)

	me := rg.Group("/me", requireAuth)
	{
		me.GET("", h.Me)
		me.PATCH("/password", h.ChangePassword)
	}
}
