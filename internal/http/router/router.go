package router

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"peoplehub.app/api/internal/http/handler"
	"peoplehub.app/api/internal/http/middleware"
	"peoplehub.app/api/internal/service"
)

type RouterConfig struct {
	Limiter     middleware.Limiter
	RateWindow  time.Duration
	RateMax     int
	AuthRateMax int
	HealthDeps  map[string]handler.Pinger

	// TrustedProxies may set X-Forwarded-For; empty means client IP is the peer address.
	TrustedProxies []string
}

func SetupRoutes(router *gin.Engine, services *service.Services, cfg RouterConfig) error {
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return fmt.Errorf("setting trusted proxies: %w", err)
	}

	router.HandleMethodNotAllowed = true
	router.NoRoute(middleware.NotFound)
	router.NoMethod(middleware.MethodNotAllowed)

	healthHandler := handler.NewHealthHandler(cfg.HealthDeps)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	requireAuth := middleware.RequireAuth(services.Auth())

	v1 := router.Group("/api/v1")
	if cfg.Limiter != nil {
		v1.Use(middleware.RateLimit(cfg.Limiter, "api", cfg.RateMax, cfg.RateWindow))
	}
	{
		var credentialLimit []gin.HandlerFunc
		if cfg.Limiter != nil {
			credentialLimit = append(credentialLimit, middleware.RateLimit(cfg.Limiter, "auth", cfg.AuthRateMax, cfg.RateWindow))
		}
		authHandler := handler.NewAuthHandler(services.Auth())
		AuthRouter(v1.Group("/auth"), requireAuth, authHandler, credentialLimit...)

		orgHandler := handler.NewOrganizationHandler(services.Organizations())
		activityHandler := handler.NewActivityHandler(services.Activity())
		OrganizationRouter(v1.Group("/org", requireAuth), orgHandler, activityHandler)

		attendanceHandler := handler.NewAttendanceHandler(services.Attendance())
		AttendanceRouter(v1.Group("/attendance", requireAuth), attendanceHandler)

		leaveHandler := handler.NewLeaveHandler(services.Leaves())
		LeaveRouter(v1.Group("/leave", requireAuth), leaveHandler)

		MetaRouter(v1.Group("/meta"), handler.NewMetaHandler())
	}

	return nil
}

// withHandler returns a fresh chain of mws followed by h.
func withHandler(mws []gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	chain := make([]gin.HandlerFunc, 0, len(mws)+1)
	chain = append(chain, mws...)
	return append(chain, h)
}
