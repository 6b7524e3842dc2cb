package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"peoplehub.app/api/common/id"
	"peoplehub.app/api/common/logger"
	"peoplehub.app/api/common/otel"
	"peoplehub.app/api/core/config"
	"peoplehub.app/api/core/db"
	"peoplehub.app/api/internal/auth"
	"peoplehub.app/api/internal/http/handler"
	"peoplehub.app/api/internal/http/middleware"
	httprouter "peoplehub.app/api/internal/http/router"
	"peoplehub.app/api/internal/queue"
	"peoplehub.app/api/internal/service"
	"peoplehub.app/api/internal/store"
)

func main() {
	fmt.Printf("%s\n", banner)
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeServer)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		// slog is not configured yet
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "peoplehub api starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)
	if err := id.Init(1); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	if err := middleware.RegisterValidators(); err != nil {
		slog.ErrorContext(ctx, "failed to register validators", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected")

	applied, err := database.Migrate(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to apply migrations", "error", err)
		os.Exit(1)
	}
	slog.InfoContext(ctx, "migrations up to date", "applied", len(applied))

	redisOpts, err := redis.ParseURL(cfg.Pipeline.RedisURL)
	if err != nil {
		slog.ErrorContext(ctx, "failed to parse redis url", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	slog.InfoContext(ctx, "redis connected", "stream", cfg.Pipeline.RedisStream)

	eventProducer := queue.NewRedisProducer(redisClient, cfg.Pipeline.RedisStream, slog.Default())
	defer eventProducer.Close()

	stores := store.NewStores(database.Conn())

	services := service.NewServices(service.ServicesConfig{
		Stores:        stores,
		TxRunner:      service.NewTxRunner(database),
		Hasher:        auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		Tokens:        auth.NewJWTIssuer(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL),
		EventProducer: eventProducer,
		Attendance:    cfg.Attendance,
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router, err := setupRouter(cfg, services, httprouter.RouterConfig{
		Limiter:     middleware.NewRedisLimiter(redisClient),
		RateWindow:  cfg.RateLimit.Window,
		RateMax:     cfg.RateLimit.Max,
		AuthRateMax: cfg.RateLimit.AuthMax,
		HealthDeps: map[string]handler.Pinger{
			"postgres": handler.PingFunc(database.Ping),
			"redis": handler.PingFunc(func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			}),
		},
		TrustedProxies: cfg.TrustedProxies,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to set up router", "error", err)
		os.Exit(1)
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

func setupRouter(cfg config.Config, services *service.Services, routes httprouter.RouterConfig) (*gin.Engine, error) {
	router := gin.New()

	// Order matters: OTel creates span → request id → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.CORS))
	router.Use(middleware.ErrorHandler(cfg.IsProduction()))

	if err := httprouter.SetupRoutes(router, services, routes); err != nil {
		return nil, err
	}
	return router, nil
}

const banner = `
██████╗ ███████╗ ██████╗ ██████╗ ██╗     ███████╗██╗  ██╗██╗   ██╗██████╗
██╔══██╗██╔════╝██╔═══██╗██╔══██╗██║     ██╔════╝██║  ██║██║   ██║██╔══██╗
██████╔╝█████╗  ██║   ██║██████╔╝██║     █████╗  ███████║██║   ██║██████╔╝
██╔═══╝ ██╔══╝  ██║   ██║██╔═══╝ ██║     ██╔══╝  ██╔══██║██║   ██║██╔══██╗
██║     ███████╗╚██████╔╝██║     ███████╗███████╗██║  ██║╚██████╔╝██████╔╝
╚═╝     ╚══════╝ ╚═════╝ ╚═╝     ╚══════╝╚══════╝╚═╝  ╚═╝ ╚═════╝ ╚═════╝
`
