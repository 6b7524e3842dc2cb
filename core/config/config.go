package config

import (
	"errors"
	"fmt"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"peoplehub.app/api/core/db"
)

type Config struct {
	OTel       OTelConfig
	Auth       AuthConfig
	CORS       CORSConfig
	RateLimit  RateLimitConfig
	Pipeline   PipelineConfig
	Attendance AttendanceConfig
	Env        string
	Port       string
	DB         db.Config

	// TrustedProxies lists the proxy IPs or CIDRs allowed to set X-Forwarded-For.
	TrustedProxies []string
}

type OTelConfig struct {
	Endpoint       string
	Headers        string
	ServiceName    string
	ServiceVersion string
	Environment    string
	SampleRatio    float64
}

type AuthConfig struct {
	JWTSecret  string
	JWTIssuer  string
	TokenTTL   time.Duration
	BcryptCost int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type RateLimitConfig struct {
	Window  time.Duration
	Max     int
	AuthMax int
}

type PipelineConfig struct {
	RedisURL        string
	RedisStream     string
	RedisGroup      string
	RedisDLQStream  string
	RedisConsumer   string
	MaxAttempts     int
	ReclaimMinIdle  time.Duration
	ReclaimInterval time.Duration
}

// AttendanceConfig controls how check-ins map onto calendar days.
type AttendanceConfig struct {
	Location     *time.Location
	WorkdayStart time.Duration // offset from local midnight
	LateGrace    time.Duration
}

type ServiceType string

const (
	ServiceTypeServer ServiceType = "server"
	ServiceTypeWorker ServiceType = "worker"
	ServiceTypeCLI    ServiceType = "cli"
)

const minProductionSecretLen = 32

// Load loads configuration from environment variables.
// In development, it loads from service-specific .env files first
// (.env.server, .env.worker, .env.cli) and falls back to .env.
//
// Every invalid or missing value is reported in a single error.
func Load(serviceType ServiceType) (Config, error) {
	if getEnv("HRM_ENV", "development") == "development" {
		envFile := fmt.Sprintf(".env.%s", serviceType)
		if err := godotenv.Load(envFile); err != nil {
			_ = godotenv.Load(".env")
		}
	}

	p := &parser{}

	dsn := getEnv("DATABASE_URL", "")
	if dsn == "" {
		dsn = getEnv("DB_STRING", "")
	}

	cfg := Config{
		Env:            getEnv("HRM_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		TrustedProxies: splitList(getEnv("TRUSTED_PROXIES", "")),
		DB: db.Config{
			DSN:      dsn,
			MaxConns: p.int32("DB_MAX_CONNS", 10),
			MinConns: p.int32("DB_MIN_CONNS", 2),
		},
		Auth: AuthConfig{
			JWTSecret:  getEnv("JWT_SECRET", ""),
			JWTIssuer:  getEnv("JWT_ISSUER", "peoplehub"),
			TokenTTL:   p.duration("JWT_EXPIRES_IN", 24*time.Hour),
			BcryptCost: p.int("BCRYPT_COST", 12),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ORIGIN", "http://localhost:5173")),
		},
		RateLimit: RateLimitConfig{
			Window:  p.duration("RATE_LIMIT_WINDOW", 15*time.Minute),
			Max:     p.int("RATE_LIMIT_MAX", 100),
			AuthMax: p.int("AUTH_RATE_LIMIT_MAX", 10),
		},
		Pipeline: PipelineConfig{
			RedisURL:        getEnv("REDIS_URL", "redis://localhost:6379/0"),
			RedisStream:     getEnv("REDIS_STREAM", "hrm_events"),
			RedisGroup:      getEnv("REDIS_CONSUMER_GROUP", "hrm_group"),
			RedisDLQStream:  getEnv("REDIS_DLQ_STREAM", "hrm_events_dlq"),
			RedisConsumer:   getEnv("REDIS_CONSUMER_NAME", hostnameOr("hrm-worker")),
			MaxAttempts:     p.int("WORKER_MAX_ATTEMPTS", 5),
			ReclaimMinIdle:  p.duration("WORKER_RECLAIM_MIN_IDLE", 5*time.Minute),
			ReclaimInterval: p.duration("WORKER_RECLAIM_INTERVAL", time.Minute),
		},
		Attendance: AttendanceConfig{
			Location:     p.location("TIMEZONE", "UTC"),
			WorkdayStart: p.clock("WORKDAY_START", "09:00"),
			LateGrace:    p.duration("LATE_GRACE", 15*time.Minute),
		},
		OTel: OTelConfig{
			Endpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:        getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""),
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "peoplehub-"+string(serviceType)),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "dev"),
			Environment:    getEnv("HRM_ENV", "development"),
			SampleRatio:    p.float("OTEL_TRACES_SAMPLE_RATIO", 1),
		},
	}

	cfg.validate(p, serviceType)

	if err := errors.Join(p.errs...); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c Config) validate(p *parser, serviceType ServiceType) {
	switch c.Env {
	case "development", "production", "test":
	default:
		p.fail("HRM_ENV must be one of development, production, test (got %q)", c.Env)
	}

	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		p.fail("PORT must be a number between 1 and 65535 (got %q)", c.Port)
	}

	for _, proxy := range c.TrustedProxies {
		if _, err := netip.ParsePrefix(proxy); err == nil {
			continue
		}
		if _, err := netip.ParseAddr(proxy); err != nil {
			p.fail("TRUSTED_PROXIES entries must be IPs or CIDRs (got %q)", proxy)
		}
	}

	if c.DB.DSN == "" {
		p.fail("DATABASE_URL (or DB_STRING) is required")
	}

	// The worker never signs or verifies tokens.
	if serviceType != ServiceTypeWorker {
		if c.Auth.JWTSecret == "" {
			p.fail("JWT_SECRET is required")
		} else if c.IsProduction() && len(c.Auth.JWTSecret) < minProductionSecretLen {
			p.fail("JWT_SECRET must be at least %d bytes in production", minProductionSecretLen)
		}
	}
	if c.Auth.TokenTTL <= 0 {
		p.fail("JWT_EXPIRES_IN must be positive")
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		p.fail("BCRYPT_COST must be between 4 and 31 (got %d)", c.Auth.BcryptCost)
	}

	if len(c.CORS.AllowedOrigins) == 0 {
		p.fail("CORS_ORIGIN must list at least one origin")
	}
	if c.IsProduction() && c.CORS.AllowsAny() {
		p.fail("CORS_ORIGIN cannot be * in production")
	}

	if c.RateLimit.Window <= 0 {
		p.fail("RATE_LIMIT_WINDOW must be positive")
	}
	if c.RateLimit.Max <= 0 || c.RateLimit.AuthMax <= 0 {
		p.fail("RATE_LIMIT_MAX and AUTH_RATE_LIMIT_MAX must be positive")
	}

	if c.Pipeline.RedisURL == "" {
		p.fail("REDIS_URL is required")
	}
	if c.Pipeline.MaxAttempts < 1 {
		p.fail("WORKER_MAX_ATTEMPTS must be at least 1")
	}
	if c.Pipeline.ReclaimMinIdle <= 0 || c.Pipeline.ReclaimInterval <= 0 {
		p.fail("WORKER_RECLAIM_MIN_IDLE and WORKER_RECLAIM_INTERVAL must be positive")
	}

	if c.OTel.SampleRatio < 0 || c.OTel.SampleRatio > 1 {
		p.fail("OTEL_TRACES_SAMPLE_RATIO must be between 0 and 1 (got %g)", c.OTel.SampleRatio)
	}
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c OTelConfig) Enabled() bool {
	return c.Endpoint != ""
}

func (c CORSConfig) AllowsAny() bool {
	for _, o := range c.AllowedOrigins {
		if o == "*" {
			return true
		}
	}
	return false
}

// parser accumulates parse failures so Load can report all of them at once.
type parser struct {
	errs []error
}

func (p *parser) fail(format string, args ...any) {
	p.errs = append(p.errs, fmt.Errorf(format, args...))
}

func (p *parser) int(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		p.fail("%s must be an integer (got %q)", key, value)
		return fallback
	}
	return i
}

func (p *parser) int32(key string, fallback int32) int32 {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	i, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		p.fail("%s must be an integer (got %q)", key, value)
		return fallback
	}
	return int32(i)
}

func (p *parser) float(key string, fallback float64) float64 {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		p.fail("%s must be a number (got %q)", key, value)
		return fallback
	}
	return f
}

func (p *parser) duration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		p.fail("%s must be a duration like 15m or 24h (got %q)", key, value)
		return fallback
	}
	return d
}

func (p *parser) location(key, fallback string) *time.Location {
	name := getEnv(key, fallback)
	loc, err := time.LoadLocation(name)
	if err != nil {
		p.fail("%s must be an IANA time zone (got %q)", key, name)
		return time.UTC
	}
	return loc
}

// clock parses HH:MM into an offset from midnight.
func (p *parser) clock(key, fallback string) time.Duration {
	value := getEnv(key, fallback)
	t, err := time.Parse("15:04", value)
	if err != nil {
		p.fail("%s must be HH:MM (got %q)", key, value)
		return 9 * time.Hour
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func hostnameOr(fallback string) string {
	if h, err := os.Hostname(); err == nil && h != "" {
		return h
	}
	return fallback
}
