package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"peoplehub.app/api/internal/http/middleware"
)

var _ = Describe("RateLimit", func() {
	var (
		router  *gin.Engine
		limiter *mockLimiter
	)

	BeforeEach(func() {
		limiter = &mockLimiter{}
		router = gin.New()
		router.Use(middleware.RateLimit(limiter, "auth", 2, time.Minute))
		router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	})

	get := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "203.0.113.9:4000"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("allows requests under the limit and reports remaining quota", func() {
		w := get()

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("X-RateLimit-Limit")).To(Equal("2"))
		Expect(w.Header().Get("X-RateLimit-Remaining")).To(Equal("1"))
		Expect(limiter.keys).To(ConsistOf("auth:203.0.113.9"))
	})

	It("returns 429 with Retry-After once the limit is exceeded", func() {
		limiter.hitFn = func(_ context.Context, _ string, _ time.Duration) (middleware.RateLimitResult, error) {
			return middleware.RateLimitResult{Count: 3, ResetIn: 1500 * time.Millisecond}, nil
		}

		w := get()

		Expect(w.Code).To(Equal(http.StatusTooManyRequests))
		Expect(w.Header().Get("Retry-After")).To(Equal("2"))
		Expect(w.Header().Get("X-RateLimit-Remaining")).To(Equal("0"))
		Expect(decode(w).Status).To(Equal("error"))
	})

	It("fails open when the limiter errors", func() {
		limiter.hitFn = func(_ context.Context, _ string, _ time.Duration) (middleware.RateLimitResult, error) {
			return middleware.RateLimitResult{}, errors.New("redis: connection refused")
		}

		Expect(get().Code).To(Equal(http.StatusOK))
	})
})
