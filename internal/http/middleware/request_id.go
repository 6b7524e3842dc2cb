package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"peoplehub.app/api/common/logger"
)

const (
	RequestIDHeader = "X-Request-ID"
	maxRequestIDLen = 128
)

// RequestID propagates an inbound X-Request-ID or mints one, echoes it on
// the response and adds it to the request's log fields.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(RequestIDHeader)
		if rid == "" || len(rid) > maxRequestIDLen {
			rid = uuid.NewString()
		}

		c.Header(RequestIDHeader, rid)
		c.Set("request_id", rid)

		ctx := logger.WithLogFields(c.Request.Context(), logger.LogFields{RequestID: &rid})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
