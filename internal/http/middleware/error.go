package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"peoplehub.app/api/internal/apperr"
	"peoplehub.app/api/internal/http/response"
)

// ErrorHandler turns the last error a handler attached with c.Error into the
// error envelope. *apperr.Error values keep their status and message; bind
// errors become 400s; everything else is an unexpected 500 whose detail is
// only shown outside production.
func ErrorHandler(isProduction bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		ctx := c.Request.Context()
		last := c.Errors.Last()
		err := last.Err

		if appErr, ok := apperr.As(err); ok {
			if appErr.Status >= http.StatusInternalServerError {
				slog.ErrorContext(ctx, "request failed", "error", err, "path", c.Request.URL.Path)
			}
			response.Error(c, appErr.Status, appErr.Message, nil)
			return
		}

		if last.IsType(gin.ErrorTypeBind) {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				response.Error(c, http.StatusBadRequest, "validation failed", FieldErrors(verrs))
				return
			}
			response.Error(c, http.StatusBadRequest, "invalid request body", nil)
			return
		}

		slog.ErrorContext(ctx, "unhandled error",
			"error", err,
			"method", c.Request.Method,
			"path", c.Request.URL.Path)

		var detail map[string]string
		if !isProduction {
			detail = map[string]string{"detail": err.Error()}
		}
		response.Error(c, http.StatusInternalServerError, "internal server error", detail)
	}
}

// NotFound and MethodNotAllowed give unknown routes the same envelope.
func NotFound(c *gin.Context) {
	response.Error(c, http.StatusNotFound, "route not found", nil)
}

func MethodNotAllowed(c *gin.Context) {
	response.Error(c, http.StatusMethodNotAllowed, "method not allowed", nil)
}
