// Package response writes the JSON envelope every endpoint returns:
//
//	{"status": "success", "message": "...", "data": {...}}
//	{"status": "error", "message": "...", "errors": {"field": "reason"}}
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

type Envelope struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Data    any               `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func OK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Envelope{Status: StatusSuccess, Message: message, Data: data})
}

func Created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, Envelope{Status: StatusSuccess, Message: message, Data: data})
}

// Error writes an error envelope and aborts the handler chain.
func Error(c *gin.Context, status int, message string, fields map[string]string) {
	c.AbortWithStatusJSON(status, Envelope{Status: StatusError, Message: message, Errors: fields})
}
