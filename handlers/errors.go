package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the structured payload every error path answers with,
// whatever the kind: a category label, a human-readable message, the HTTP
// status repeated in the body, and a timestamp.
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Status    int       `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

func newErrorResponse(errorLabel, message string, status int) ErrorResponse {
	return ErrorResponse{
		Error:     errorLabel,
		Message:   message,
		Status:    status,
		Timestamp: time.Now(),
	}
}

func respondError(c *gin.Context, errorLabel, message string, status int) {
	c.JSON(status, newErrorResponse(errorLabel, message, status))
}
