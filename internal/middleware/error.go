package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrorHandler renders the last error attached with c.Error as a JSON body
// when the handler wrote no body itself. AbortWithError flushes the status
// line only, so the body check uses Size rather than Written. The status set by the
// handler is kept; without one the response is a 500. Messages of 500
// responses are not exposed.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Size() > 0 {
			return
		}

		status := c.Writer.Status()
		if status < http.StatusBadRequest {
			status = http.StatusInternalServerError
		}
		msg := c.Errors.Last().Error()
		if status == http.StatusInternalServerError {
			msg = "Internal server error"
		}
		c.JSON(status, ErrorResponse{Error: msg})
	}
}
