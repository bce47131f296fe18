package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the body of every failed request
type ErrorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Envelope wraps payloads that carry no success flag of their own
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
}

// JSON sends a payload as is
func JSON(c *gin.Context, code int, payload interface{}) {
	c.JSON(code, payload)
}

// Success sends data wrapped in a success envelope
func Success(c *gin.Context, code int, data interface{}) {
	c.JSON(code, Envelope{Success: true, Data: data})
}

// Error sends an error response; the first non-nil cause becomes the details
func Error(c *gin.Context, code int, message string, causes ...error) {
	body := ErrorBody{Error: message}
	for _, err := range causes {
		if err != nil {
			body.Details = err.Error()
			_ = c.Error(err)
			break
		}
	}
	c.JSON(code, body)
}

// ErrorWithDetails sends an error response with a literal details string
func ErrorWithDetails(c *gin.Context, code int, message, details string) {
	c.JSON(code, ErrorBody{Error: message, Details: details})
}

// BadRequest sends a 400 bad request response
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized sends a 401 and stops the handler chain
func Unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorBody{Error: message})
}

// NotFound sends a 404 not found response
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// InternalError sends a 500 internal server error response
func InternalError(c *gin.Context, message string, causes ...error) {
	Error(c, http.StatusInternalServerError, message, causes...)
}
