package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MessageBody is the {message} shape shared by confirmations and errors.
type MessageBody struct {
	Message string `json:"message"`
}

// Success writes data as the JSON body, with no envelope.
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// Message writes {"message": msg}.
func Message(c *gin.Context, statusCode int, msg string) {
	c.JSON(statusCode, MessageBody{Message: msg})
}

// Common error responses
func BadRequest(c *gin.Context, message string) {
	Message(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	Message(c, http.StatusNotFound, message)
}

func InternalServerError(c *gin.Context, message string) {
	Message(c, http.StatusInternalServerError, message)
}
