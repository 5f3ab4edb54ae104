package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the JSON envelope of the few machine-facing endpoints.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func SendSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func SendError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Error:   message,
	})
}

// RenderError shows the error page. data may carry "User" so the navigation stays signed in.
func RenderError(c *gin.Context, statusCode int, message string, data gin.H) {
	page := gin.H{
		"Title":   http.StatusText(statusCode),
		"Message": message,
	}
	for k, v := range data {
		page[k] = v
	}
	c.HTML(statusCode, "error", page)
}

// RenderInternalError logs err against the current user and shows the generic 500 page.
func RenderInternalError(c *gin.Context, err error, message string) {
	LogErrorWithUser(c.GetString("user_id"), err, message)
	RenderError(c, http.StatusInternalServerError, "Something went wrong.", nil)
}
