package middleware

import (
	"fmt"
	"net/http"

	"blog-app/utils"

	"github.com/gin-gonic/gin"
)

// Recovery turns a panic into the generic error page instead of a dropped connection.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, rec any) {
		utils.LogErrorWithUser(c.GetString("user_id"), fmt.Errorf("%v", rec),
			"Recovered from panic on "+c.Request.Method+" "+c.Request.URL.Path)
		c.HTML(http.StatusInternalServerError, "error", gin.H{
			"Title":   "Error",
			"Message": "Something went wrong.",
		})
		c.Abort()
	})
}
