package middleware

import "github.com/gin-gonic/gin"

// UploadHeaders stops user uploads from being sniffed or run as active content.
func UploadHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Content-Security-Policy", "default-src 'none'; sandbox")
		c.Next()
	}
}
