package middleware

import (
	"context"
	"errors"
	"net/http"

	"blog-app/blog"
	"blog-app/models"
	"blog-app/sessions"
	"blog-app/utils"

	"github.com/gin-gonic/gin"
)

// UserLoader resolves the user id kept in a session.
type UserLoader interface {
	UserByID(ctx context.Context, id string) (*models.User, error)
}

// CurrentUser returns the user set by RequireAuth, or nil.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get("user")
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// RequireAuth lets the request through only when the session belongs to an existing
// user; everyone else is sent to the login page.
func RequireAuth(manager *sessions.Manager, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := manager.Current(c)
		if !session.Authenticated() {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		user, err := users.UserByID(c.Request.Context(), session.UserID)
		if err != nil {
			if !errors.Is(err, blog.ErrNotFound) {
				utils.LogErrorWithUser(session.UserID, err, "Error loading session user")
			}
			if err := manager.LogOut(c); err != nil {
				utils.LogErrorWithUser(session.UserID, err, "Error destroying session")
			}
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("user", user)
		c.Next()
	}
}
