package likes

import (
	"context"
	"errors"
	"net/http"

	"blog-app/blog"
	"blog-app/middleware"
	"blog-app/utils"

	"github.com/gin-gonic/gin"
)

type Toggler interface {
	ToggleLike(ctx context.Context, postID, userID string) (bool, error)
}

type Handler struct {
	likes Toggler
}

func New(likes Toggler) *Handler {
	return &Handler{likes: likes}
}

// ToggleLike adds the caller to the post's likes, or removes them if already there.
func (h *Handler) ToggleLike(c *gin.Context) {
	userID := c.GetString("user_id")
	postID := c.Param("id")

	liked, err := h.likes.ToggleLike(c.Request.Context(), postID, userID)
	if errors.Is(err, blog.ErrNotFound) {
		utils.RenderError(c, http.StatusNotFound, "Post not found.", gin.H{"User": middleware.CurrentUser(c)})
		return
	} else if err != nil {
		utils.RenderInternalError(c, err, "Error toggling like")
		return
	}

	if liked {
		utils.LogSuccessWithUser(userID, "Like added on post "+postID)
	} else {
		utils.LogSuccessWithUser(userID, "Like removed on post "+postID)
	}
	c.Redirect(http.StatusSeeOther, "/posts")
}
