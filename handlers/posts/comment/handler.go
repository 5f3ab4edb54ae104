package comment

import (
	"context"
	"errors"
	"net/http"

	"blog-app/blog"
	"blog-app/middleware"
	"blog-app/models"
	"blog-app/sessions"
	"blog-app/utils"

	"github.com/gin-gonic/gin"
)

type Commenter interface {
	AddComment(ctx context.Context, postID, userID, content string) (*models.Comment, error)
}

type Handler struct {
	comments Commenter
	sessions *sessions.Manager
}

func New(comments Commenter, manager *sessions.Manager) *Handler {
	return &Handler{comments: comments, sessions: manager}
}

// CreateComment appends a comment to the post named in the path.
func (h *Handler) CreateComment(c *gin.Context) {
	userID := c.GetString("user_id")
	postID := c.Param("id")

	comment, err := h.comments.AddComment(c.Request.Context(), postID, userID, c.PostForm("content"))
	if errors.Is(err, blog.ErrNotFound) {
		utils.RenderError(c, http.StatusNotFound, "Post not found.", gin.H{"User": middleware.CurrentUser(c)})
		return
	} else if msg, ok := blog.UserMessage(err); ok {
		if err := h.sessions.AddFlash(c, "error", msg); err != nil {
			utils.LogError(err, "Error storing flash message")
		}
		c.Redirect(http.StatusSeeOther, "/posts")
		return
	} else if err != nil {
		utils.RenderInternalError(c, err, "Failed to save comment")
		return
	}

	utils.LogSuccessWithUser(userID, "Comment "+comment.ID+" added to post "+postID)
	c.Redirect(http.StatusSeeOther, "/posts")
}
