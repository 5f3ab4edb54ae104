package posts

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"

	"blog-app/blog"
	"blog-app/middleware"
	"blog-app/models"
	"blog-app/sessions"
	"blog-app/utils"

	"github.com/gin-gonic/gin"
)

type PostService interface {
	ListPosts(ctx context.Context) ([]models.Post, error)
	CreatePost(ctx context.Context, userID string, in models.PostCreate, image *multipart.FileHeader) (*models.Post, error)
	DeletePost(ctx context.Context, postID, userID string) error
}

type Handler struct {
	posts    PostService
	sessions *sessions.Manager
}

func New(posts PostService, manager *sessions.Manager) *Handler {
	return &Handler{posts: posts, sessions: manager}
}

// GetAllPosts renders every post, newest first.
func (h *Handler) GetAllPosts(c *gin.Context) {
	posts, err := h.posts.ListPosts(c.Request.Context())
	if err != nil {
		utils.RenderInternalError(c, err, "Error retrieving posts")
		return
	}

	c.HTML(http.StatusOK, "posts", gin.H{
		"Title":  "Posts",
		"User":   middleware.CurrentUser(c),
		"Errors": h.sessions.Flashes(c, "error"),
		"Posts":  posts,
	})
}

func (h *Handler) NewPost(c *gin.Context) {
	c.HTML(http.StatusOK, "new_post", gin.H{
		"Title":  "New post",
		"User":   middleware.CurrentUser(c),
		"Errors": h.sessions.Flashes(c, "error"),
	})
}

// CreatePost reads the multipart form; the "image" file is optional.
func (h *Handler) CreatePost(c *gin.Context) {
	userID := c.GetString("user_id")

	var in models.PostCreate
	if err := c.ShouldBind(&in); err != nil {
		h.flashAndRedirect(c, "Invalid post form.", "/posts/new")
		return
	}

	file, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		file = nil
	} else if err != nil {
		utils.LogErrorWithUser(userID, err, "Error reading uploaded image")
		h.flashAndRedirect(c, "Could not read the uploaded image.", "/posts/new")
		return
	}

	post, err := h.posts.CreatePost(c.Request.Context(), userID, in, file)
	if err != nil {
		if msg, ok := blog.UserMessage(err); ok {
			h.flashAndRedirect(c, msg, "/posts/new")
			return
		}
		utils.RenderInternalError(c, err, "Error creating post")
		return
	}

	utils.LogSuccessWithUser(userID, "Post created: "+post.ID)
	c.Redirect(http.StatusSeeOther, "/posts")
}

// DeletePost removes a post owned by the caller.
func (h *Handler) DeletePost(c *gin.Context) {
	userID := c.GetString("user_id")
	postID := c.Param("id")

	err := h.posts.DeletePost(c.Request.Context(), postID, userID)
	switch {
	case errors.Is(err, blog.ErrNotFound):
		utils.RenderError(c, http.StatusNotFound, "Post not found.", gin.H{"User": middleware.CurrentUser(c)})
		return
	case errors.Is(err, blog.ErrForbidden):
		utils.LogErrorWithUser(userID, err, "Refused to delete post "+postID)
		utils.RenderError(c, http.StatusForbidden, "You can only delete your own posts.", gin.H{"User": middleware.CurrentUser(c)})
		return
	case err != nil:
		utils.RenderInternalError(c, err, "Error deleting post")
		return
	}

	utils.LogSuccessWithUser(userID, "Post deleted: "+postID)
	c.Redirect(http.StatusSeeOther, "/posts")
}

func (h *Handler) flashAndRedirect(c *gin.Context, msg, location string) {
	if err := h.sessions.AddFlash(c, "error", msg); err != nil {
		utils.LogError(err, "Error storing flash message")
	}
	c.Redirect(http.StatusSeeOther, location)
}
