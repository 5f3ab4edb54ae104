package auth

import (
	"context"
	"net/http"

	"blog-app/blog"
	"blog-app/models"
	"blog-app/sessions"
	"blog-app/utils"

	"github.com/gin-gonic/gin"
)

// Accounts is the part of the blog service dealing with credentials.
type Accounts interface {
	Signup(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.User, error)
}

type Handler struct {
	accounts Accounts
	sessions *sessions.Manager
}

func New(accounts Accounts, manager *sessions.Manager) *Handler {
	return &Handler{accounts: accounts, sessions: manager}
}

func (h *Handler) ShowSignup(c *gin.Context) {
	c.HTML(http.StatusOK, "signup", gin.H{
		"Title":  "Sign up",
		"Errors": h.sessions.Flashes(c, "error"),
	})
}

// Signup creates the account and logs the new user straight in.
func (h *Handler) Signup(c *gin.Context) {
	user, err := h.accounts.Signup(c.Request.Context(), c.PostForm("username"), c.PostForm("password"))
	if err != nil {
		h.rejectOrFail(c, err, "/signup", "Error creating user")
		return
	}

	if err := h.sessions.LogIn(c, user.ID); err != nil {
		utils.RenderInternalError(c, err, "Error opening session after signup")
		return
	}

	utils.LogSuccessWithUser(user.ID, "User signed up")
	c.Redirect(http.StatusSeeOther, "/posts")
}

func (h *Handler) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login", gin.H{
		"Title":  "Log in",
		"Errors": h.sessions.Flashes(c, "error"),
	})
}

func (h *Handler) Login(c *gin.Context) {
	user, err := h.accounts.Login(c.Request.Context(), c.PostForm("username"), c.PostForm("password"))
	if err != nil {
		h.rejectOrFail(c, err, "/login", "Error during login")
		return
	}

	if err := h.sessions.LogIn(c, user.ID); err != nil {
		utils.RenderInternalError(c, err, "Error opening session")
		return
	}

	utils.LogSuccessWithUser(user.ID, "User logged in")
	c.Redirect(http.StatusSeeOther, "/posts")
}

func (h *Handler) Logout(c *gin.Context) {
	userID := c.GetString("user_id")
	if err := h.sessions.LogOut(c); err != nil {
		utils.LogErrorWithUser(userID, err, "Error destroying session")
	}
	c.Redirect(http.StatusSeeOther, "/login")
}

// rejectOrFail flashes user-facing failures and redirects back to the form; anything
// else is an internal error.
func (h *Handler) rejectOrFail(c *gin.Context, err error, back, logMessage string) {
	msg, ok := blog.UserMessage(err)
	if !ok {
		utils.RenderInternalError(c, err, logMessage)
		return
	}
	if err := h.sessions.AddFlash(c, "error", msg); err != nil {
		utils.LogError(err, "Error storing flash message")
	}
	c.Redirect(http.StatusSeeOther, back)
}
