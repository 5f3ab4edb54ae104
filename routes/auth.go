package routes

import (
	"blog-app/handlers/auth"

	"github.com/gin-gonic/gin"
)

func AuthRoutes(r *gin.Engine, deps Deps) {
	h := auth.New(deps.Blog, deps.Sessions)

	r.GET("/signup", h.ShowSignup)
	r.POST("/signup", h.Signup)
	r.GET("/login", h.ShowLogin)
	r.POST("/login", h.Login)
	r.GET("/logout", h.Logout)
}
