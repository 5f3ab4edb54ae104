package routes

import (
	"net/http"
	"time"

	"blog-app/blog"
	"blog-app/config"
	"blog-app/handlers/ping"
	"blog-app/middleware"
	"blog-app/sessions"
	"blog-app/views"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps is everything the router hands out to handlers.
type Deps struct {
	Config   config.Config
	Blog     *blog.Service
	Sessions *sessions.Manager
	Database ping.Pinger
}

func SetupRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.RequestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.Config.CorsAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: !allowsAnyOrigin(deps.Config.CorsAllowedOrigins),
		MaxAge:           12 * time.Hour,
	}))
	r.SetHTMLTemplate(views.Templates())
	r.Use(deps.Sessions.Middleware())

	if deps.Config.MediaBackend == config.MediaLocal {
		uploads := r.Group("/uploads", middleware.UploadHeaders())
		uploads.Static("/", deps.Config.UploadDir)
	}

	r.GET("/ping", ping.New(deps.Database).HandlePing)
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/posts")
	})

	AuthRoutes(r, deps)
	PostsRoutes(r, deps)

	r.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, "error", gin.H{"Title": "Not Found", "Message": "Page not found."})
	})

	return r
}

// Handler wraps the router with method override so HTML forms can send DELETE.
func Handler(r *gin.Engine) http.Handler {
	return middleware.MethodOverride(r)
}

func allowsAnyOrigin(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
