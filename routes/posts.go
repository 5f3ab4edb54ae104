package routes

import (
	"blog-app/handlers/posts"
	"blog-app/handlers/posts/comment"
	"blog-app/handlers/posts/likes"
	"blog-app/middleware"

	"github.com/gin-gonic/gin"
)

func PostsRoutes(r *gin.Engine, deps Deps) {
	postsHandler := posts.New(deps.Blog, deps.Sessions)
	commentHandler := comment.New(deps.Blog, deps.Sessions)
	likesHandler := likes.New(deps.Blog)

	postsRoutes := r.Group("/posts")
	postsRoutes.Use(middleware.RequireAuth(deps.Sessions, deps.Blog))
	{
		postsRoutes.GET("", postsHandler.GetAllPosts)
		postsRoutes.GET("/new", postsHandler.NewPost)
		postsRoutes.POST("", postsHandler.CreatePost)
		postsRoutes.DELETE("/:id", postsHandler.DeletePost)

		postsRoutes.POST("/:id/like", likesHandler.ToggleLike)
		postsRoutes.POST("/:id/comments", commentHandler.CreateComment)
	}
}
