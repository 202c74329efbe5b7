package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Para-FR/youtube-linktree-demo/internal/handlers"
	"github.com/Para-FR/youtube-linktree-demo/internal/middleware"
)

func RegisterAuthRoutes(r gin.IRouter) {
	r.POST("/register", handlers.Register)
	r.POST("/login", handlers.Login)
	r.POST("/logout", middleware.AuthMiddleware(), handlers.Logout)
	r.GET("/check-username", handlers.CheckUsername)

	// OAuth
	r.GET("/google", handlers.GoogleLogin)
	r.GET("/google/callback", handlers.GoogleCallback)
	r.GET("/github", handlers.GithubLogin)
	r.GET("/github/callback", handlers.GithubCallback)
}
