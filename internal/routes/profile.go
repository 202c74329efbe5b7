package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Para-FR/youtube-linktree-demo/internal/handlers"
	"github.com/Para-FR/youtube-linktree-demo/internal/middleware"
)

func RegisterProfileRoutes(r gin.IRouter) {
	profile := r.Group("/profile")
	profile.Use(middleware.AuthMiddleware())
	{
		profile.GET("", handlers.GetProfile)
		profile.PUT("", handlers.UpdateProfile)
	}

	upload := r.Group("/upload")
	upload.Use(middleware.AuthMiddleware())
	{
		upload.POST("/avatar", handlers.UploadAvatar)
	}
}
