package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Para-FR/youtube-linktree-demo/internal/handlers"
)

func RegisterPublicRoutes(r gin.IRouter) {
	// Anonymous read-only projection of a user's page
	r.GET("/public/:username", handlers.GetPublicPage)
}
