package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Para-FR/youtube-linktree-demo/internal/handlers"
	"github.com/Para-FR/youtube-linktree-demo/internal/middleware"
)

func RegisterLinkRoutes(r gin.IRouter) {
	links := r.Group("/links")
	{
		// Public click tracking. Deliberately unauthenticated: the opaque
		// link id is the only guard. Keep this the single anonymous write
		// path on the API.
		links.POST("/:id/click", handlers.TrackClick)

		protected := links.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("", handlers.ListLinks)
			protected.POST("", handlers.CreateLink)
			// Static path must be registered alongside the :id routes;
			// gin resolves /links/reorder before the param route.
			protected.PUT("/reorder", handlers.ReorderLinks)
			protected.PUT("/:id", handlers.UpdateLink)
			protected.DELETE("/:id", handlers.DeleteLink)
		}
	}
}
