package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Para-FR/youtube-linktree-demo/internal/database"
	"github.com/Para-FR/youtube-linktree-demo/internal/services"
	"github.com/Para-FR/youtube-linktree-demo/pkg/logger"
)

type CreateLinkInput struct {
	Title string `json:"title" binding:"required"`
	URL   string `json:"url" binding:"required"`
	Icon  string `json:"icon"`
}

type UpdateLinkInput struct {
	Title  *string `json:"title"`
	URL    *string `json:"url"`
	Active *bool   `json:"active"`
	Icon   *string `json:"icon"`
	Order  *int    `json:"order"`
}

type ReorderInput struct {
	Updates []services.OrderUpdate `json:"updates"`
}

// invalidatePublicPage drops the cached public projection for the owner so
// the next anonymous view reflects the mutation.
func invalidatePublicPage(userID string) {
	if err := database.CacheInvalidate("public_page:" + userID); err != nil {
		logger.Warn().Err(err).Str("user_id", userID).Msg("Failed to invalidate public page cache")
	}
}

// linkErrorStatus maps service errors to HTTP statuses.
func linkErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrLinkNotFound):
		return http.StatusNotFound, "Link not found"
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTitleTooLong),
		errors.Is(err, services.ErrURLRequired):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// ListLinks handles GET /api/links
func ListLinks(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	links, err := services.ListLinks(userID.(string))
	if err != nil {
		logger.Error().Err(err).Msg("Failed to fetch links")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch links"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"links": links})
}

// CreateLink handles POST /api/links
func CreateLink(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input CreateLinkInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title and URL are required"})
		return
	}

	link, err := services.CreateLink(userID.(string), input.Title, input.URL, input.Icon)
	if err != nil {
		status, msg := linkErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error().Err(err).Str("user_id", userID.(string)).Msg("Failed to create link")
		}
		c.JSON(status, gin.H{"error": msg})
		return
	}

	invalidatePublicPage(userID.(string))
	c.JSON(http.StatusCreated, gin.H{"link": link})
}

// UpdateLink handles PUT /api/links/:id
func UpdateLink(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input UpdateLinkInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	link, err := services.UpdateLink(c.Param("id"), userID.(string), services.LinkPatch{
		Title:  input.Title,
		URL:    input.URL,
		Active: input.Active,
		Icon:   input.Icon,
		Order:  input.Order,
	})
	if err != nil {
		status, msg := linkErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error().Err(err).Str("link_id", c.Param("id")).Msg("Failed to update link")
		}
		c.JSON(status, gin.H{"error": msg})
		return
	}

	invalidatePublicPage(userID.(string))
	c.JSON(http.StatusOK, gin.H{"link": link})
}

// DeleteLink handles DELETE /api/links/:id
func DeleteLink(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := services.DeleteLink(c.Param("id"), userID.(string)); err != nil {
		status, msg := linkErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error().Err(err).Str("link_id", c.Param("id")).Msg("Failed to delete link")
		}
		c.JSON(status, gin.H{"error": msg})
		return
	}

	invalidatePublicPage(userID.(string))
	c.JSON(http.StatusOK, gin.H{"message": "Link deleted successfully"})
}

// ReorderLinks handles PUT /api/links/reorder
// The client submits its full recomputed ranking; pairs referencing links
// the caller does not own are skipped silently.
func ReorderLinks(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input ReorderInput
	if err := c.ShouldBindJSON(&input); err != nil || input.Updates == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid updates format"})
		return
	}

	if err := services.ReorderLinks(userID.(string), input.Updates); err != nil {
		logger.Error().Err(err).Str("user_id", userID.(string)).Msg("Failed to reorder links")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reorder links"})
		return
	}

	invalidatePublicPage(userID.(string))
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// TrackClick handles POST /api/links/:id/click
// Public endpoint: no ownership check, the opaque link id is the only guard.
func TrackClick(c *gin.Context) {
	clicks, err := services.RecordClick(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrLinkNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
			return
		}
		logger.Error().Err(err).Str("link_id", c.Param("id")).Msg("Failed to track click")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to track click"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "clicks": clicks})
}
