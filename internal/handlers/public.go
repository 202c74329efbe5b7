package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Para-FR/youtube-linktree-demo/internal/database"
	"github.com/Para-FR/youtube-linktree-demo/internal/models"
	"github.com/Para-FR/youtube-linktree-demo/internal/services"
	"github.com/Para-FR/youtube-linktree-demo/pkg/logger"
	"github.com/Para-FR/youtube-linktree-demo/pkg/utils"
)

// publicPageTTL bounds staleness of the anonymous view; mutations
// invalidate eagerly so this mostly covers missed invalidations.
const publicPageTTL = 60 * time.Second

// PublicPageResponse is everything an anonymous viewer gets: the stripped
// profile plus active links. Clicks and owner ids never appear here.
type PublicPageResponse struct {
	Profile models.PublicProfile `json:"profile"`
	Links   []models.PublicLink  `json:"links"`
}

// GetPublicPage handles GET /api/public/:username
func GetPublicPage(c *gin.Context) {
	username := utils.NormalizeUsername(c.Param("username"))

	var user models.User
	if err := database.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		logger.Error().Err(err).Str("username", username).Msg("Failed to look up profile")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}

	cacheKey := "public_page:" + user.ID
	var cached PublicPageResponse
	if err := database.CacheGet(cacheKey, &cached); err == nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	links, err := services.ListActiveLinks(user.ID)
	if err != nil {
		logger.Error().Err(err).Str("username", username).Msg("Failed to fetch public links")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}

	response := PublicPageResponse{
		Profile: user.Public(),
		Links:   links,
	}

	if err := database.CacheSet(cacheKey, response, publicPageTTL); err != nil {
		logger.Debug().Err(err).Msg("Public page cache write skipped")
	}

	c.JSON(http.StatusOK, response)
}
