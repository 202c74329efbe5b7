package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Para-FR/youtube-linktree-demo/internal/database"
	"github.com/Para-FR/youtube-linktree-demo/internal/models"
	"github.com/Para-FR/youtube-linktree-demo/pkg/logger"
)

type UpdateProfileInput struct {
	DisplayName *string `json:"displayName"`
	Bio         *string `json:"bio"`
	Avatar      *string `json:"avatar"`
	Theme       *struct {
		BackgroundColor *string `json:"backgroundColor"`
		ButtonColor     *string `json:"buttonColor"`
		ButtonTextColor *string `json:"buttonTextColor"`
		FontFamily      *string `json:"fontFamily"`
	} `json:"theme"`
}

const maxBioLength = 160

// GetProfile handles GET /api/profile
func GetProfile(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		logger.Error().Err(err).Msg("Failed to load user for profile")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateProfile handles PUT /api/profile
// Absent fields are untouched; theme fields merge individually so a client
// can change one color without resubmitting the whole theme.
func UpdateProfile(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		logger.Error().Err(err).Msg("Failed to load user for profile update")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	if input.DisplayName != nil {
		user.DisplayName = *input.DisplayName
	}
	if input.Bio != nil {
		if len(*input.Bio) > maxBioLength {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Bio cannot exceed 160 characters"})
			return
		}
		user.Bio = *input.Bio
	}
	if input.Avatar != nil {
		user.Avatar = *input.Avatar
	}
	if input.Theme != nil {
		if input.Theme.BackgroundColor != nil {
			user.Theme.BackgroundColor = *input.Theme.BackgroundColor
		}
		if input.Theme.ButtonColor != nil {
			user.Theme.ButtonColor = *input.Theme.ButtonColor
		}
		if input.Theme.ButtonTextColor != nil {
			user.Theme.ButtonTextColor = *input.Theme.ButtonTextColor
		}
		if input.Theme.FontFamily != nil {
			user.Theme.FontFamily = *input.Theme.FontFamily
		}
	}

	if err := database.DB.Save(&user).Error; err != nil {
		logger.Error().Err(err).Str("user_id", user.ID).Msg("Failed to update profile")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	invalidatePublicPage(user.ID)
	c.JSON(http.StatusOK, gin.H{"user": user})
}
