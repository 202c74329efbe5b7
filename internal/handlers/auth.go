package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"

	"github.com/Para-FR/youtube-linktree-demo/internal/config"
	"github.com/Para-FR/youtube-linktree-demo/internal/database"
	"github.com/Para-FR/youtube-linktree-demo/internal/models"
	"github.com/Para-FR/youtube-linktree-demo/pkg/logger"
	"github.com/Para-FR/youtube-linktree-demo/pkg/utils"
)

// --- Local Auth ---

type RegisterInput struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	Username    string `json:"username" binding:"required"`
	DisplayName string `json:"displayName" binding:"required"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	username := utils.NormalizeUsername(input.Username)
	if !utils.ValidateUsername(username) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username can only contain lowercase letters, numbers, hyphens, and underscores"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	// Differentiate email and username conflicts up front for clearer errors
	var existing models.User
	if err := database.DB.Where("email = ? OR username = ?", email, username).First(&existing).Error; err == nil {
		if existing.Email == email {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username already taken"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), 12)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to hash password")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		return
	}

	user := models.User{
		ID:          utils.GenerateID(),
		Email:       email,
		Username:    username,
		DisplayName: input.DisplayName,
		Password:    string(hashedPassword),
	}

	if result := database.DB.Create(&user); result.Error != nil {
		// Unique index race between the check above and the insert
		logger.Warn().Err(result.Error).Str("email", email).Msg("Registration failed: unique violation")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email or username already taken"})
		return
	}

	logger.Info().Str("user_id", user.ID).Msg("User registered successfully")

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user": gin.H{
			"id":          user.ID,
			"email":       user.Email,
			"username":    user.Username,
			"displayName": user.DisplayName,
		},
	})
}

func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	var user models.User
	if result := database.DB.Where("email = ?", strings.ToLower(input.Email)).First(&user); result.Error != nil {
		logger.Warn().Str("email", input.Email).Msg("Login failed: user not found")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		logger.Warn().Str("email", input.Email).Msg("Login failed: invalid password")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to generate token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	logger.Info().Str("user_id", user.ID).Msg("User logged in")

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// Logout invalidates the token server-side by adding its JTI to the Redis
// blacklist for the remainder of its lifetime.
func Logout(c *gin.Context) {
	claimsInterface, exists := c.Get("claims")
	if !exists {
		c.JSON(http.StatusOK, gin.H{"message": "Already logged out"})
		return
	}

	claims, ok := claimsInterface.(*utils.Claims)
	if !ok || claims == nil {
		c.JSON(http.StatusOK, gin.H{"message": "Already logged out"})
		return
	}

	jti := claims.GetJTI()
	ttl := time.Until(claims.GetExpiry())
	if jti == "" || ttl <= 0 {
		c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
		return
	}

	if err := database.BlacklistToken(jti, ttl); err != nil {
		// Log but still respond success: the client discards its token either way
		logger.Error().Err(err).Str("jti", jti).Msg("Failed to blacklist token")
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

func CheckUsername(c *gin.Context) {
	username := utils.NormalizeUsername(c.Query("username"))
	if !utils.ValidateUsername(username) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid username"})
		return
	}

	var count int64
	database.DB.Model(&models.User{}).Where("username = ?", username).Count(&count)

	c.JSON(http.StatusOK, gin.H{"available": count == 0})
}

// --- OAuth ---

var (
	googleOauthConfig *oauth2.Config
	githubOauthConfig *oauth2.Config
)

func InitOAuthConfig() {
	if config.AppConfig.GoogleClientID != "" {
		googleOauthConfig = &oauth2.Config{
			RedirectURL:  config.AppConfig.GoogleCallbackURL,
			ClientID:     config.AppConfig.GoogleClientID,
			ClientSecret: config.AppConfig.GoogleClientSecret,
			Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		}
	} else {
		logger.Warn().Msg("Google OAuth keys missing")
	}

	if config.AppConfig.GithubClientID != "" {
		githubOauthConfig = &oauth2.Config{
			RedirectURL:  config.AppConfig.GithubCallbackURL,
			ClientID:     config.AppConfig.GithubClientID,
			ClientSecret: config.AppConfig.GithubClientSecret,
			Scopes:       []string{"user:email", "read:user"},
			Endpoint:     github.Endpoint,
		}
	} else {
		logger.Warn().Msg("GitHub OAuth keys missing")
	}
}

func GoogleLogin(c *gin.Context) {
	if googleOauthConfig == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Google OAuth not configured"})
		return
	}
	url := googleOauthConfig.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	c.Redirect(http.StatusTemporaryRedirect, url)
}

func GoogleCallback(c *gin.Context) {
	if googleOauthConfig == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Google OAuth not configured"})
		return
	}

	code := c.Query("code")
	token, err := googleOauthConfig.Exchange(context.Background(), code)
	if err != nil {
		logger.Error().Err(err).Msg("Google OAuth exchange failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to exchange token"})
		return
	}

	client := googleOauthConfig.Client(context.Background(), token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		logger.Error().Err(err).Msg("Failed to get Google user info")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user info"})
		return
	}
	defer resp.Body.Close()

	var userInfo struct {
		ID      string `json:"id"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		logger.Error().Err(err).Msg("Failed to parse Google user info")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse user info"})
		return
	}

	user := handleOAuthLogin(c, userInfo.Email, userInfo.Name, userInfo.Picture)
	if user != nil {
		finishOAuthLogin(c, user)
	}
}

func GithubLogin(c *gin.Context) {
	if githubOauthConfig == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "GitHub OAuth not configured"})
		return
	}
	url := githubOauthConfig.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	c.Redirect(http.StatusTemporaryRedirect, url)
}

func GithubCallback(c *gin.Context) {
	if githubOauthConfig == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "GitHub OAuth not configured"})
		return
	}

	code := c.Query("code")
	token, err := githubOauthConfig.Exchange(context.Background(), code)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to exchange token"})
		return
	}

	client := githubOauthConfig.Client(context.Background(), token)
	resp, err := client.Get("https://api.github.com/user")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user info"})
		return
	}
	defer resp.Body.Close()

	var userInfo struct {
		Login     string `json:"login"`
		Name      string `json:"name"`
		AvatarURL string `json:"avatar_url"`
		Email     string `json:"email"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse user info"})
		return
	}

	email := userInfo.Email
	if email == "" {
		email = fmt.Sprintf("%s@github.placeholder", userInfo.Login)
	}

	user := handleOAuthLogin(c, email, userInfo.Name, userInfo.AvatarURL)
	if user != nil {
		finishOAuthLogin(c, user)
	}
}

// handleOAuthLogin resolves a user by email, creating one with a generated
// username when unknown.
func handleOAuthLogin(c *gin.Context, email, name, avatar string) *models.User {
	email = strings.ToLower(email)

	var user models.User
	result := database.DB.Where("email = ?", email).First(&user)

	if result.Error == nil {
		return &user
	}

	if result.Error != gorm.ErrRecordNotFound {
		logger.Error().Err(result.Error).Str("email", email).Msg("Database query failed during OAuth login")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error during login process"})
		return nil
	}

	logger.Info().Str("email", email).Msg("New user registration via OAuth")

	base := name
	if base == "" {
		base = strings.Split(email, "@")[0]
	}
	base = strings.ToLower(strings.ReplaceAll(base, " ", "_"))

	cleaned := ""
	for _, r := range base {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' {
			cleaned += string(r)
		}
	}
	if cleaned == "" {
		cleaned = "user"
	}

	displayName := name
	if displayName == "" {
		displayName = cleaned
	}

	user = models.User{
		ID:          utils.GenerateID(),
		Email:       email,
		Username:    cleaned + "_" + utils.GenerateID()[:4], // Ensure uniqueness
		DisplayName: displayName,
		Avatar:      avatar,
	}

	if createErr := database.DB.Create(&user).Error; createErr != nil {
		logger.Error().Err(createErr).Str("email", email).Msg("Failed to create user during OAuth")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Account creation failed"})
		return nil
	}

	logger.Info().Str("email", email).Str("user_id", user.ID).Msg("New user registered via OAuth")
	return &user
}

// finishOAuthLogin issues a JWT and redirects back to the frontend.
func finishOAuthLogin(c *gin.Context, user *models.User) {
	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to generate token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	redirectURL := fmt.Sprintf("%s/auth/callback?token=%s", config.AppConfig.FrontendURL, token)
	c.Redirect(http.StatusTemporaryRedirect, redirectURL)
}
