package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/Para-FR/youtube-linktree-demo/internal/database"
	"github.com/Para-FR/youtube-linktree-demo/internal/models"
)

func TestRegister(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	w := performJSON(Register, "POST", "/api/auth/register", map[string]string{
		"email":       "new@example.com",
		"password":    "secret123",
		"username":    "newuser",
		"displayName": "New User",
	}, "", nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	var user models.User
	err := database.DB.Where("username = ?", "newuser").First(&user).Error
	assert.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)
	// Password must be hashed, never stored raw
	assert.NotEqual(t, "secret123", user.Password)

	// Response must not leak the hash
	assert.NotContains(t, w.Body.String(), user.Password)
}

func TestRegister_Conflicts(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	createTestUser("u_conflict", "taken") // email taken@example.com

	// Email taken
	w := performJSON(Register, "POST", "/api/auth/register", map[string]string{
		"email":       "taken@example.com",
		"password":    "secret123",
		"username":    "other",
		"displayName": "Other",
	}, "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Email already registered")

	// Username taken
	w = performJSON(Register, "POST", "/api/auth/register", map[string]string{
		"email":       "fresh@example.com",
		"password":    "secret123",
		"username":    "taken",
		"displayName": "Other",
	}, "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Username already taken")
}

func TestRegister_InvalidUsername(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	for _, username := range []string{"ab", "Has Spaces", "bad@name", "UPPER!"} {
		w := performJSON(Register, "POST", "/api/auth/register", map[string]string{
			"email":       "x@example.com",
			"password":    "secret123",
			"username":    username,
			"displayName": "X",
		}, "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, "username %q should be rejected", username)
	}
}

func TestLogin(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	database.DB.Create(&models.User{
		ID:       "u_login",
		Username: "loginuser",
		Email:    "login@example.com",
		Password: string(hash),
	})

	w := performJSON(Login, "POST", "/api/auth/login", map[string]string{
		"email":    "login@example.com",
		"password": "secret123",
	}, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Token string `json:"token"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.NotEmpty(t, response.Token)

	// Wrong password
	w = performJSON(Login, "POST", "/api/auth/login", map[string]string{
		"email":    "login@example.com",
		"password": "wrong",
	}, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Unknown email
	w = performJSON(Login, "POST", "/api/auth/login", map[string]string{
		"email":    "ghost@example.com",
		"password": "secret123",
	}, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCheckUsername(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	createTestUser("u_check", "checkme")

	w := performJSON(CheckUsername, "GET", "/api/auth/check-username?username=checkme", nil, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Available bool `json:"available"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.False(t, response.Available)

	w = performJSON(CheckUsername, "GET", "/api/auth/check-username?username=freename", nil, "", nil)
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.True(t, response.Available)
}
