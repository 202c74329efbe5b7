package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Para-FR/youtube-linktree-demo/internal/database"
	"github.com/Para-FR/youtube-linktree-demo/internal/models"
)

func TestGetPublicPage(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	user := models.User{
		ID:          "u_public",
		Username:    "publicuser",
		Email:       "public@example.com",
		DisplayName: "Public User",
		Bio:         "hello",
	}
	database.DB.Create(&user)

	database.DB.Create(&models.Link{ID: "l_pub_2", UserID: "u_public", Title: "Second", URL: "https://2.example", Order: 1, Active: true, Clicks: 42})
	database.DB.Create(&models.Link{ID: "l_pub_1", UserID: "u_public", Title: "First", URL: "https://1.example", Order: 0, Active: true, Clicks: 7})
	database.DB.Create(&models.Link{ID: "l_pub_hidden", UserID: "u_public", Title: "Hidden", URL: "https://3.example", Order: 2, Active: false})

	w := performJSON(GetPublicPage, "GET", "/api/public/publicuser", nil, "", gin.Params{{Key: "username", Value: "publicuser"}})
	assert.Equal(t, http.StatusOK, w.Code)

	var response PublicPageResponse
	json.Unmarshal(w.Body.Bytes(), &response)

	// Active links only, sorted by order
	assert.Len(t, response.Links, 2)
	assert.Equal(t, "l_pub_1", response.Links[0].ID)
	assert.Equal(t, "l_pub_2", response.Links[1].ID)

	assert.Equal(t, "Public User", response.Profile.DisplayName)
	assert.Equal(t, "hello", response.Profile.Bio)

	// Confidentiality: no clicks, no owner, no email anywhere in the body
	body := w.Body.String()
	assert.NotContains(t, body, "clicks")
	assert.NotContains(t, body, "u_public")
	assert.NotContains(t, body, "public@example.com")
	assert.NotContains(t, body, "Hidden")
}

func TestGetPublicPage_CaseInsensitiveUsername(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	database.DB.Create(&models.User{ID: "u_case", Username: "caseuser", Email: "case@example.com", DisplayName: "Case"})

	w := performJSON(GetPublicPage, "GET", "/api/public/CaseUser", nil, "", gin.Params{{Key: "username", Value: "CaseUser"}})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetPublicPage_UnknownUsername(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	w := performJSON(GetPublicPage, "GET", "/api/public/ghost", nil, "", gin.Params{{Key: "username", Value: "ghost"}})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetPublicPage_StorageFailure(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	// A storage failure is a 500, never mistaken for an unknown username
	sqlDB, err := database.DB.DB()
	assert.NoError(t, err)
	sqlDB.Close()

	w := performJSON(GetPublicPage, "GET", "/api/public/anyone", nil, "", gin.Params{{Key: "username", Value: "anyone"}})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "error")
}
