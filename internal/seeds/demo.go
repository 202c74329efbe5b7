package seeds

import (
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/Para-FR/youtube-linktree-demo/internal/database"
	"github.com/Para-FR/youtube-linktree-demo/internal/models"
	"github.com/Para-FR/youtube-linktree-demo/pkg/utils"
)

// GetOrCreateDemoUser returns the demo account used for local development.
func GetOrCreateDemoUser() (models.User, error) {
	log.Println("Checking demo user...")

	username := "demo"

	var user models.User
	err := database.DB.Where("username = ?", username).First(&user).Error
	if err == nil {
		log.Printf("   Demo user found: %s", user.Username)
		return user, nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)

	user = models.User{
		ID:          utils.GenerateID(),
		Username:    username,
		Email:       "demo@example.com",
		Password:    string(hash),
		DisplayName: "Demo User",
		Bio:         "This is a demo page. Everything here was seeded.",
		Avatar:      "https://api.dicebear.com/7.x/identicon/svg?seed=demo",
	}

	if err := database.DB.Create(&user).Error; err != nil {
		return models.User{}, err
	}

	log.Printf("   Demo user created: %s", user.Username)
	return user, nil
}

// SeedDemoLinks resets and reseeds the demo user's links.
func SeedDemoLinks(user models.User) error {
	log.Println("Seeding demo links...")

	if err := database.DB.Where("user_id = ?", user.ID).Delete(&models.Link{}).Error; err != nil {
		return err
	}

	links := []models.Link{
		{Title: "My Website", URL: "https://example.com", Icon: "globe", Active: true},
		{Title: "YouTube", URL: "https://youtube.com/@demo", Icon: "youtube", Active: true},
		{Title: "GitHub", URL: "https://github.com/demo", Icon: "github", Active: true},
		{Title: "Newsletter", URL: "https://example.com/newsletter", Icon: "mail", Active: false},
	}

	for i := range links {
		links[i].ID = utils.GenerateID()
		links[i].UserID = user.ID
		links[i].Order = i
		if err := database.DB.Create(&links[i]).Error; err != nil {
			return err
		}
	}

	log.Printf("   Seeded %d links", len(links))
	return nil
}
