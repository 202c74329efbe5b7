package main

import (
	"log"

	"github.com/Para-FR/youtube-linktree-demo/internal/config"
	"github.com/Para-FR/youtube-linktree-demo/internal/database"
	"github.com/Para-FR/youtube-linktree-demo/internal/models"
	"github.com/Para-FR/youtube-linktree-demo/internal/seeds"
)

func main() {
	config.LoadConfig()
	database.Connect()

	log.Println("Running migrations (just in case)...")
	if err := database.DB.AutoMigrate(&models.User{}, &models.Link{}); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}

	user, err := seeds.GetOrCreateDemoUser()
	if err != nil {
		log.Fatalf("Failed to seed demo user: %v", err)
	}

	if err := seeds.SeedDemoLinks(user); err != nil {
		log.Fatalf("Failed to seed demo links: %v", err)
	}

	log.Println("Seeding complete! Demo page at /api/public/demo")
}
