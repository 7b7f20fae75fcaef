package main

import (
	"log"
	"os"

	"chat-relay-be/internal/model"
	"chat-relay-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	providers := []model.AIProvider{
		{Name: "Default Workflow", RoutingKey: "default", IsActive: true, Order: 1},
		{Name: "Fast Model", RoutingKey: "fast", IsActive: true, Order: 2},
		{Name: "Reasoning Model", RoutingKey: "reasoning", IsActive: true, Order: 3},
	}

	created, skipped := 0, 0
	for _, p := range providers {
		var existing model.AIProvider
		res := db.Where("routing_key = ?", p.RoutingKey).First(&existing)
		if res.Error == nil {
			color.Yellow("~ Provider '%s' already exists, skipping", p.RoutingKey)
			skipped++
			continue
		}
		if err := db.Create(&p).Error; err != nil {
			color.Red("✗ Failed to seed provider '%s': %v", p.RoutingKey, err)
			continue
		}
		color.Green("✓ Seeded provider '%s' (%s)", p.Name, p.RoutingKey)
		created++
	}

	color.Cyan("Done: %d created, %d skipped", created, skipped)
}
