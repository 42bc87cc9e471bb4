package main

import (
	"log"

	"github.com/rratchapol/backend/internal/config"
	"github.com/rratchapol/backend/internal/database"
	"github.com/rratchapol/backend/internal/seed"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Run(db); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Println("Database seeded")
}
