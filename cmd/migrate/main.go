package main

import (
	"log"

	"fintrack/internal/infrastructure/postgres"
	"fintrack/internal/shared/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := postgres.RunMigrations(cfg.Database.ConnectionString()); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migrations applied")
}
