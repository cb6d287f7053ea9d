package main

import (
	"consolidator/src/config"
	"consolidator/src/database"
	"log"
	"os"
)

func main() {
	cfg, err := config.LoadConfig("./settings", os.Getenv("ENV"))
	if err != nil {
		log.Fatalf("Error loading config for environment: %v", err)
	}
	if !cfg.Databases.SQL.Enabled() {
		log.Fatalf("No database configured in databases.sql")
	}

	if err := database.Migrate(cfg.Databases.SQL.DSN()); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Database migration completed successfully")
}
