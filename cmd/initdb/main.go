package main

import (
	"log"
	"os"

	"github.com/johnquangdev/meeting-digest/internal/infrastructure/database"
	"github.com/johnquangdev/meeting-digest/pkg/config"
)

// initdb creates the meetings and summaries tables if they are absent.
// Running it again applies nothing and keeps existing rows.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	n, err := database.InitSchema(db)
	if cerr := database.CloseDB(db); cerr != nil {
		log.Printf("Warning: %v", cerr)
	}
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	log.Printf("✅ Database initialized (%d migration(s) applied)", n)
	os.Exit(0)
}
