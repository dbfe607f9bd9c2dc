package main

import (
	"fmt"
	"strings"

	"github.com/aldisaputra17/chatbot-backend/internal/config"
	mongodb "github.com/aldisaputra17/chatbot-backend/internal/repository/mongo"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	url := migrationURL(cfg.Mongo.URI, cfg.Mongo.Database)
	fmt.Printf("Applying store migrations to database %q...\n", cfg.Mongo.Database)

	if err := mongodb.RunMigrations(url, "file://migrations"); err != nil {
		panic(fmt.Sprintf("Migration failed: %v", err))
	}
}

// migrationURL adds the database name to the connection URI, which the
// migrate mongodb driver requires, preserving any query string.
func migrationURL(uri, database string) string {
	base, query, hasQuery := strings.Cut(uri, "?")
	base = strings.TrimSuffix(base, "/") + "/" + database
	if hasQuery {
		return base + "?" + query
	}
	return base
}
