package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/azadehm/bazaar-golang/internal/config"
	"github.com/azadehm/bazaar-golang/internal/database"
	"github.com/azadehm/bazaar-golang/internal/handlers"
	"github.com/azadehm/bazaar-golang/internal/routes"
	"github.com/azadehm/bazaar-golang/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.OpenDB(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Database connection pool established")

	app := &handlers.Handlers{
		Store:     store.New(db),
		JWTSecret: cfg.JWTSecret,
	}

	router := routes.SetupRouter(app)

	log.Printf("Starting bazaar API server on %s...", cfg.ListenAddr)
	if err := router.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
