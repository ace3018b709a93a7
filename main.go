package main

import (
	"context"
	"log"
	"net/http"

	"ecodesign/internal/api"
	"ecodesign/internal/config"
	"ecodesign/internal/container"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appContainer, err := container.New(appConfig)
	if err != nil {
		log.Fatalf("Failed to create application container: %v", err)
	}
	defer appContainer.Shutdown(context.Background())

	ctx := context.Background()

	// Persistence is optional: without DATABASE_URL the service runs the
	// full pipeline but skips project storage.
	if appConfig.Database.URL != "" {
		db, err := sqlx.Connect("postgres", appConfig.Database.URL)
		if err != nil {
			log.Printf("Warning: database connection failed: %v (running without project storage)", err)
		} else if err := appContainer.InitWithDatabase(ctx, db); err != nil {
			log.Printf("Warning: database initialization failed: %v (running without project storage)", err)
			db.Close()
		}
	} else {
		log.Println("No DATABASE_URL configured, running without project storage")
	}

	if err := appContainer.InitModels(ctx); err != nil {
		log.Fatalf("Failed to initialize ML models: %v", err)
	}

	server := api.NewApp(appContainer.Pipeline, appContainer.ProjectRepo)

	log.Printf("Starting EcoDesign server on port %s", appConfig.Server.Port)
	log.Fatal(http.ListenAndServe(":"+appConfig.Server.Port, server.Router()))
}
