package main

import (
	"log"

	"github.com/joho/godotenv"

	"distviz/adapters/rng"
	"distviz/app"
	"distviz/internal"
	"distviz/internal/config"
	"distviz/internal/variants"
	"distviz/ui"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load application configuration
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewLogger(internal.ParseLevel(appConfig.Log.Level))

	// Seed the process-wide random source
	rngPort, err := rng.New(appConfig.Sampling.Seed)
	if err != nil {
		log.Fatalf("Failed to seed random source: %v", err)
	}
	logger.Info("Random source seeded with %d", rngPort.Seed())

	registry := variants.New(appConfig.Curve.Points)
	logger.Info("Registered %d distributions", registry.Len())

	service := app.NewVisualizerService(registry, rngPort, appConfig.Sampling, logger)

	server := ui.NewApp(service, logger)
	if err := server.Start(ui.Config{Port: appConfig.Server.Port}); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
