package main

import (
	"log"

	"github.com/joho/godotenv"

	"powercalc/internal/config"
	"powercalc/ui"
)

func main() {
	// .env is optional; environment variables win either way.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	app, err := ui.NewApp(ui.Config{
		Port:           cfg.Server.Port,
		CurveMaxPoints: cfg.Curve.MaxPoints,
	})
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.Serve(cfg.Server.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
