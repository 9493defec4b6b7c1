package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"book-catalog/internal/config"
	"book-catalog/pkg/logger"
)

func main() {
	// ========================================
	// LOAD ENVIRONMENT VARIABLES
	// ========================================
	// .env is optional; deployed environments set real variables
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Init(os.Getenv("APP_ENV"), "info")
		logger.Fatal("Invalid configuration", err)
	}

	logger.Init(cfg.App.Environment, cfg.App.LogLevel)
	if envErr != nil {
		log.Debug().Msg("No .env file found, using system environment variables")
	}

	// ========================================
	// SET GIN MODE
	// ========================================
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Info().Str("env", cfg.App.Environment).Str("version", cfg.App.Version).Msg("Starting " + cfg.App.Name)

	if err := Serve(cfg); err != nil {
		logger.Fatal("Server stopped", err)
	}
}
