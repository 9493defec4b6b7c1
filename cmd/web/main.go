package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"book-catalog/internal/config"
	"book-catalog/internal/shared/middleware"
	"book-catalog/internal/web"
	"book-catalog/pkg/client"
	"book-catalog/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Init(os.Getenv("APP_ENV"), "info")
		logger.Fatal("Invalid configuration", err)
	}
	logger.Init(cfg.App.Environment, cfg.App.LogLevel)

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	api := client.New(cfg.Web.APIBaseURL)
	router := web.NewRouter(web.NewHandler(api),
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Web.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("api", cfg.Web.APIBaseURL).Msgf("Client pages on http://localhost:%s", cfg.Web.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start web server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("Web server forced to shutdown")
	}
}
