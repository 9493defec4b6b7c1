package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"book-catalog/internal/shared/middleware"
	"book-catalog/pkg/container"
)

const welcomeBanner = "Welcome To Book Catalog API"

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.App.AllowedOrigins),
	)

	router.GET("/", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, welcomeBanner)
	})
	router.GET("/health", healthCheckHandler(c))

	setupBookRoutes(router, c)

	return router
}

// ========================================
// BOOK ROUTES
// ========================================
func setupBookRoutes(router *gin.Engine, c *container.Container) {
	books := router.Group("/books")
	c.BookHandler.RegisterRoutes(books)
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		services := gin.H{}
		for name, err := range appCtx.HealthCheck(ctx) {
			if err != nil {
				services[name] = "error: " + err.Error()
				// cache outages degrade performance only
				if name == "store" {
					status = http.StatusServiceUnavailable
				}
				continue
			}
			services[name] = "ok"
		}

		overall := "ok"
		if status != http.StatusOK {
			overall = "degraded"
		}

		c.JSON(status, gin.H{
			"status":    overall,
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"driver":    appCtx.Config.Store.Driver,
			"services":  services,
		})
	}
}
