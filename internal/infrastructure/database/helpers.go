package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// HealthCheck pings the database with a 5s budget and logs pool usage.
func (db *PostgresDB) HealthCheck(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.Pool.Ping(healthCtx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	stats := db.Pool.Stat()
	log.Debug().
		Str("component", "database").
		Int32("total_conns", stats.TotalConns()).
		Int32("idle_conns", stats.IdleConns()).
		Int32("acquired_conns", stats.AcquiredConns()).
		Msg("Health check passed")

	return nil
}

// Close releases every pooled connection. Safe to call more than once.
func (db *PostgresDB) Close() error {
	if db.Pool == nil {
		return nil
	}

	log.Info().Str("component", "database").Msg("Closing PostgreSQL connection pool")
	db.Pool.Close()
	db.Pool = nil

	return nil
}
