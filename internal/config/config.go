package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Supported DB_DRIVER values
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

// Config holds the whole application configuration, populated from environment variables.
type Config struct {
	App   AppConfig
	Store StoreConfig
	Mongo MongoConfig
	Redis RedisConfig
	Cache CacheConfig
	Web   WebConfig
}

type AppConfig struct {
	Name           string
	Environment    string // development, staging, production
	Port           string
	Version        string
	LogLevel       string
	AllowedOrigins []string
}

// StoreConfig selects the Resource Store backend. Postgres pool settings
// live in database.DBConfig (see LoadDatabaseConfig).
type StoreConfig struct {
	Driver      string
	AutoMigrate bool // apply embedded migrations at startup (postgres only)
}

type MongoConfig struct {
	URI            string
	Database       string
	Collection     string
	ConnectTimeout time.Duration
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

// WebConfig configures the client pages process (cmd/web).
type WebConfig struct {
	Port       string
	APIBaseURL string
}

// Load reads the configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:           getEnv("APP_NAME", "Book Catalog API"),
			Environment:    getEnv("APP_ENV", "development"),
			Port:           getEnv("APP_PORT", "5555"),
			Version:        getEnv("APP_VERSION", "1.0.0"),
			LogLevel:       getEnv("LOG_LEVEL", "info"),
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Store: StoreConfig{
			Driver:      strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
			AutoMigrate: getEnvBool("DB_AUTO_MIGRATE", true),
		},
		Mongo: MongoConfig{
			URI:            getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database:       getEnv("MONGO_DATABASE", "books-store"),
			Collection:     getEnv("MONGO_COLLECTION", "books"),
			ConnectTimeout: getEnvDuration("MONGO_CONNECT_TIMEOUT", 10*time.Second),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Cache: CacheConfig{
			Enabled: getEnvBool("CACHE_ENABLED", false),
			TTL:     getEnvDuration("CACHE_TTL", 5*time.Minute),
		},
		Web: WebConfig{
			Port:       getEnv("WEB_PORT", "5173"),
			APIBaseURL: getEnv("API_BASE_URL", "http://localhost:5555"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the values Load cannot fall back from.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverPostgres, DriverMongo, DriverMemory:
	default:
		return fmt.Errorf("DB_DRIVER must be one of %s, %s, %s (got %q)",
			DriverPostgres, DriverMongo, DriverMemory, c.Store.Driver)
	}

	if err := validatePort("APP_PORT", c.App.Port); err != nil {
		return err
	}
	if err := validatePort("WEB_PORT", c.Web.Port); err != nil {
		return err
	}

	if c.App.Environment == "production" {
		if c.Store.Driver == DriverMemory {
			return fmt.Errorf("DB_DRIVER=%s is not allowed in production", DriverMemory)
		}
		if c.Store.Driver == DriverPostgres && os.Getenv("DB_DSN") == "" && os.Getenv("DB_PASSWORD") == "" {
			return fmt.Errorf("DB_DSN or DB_PASSWORD must be set in production")
		}
	}

	return nil
}

func validatePort(key, value string) error {
	port, err := strconv.Atoi(value)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("%s must be a port number (got %q)", key, value)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvList splits a comma-separated value, dropping empty items.
func getEnvList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(valueStr, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
