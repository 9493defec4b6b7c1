package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"book-catalog/internal/config"
	bookHandler "book-catalog/internal/domains/book/handler"
	bookRepo "book-catalog/internal/domains/book/repository"
	bookService "book-catalog/internal/domains/book/service"
	infraCache "book-catalog/internal/infrastructure/cache"
	"book-catalog/internal/infrastructure/database"
	"book-catalog/pkg/cache"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the dependency graph. Every component is
// built once here and handed down explicitly; nothing reads globals.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config   *config.Config
	Postgres *database.PostgresDB // set when DB_DRIVER=postgres
	Mongo    *database.MongoDB    // set when DB_DRIVER=mongo
	Cache    cache.Cache          // nil unless CACHE_ENABLED and Redis answered

	// ========================================
	// DOMAIN LAYERS
	// ========================================
	BookRepo    bookRepo.RepositoryInterface
	BookService bookService.ServiceInterface
	BookHandler *bookHandler.Handler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer builds the graph in dependency order:
// store -> cache -> repository -> service -> handler.
// A store that cannot be reached is an error; the caller must not start serving.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	log.Info().Msg("Initializing DI container")

	c := &Container{Config: cfg}

	// ========================================
	// STEP 1: RESOURCE STORE
	// ========================================
	store, err := c.initStore(ctx)
	if err != nil {
		c.Cleanup()
		return nil, err
	}

	// ========================================
	// STEP 2: CACHE (optional)
	// ========================================
	c.initCache(ctx)
	if c.Cache != nil {
		store = bookRepo.NewCachedRepository(store, c.Cache, cfg.Cache.TTL)
	}
	c.BookRepo = store

	// ========================================
	// STEP 3: SERVICES & HANDLERS
	// ========================================
	c.BookService = bookService.NewService(c.BookRepo)
	c.BookHandler = bookHandler.NewHandler(c.BookService)

	log.Info().Str("driver", cfg.Store.Driver).Bool("cache", c.Cache != nil).Msg("DI container initialized")
	return c, nil
}

func (c *Container) initStore(ctx context.Context) (bookRepo.RepositoryInterface, error) {
	switch c.Config.Store.Driver {
	case config.DriverPostgres:
		dbConfig, err := config.LoadDatabaseConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to load database config: %w", err)
		}

		db := database.NewPostgresDB(dbConfig)
		if err := db.Connect(ctx); err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		c.Postgres = db

		if c.Config.Store.AutoMigrate {
			if err := database.Migrate(ctx, dbConfig.ConnectionString()); err != nil {
				return nil, fmt.Errorf("failed to migrate database: %w", err)
			}
			log.Info().Msg("Database schema up to date")
		}

		return bookRepo.NewPostgresRepository(db.Pool), nil

	case config.DriverMongo:
		m := database.NewMongoDB(c.Config.Mongo.URI, c.Config.Mongo.Database, c.Config.Mongo.ConnectTimeout)
		if err := m.Connect(ctx); err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		c.Mongo = m

		return bookRepo.NewMongoRepository(m.Collection(c.Config.Mongo.Collection)), nil

	case config.DriverMemory:
		log.Warn().Msg("Using in-memory book store; data is lost on restart")
		return bookRepo.NewMemoryRepository(), nil

	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", c.Config.Store.Driver)
	}
}

// initCache connects Redis when enabled. Failure is not critical: the
// service keeps running against the store directly.
func (c *Container) initCache(ctx context.Context) {
	if !c.Config.Cache.Enabled {
		return
	}

	redisCache := infraCache.NewRedisCache(
		c.Config.Redis.Host,
		c.Config.Redis.Password,
		c.Config.Redis.DB,
	)

	if err := redisCache.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("Redis connection failed (non-critical), running without cache")
		_ = redisCache.Close()
		return
	}

	c.Cache = redisCache
}

// HealthCheck reports store reachability, and cache reachability when a cache is wired.
func (c *Container) HealthCheck(ctx context.Context) map[string]error {
	checks := map[string]error{}
	if c.Postgres != nil {
		// also logs pool usage
		checks["store"] = c.Postgres.HealthCheck(ctx)
	} else {
		checks["store"] = c.BookService.HealthCheck(ctx)
	}
	if c.Cache != nil {
		checks["cache"] = c.Cache.Ping(ctx)
	}
	return checks
}

// Cleanup releases store and cache connections on shutdown.
func (c *Container) Cleanup() {
	log.Info().Msg("Cleaning up container resources")

	if c.Postgres != nil {
		if err := c.Postgres.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close PostgreSQL pool")
		}
	}

	if c.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := c.Mongo.Close(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to disconnect MongoDB")
		}
		cancel()
	}

	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis")
		}
	}
}
