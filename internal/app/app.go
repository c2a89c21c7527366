package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/cryptopulse/config"
	"github.com/guttosm/cryptopulse/internal/api"
	"github.com/guttosm/cryptopulse/internal/cache"
	"github.com/guttosm/cryptopulse/internal/logger"
	"github.com/guttosm/cryptopulse/internal/ratelimit"
	"github.com/guttosm/cryptopulse/internal/service"
	"github.com/guttosm/cryptopulse/internal/storage"
)

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Connects to PostgreSQL using InitPostgres().
//   - Initializes the repository layer (PricesRepository).
//   - Creates the per-client rate limiter that gates every route.
//   - Optionally connects the Redis ranking cache (REDIS_ADDR set).
//   - Creates the service layer (stats + normalized range).
//   - Configures the Gin router with all API routes.
//   - Registers health and readiness probes.
//   - Provides a cleanup function to close resources (DB, cache).
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp() (*gin.Engine, func(), error) {
	// Load global configuration
	cfg := config.AppConfig

	// Connect to PostgreSQL
	// indirection for unit testing
	db, err := postgresOpener(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	// Initialize repository layer (responsible for DB access)
	repo := storage.NewPricesRepository(db)

	// Optional Redis ranking cache
	var rankingCache cache.RankingCache
	var redisCache *cache.RedisRankingCache
	if cfg.Redis.Addr != "" {
		redisCache = cache.NewRedisRankingCache(cfg.Redis.Addr, cfg.Redis.CacheTTL)
		rankingCache = redisCache
		logger.L().Info().Str("addr", cfg.Redis.Addr).Msg("ranking cache enabled")
	}

	// Initialize service layer (business logic)
	statsSvc := service.NewCryptoStatsService(repo)
	rangeSvc := service.NewNormalizedRangeService(repo, rankingCache)

	// Per-client token bucket limiter, owned by the app lifecycle
	limiter := ratelimit.New(cfg.RateLimit.Capacity, cfg.RateLimit.Window)

	// Initialize HTTP handler layer (business logic to HTTP mapping)
	handler := api.NewHandler(statsSvc, rangeSvc)

	// Setup Gin router with routes
	router := api.NewRouter(handler, limiter)

	// Register health and readiness probes
	healthHandler := api.NewHealthHandler(db.Ping)
	healthHandler.Register(router)

	// Cleanup resources on shutdown
	cleanup := func() {
		_ = db.Close()
		if redisCache != nil {
			_ = redisCache.Close()
		}
	}

	return router, cleanup, nil
}
