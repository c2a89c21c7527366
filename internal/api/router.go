package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/cryptopulse/internal/domain/dto"
	"github.com/guttosm/cryptopulse/internal/middleware"
	"github.com/guttosm/cryptopulse/internal/ratelimit"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter creates a Gin engine with routes configured.
// It receives a Handler with all business logic already injected and the
// rate limiter gating every route.
//
// Responsibilities:
//   - Registers global middlewares (RateLimit, RequestID, Logger, Recovery).
//     The limiter runs first: rejected requests never reach routing.
//   - Adds request timeout handling (10 seconds).
//   - Mounts Swagger docs (/swagger/*any).
//   - Configures the /cryptos routes.
//   - Maps unknown routes to a RESOURCE_NOT_FOUND error body.
//
// Note:
//   - Health and readiness endpoints (/healthz, /readyz) are registered in app.InitializeApp().
func NewRouter(handler *Handler, limiter *ratelimit.Limiter) *gin.Engine {
	router := gin.New()

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RateLimit(limiter),
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
	)

	// ─── Timeout ──────────────────────────────────
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	// ─── Swagger ──────────────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ─── Cryptos ──────────────────────────────────
	cryptos := router.Group("/cryptos")
	{
		cryptos.GET("/list-by-normalized-range", handler.ListByNormalizedRange)
		cryptos.GET("/highest-normalized-range", handler.GetHighestNormalizedRange)
		cryptos.GET("/:symbol/stats", handler.GetStats)
	}

	// Unknown paths get the structured error body instead of Gin's default.
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.ErrorCodeResourceNotFound, "The requested resource is not found."))
	})

	return router
}
