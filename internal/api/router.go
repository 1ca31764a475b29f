package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/faisal-netizen/configurator-api/internal/api/handlers"
	"github.com/faisal-netizen/configurator-api/internal/api/middleware"
	"github.com/faisal-netizen/configurator-api/internal/config"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, svc handlers.DraftOrderCreator, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(customRecovery(logger))
	router.Use(loggingMiddleware(logger))

	// Any method other than the designated one on a known route gets the
	// method_not_allowed tag instead of gin's default 404.
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method_not_allowed"})
	})

	// Root: friendly response so GET / returns 200 instead of 404
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "Configurator Checkout API",
			"endpoints": []string{
				"GET /health",
				"POST /v1/orders/draft",
			},
		})
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/v1")
	{
		verifier := middleware.SelectVerifier(cfg.SignatureSecret)
		orderRoutes := v1.Group("/orders")
		orderRoutes.Use(middleware.VerifySignature(verifier, logger))
		{
			orderRoutes.POST("/draft", handlers.HandleCreateDraftOrder(cfg, svc, logger))
		}
	}

	return router
}

// customRecovery logs panics and surfaces them as the generic failure tag
// so the caller never sees internal detail.
func customRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "draft_order_failed"})
	})
}

// loggingMiddleware logs HTTP requests with a per-request id
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Set("request_id", requestID)
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("request_id", requestID),
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
