package http

import (
	"github.com/gin-gonic/gin"
	"github.com/sallamerger/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.MaxMultipartMemory = cfg.Server.MaxUploadMB << 20

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	if cfg.RateLimit.PerIP > 0 {
		v1.Use(RateLimitMiddleware(NewIPRateLimiter(cfg.RateLimit.PerIP), cfg.Listing.Language))
	}
	{
		// Listing endpoints
		listings := v1.Group("/listings")
		{
			listings.POST("/clean", handler.CleanListing)
			listings.POST("/brands/detect", handler.DetectBrands)
			listings.POST("/brands/extract", handler.ExtractBrands)
		}

		// Produced workbooks
		v1.GET("/files/:id", handler.DownloadOutput)
	}

	return router
}
