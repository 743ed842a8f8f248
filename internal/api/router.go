package api

import (
	"github.com/gin-gonic/gin"
	"github.com/pagecanvas/canvas-api/internal/api/handlers"
	"github.com/pagecanvas/canvas-api/internal/api/middleware"
	"github.com/pagecanvas/canvas-api/internal/config"
	"github.com/pagecanvas/canvas-api/internal/llm"
	"github.com/pagecanvas/canvas-api/internal/services"
	"gorm.io/gorm"
)

// SetupRouter configures all API routes
func SetupRouter(db *gorm.DB, cfg *config.Config, version string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.RecoverWithSentry())
	router.Use(middleware.SentryMiddleware())
	router.Use(middleware.RequestTracking())
	router.Use(middleware.CORS())

	store := services.NewCreationsService(db)
	providers := llm.NewProviderFactory(cfg.GeminiAPIKey, cfg.OpenAIAPIKey)

	healthHandler := handlers.NewHealthHandler(db, version)
	generationHandler := handlers.NewGenerationHandler(cfg, providers, store)
	creationsHandler := handlers.NewCreationsHandler(store)

	router.GET("/health", healthHandler.Health)

	v1 := router.Group("/api/v1")
	if cfg.IsGatewayMode() {
		v1.Use(middleware.GatewayAuth())
	} else {
		v1.Use(middleware.OptionalGatewayAuth())
	}

	creations := v1.Group("/creations")
	{
		creations.POST("", generationHandler.Generate)
		creations.GET("", creationsHandler.List)
		creations.GET("/:id", creationsHandler.Get)
		creations.POST("/:id/refine", generationHandler.Refine)
		creations.PATCH("/:id", creationsHandler.Rename)
		creations.DELETE("/:id", creationsHandler.Delete)
		creations.GET("/:id/export", creationsHandler.Export)
	}

	return router
}
