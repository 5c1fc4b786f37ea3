package api

import (
	"strategy-allocator/internal/api/handlers"
	"strategy-allocator/internal/api/middleware"
	"strategy-allocator/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// NewRouter assembles the read-only retrieval API.
func NewRouter(cfg *config.Config, log zerolog.Logger, reg *prometheus.Registry) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(middleware.CORS())
	router.Use(middleware.Logger(log))
	router.Use(middleware.ErrorHandler())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	if reg != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	artifacts := handlers.NewArtifactHandler(cfg.Output.SummaryPath, cfg.Output.WeightsPath)
	api := router.Group("/api/v1")
	{
		api.GET("/summary", artifacts.GetSummary)
		api.GET("/weights", artifacts.GetWeights)
		api.GET("/weights/:market_type", artifacts.GetMarketWeights)
	}

	return router
}
