package handlers

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"songcatalog/internal/metrics"
)

// RouterConfig collects the handlers and middleware dependencies of the router
type RouterConfig struct {
	Songs     *SongHandler
	Stats     *StatsHandler
	Health    *HealthHandler
	Dashboard *DashboardHandler

	// Metrics may be nil, which disables /metrics
	Metrics *metrics.Manager

	// MutationLimiter throttles POST, PUT and DELETE on songs; nil disables it
	MutationLimiter *rate.Limiter
}

// NewRouter wires every route onto a fresh gin engine
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger())
	if cfg.Metrics != nil {
		router.Use(cfg.Metrics.Middleware())
		router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	if cfg.Health != nil {
		router.GET("/health", cfg.Health.Health)
	}
	if cfg.Dashboard != nil {
		router.GET("/", cfg.Dashboard.Dashboard)
	}

	api := router.Group("/api/v1")
	{
		songs := api.Group("/songs")
		songs.GET("", cfg.Songs.ListSongs)
		songs.GET("/:id", cfg.Songs.GetSong)
		songs.POST("/validate", cfg.Songs.ValidateSong)

		mutating := songs.Group("", RateLimit(cfg.MutationLimiter))
		mutating.POST("", cfg.Songs.CreateSong)
		mutating.PUT("/:id", cfg.Songs.UpdateSong)
		mutating.DELETE("/:id", cfg.Songs.DeleteSong)

		statsGroup := api.Group("/stats")
		statsGroup.GET("", cfg.Stats.GetSummary)
		statsGroup.GET("/fields/:field", cfg.Stats.GetFieldStats)
		statsGroup.GET("/groups", cfg.Stats.GetGroupStats)
	}

	return router
}
