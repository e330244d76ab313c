package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alimgiray/vibeboard/internal/handlers"
	"github.com/alimgiray/vibeboard/internal/middleware"
	"github.com/alimgiray/vibeboard/internal/services"
	"github.com/alimgiray/vibeboard/pkg/config"
	"github.com/alimgiray/vibeboard/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	if err := config.Load(); err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	logger.Init()
	gin.SetMode(config.AppConfig.Server.Mode)

	// Initialize services
	githubService := services.NewGitHubService(
		config.AppConfig.GitHub.Token,
		config.AppConfig.Collector.PageSize,
	)
	collectorService := services.NewCollectorService(
		githubService,
		config.AppConfig.Collector.Workers,
		config.AppConfig.Collector.MaxPages,
	)
	detectorService := services.NewDetectorService()
	resolverService := services.NewLabelResolverService()
	labelRuleService := services.NewLabelRuleService()
	aggregatorService := services.NewAggregatorService()
	leaderboardService := services.NewLeaderboardService(
		collectorService,
		detectorService,
		resolverService,
		labelRuleService,
		aggregatorService,
	)
	exportService := services.NewExportService()

	// Initialize handlers
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService, exportService)
	labelRuleHandler := handlers.NewLabelRuleHandler(labelRuleService)

	// Initialize router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())

	setupRoutes(router, leaderboardHandler, labelRuleHandler)

	// Setup server
	server := &http.Server{
		Addr:         ":" + config.AppConfig.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(config.AppConfig.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(config.AppConfig.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Infof("Server starting on :%s", config.AppConfig.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Infof("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}
	logger.Infof("Server stopped")
}

func setupRoutes(router *gin.Engine, leaderboardHandler *handlers.LeaderboardHandler, labelRuleHandler *handlers.LabelRuleHandler) {
	router.GET("/health", handlers.Health)

	api := router.Group("/api")
	{
		api.POST("/leaderboard", leaderboardHandler.BuildLeaderboard)
		api.POST("/leaderboard/export", leaderboardHandler.ExportLeaderboard)

		api.GET("/label-rules", labelRuleHandler.ListRules)
		api.POST("/label-rules", labelRuleHandler.CreateRule)
		api.PUT("/label-rules/:id", labelRuleHandler.UpdateRule)
		api.DELETE("/label-rules/:id", labelRuleHandler.DeleteRule)
	}
}
