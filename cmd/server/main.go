package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"core/internal/config"
	"core/internal/handler"
	"core/internal/logger"
	"core/internal/middleware"
	"core/internal/observability"
	"core/internal/repository"
	"core/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zlog.Sync()

	zlog.Info("Immo Invest Chat",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("git_commit", GitCommit))

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Conversation/settings stores are optional; the chat core is stateless
	var repo *repository.PostgresRepository
	if cfg.PostgreSQL.Enabled {
		repo, err = repository.NewPostgresRepository(
			cfg.GetPostgreSQLDSN(),
			cfg.PostgreSQL.MaxConnections,
			cfg.PostgreSQL.MaxIdleConnections,
		)
		if err != nil {
			zlog.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer repo.Close()
		zlog.Info("Connected to PostgreSQL database")
	} else {
		zlog.Warn("No database configured - conversation/settings endpoints disabled")
	}

	// Generative backend client
	llmClient := service.NewLLMClient(&cfg.LLM, zlog)
	if cfg.LLM.Enabled {
		zlog.Info("Generative backend client initialized",
			zap.String("api_base", cfg.LLM.APIBase),
			zap.String("model", cfg.LLM.Model),
			zap.Int("timeout_s", cfg.LLM.Timeout))
	} else {
		zlog.Warn("Generative backend is disabled - set LLM_API_KEY to enable chat")
	}

	// Commune directory client for automatic postal-code resolution
	geoClient := service.NewGeoClient(&cfg.Geo, zlog)

	// Chat pipeline
	chatService := service.NewChatService(llmClient, geoClient, service.DefaultLexicon(), &cfg.Chat, zlog)

	metrics := observability.NewMetrics(cfg.Metrics.Namespace)

	// Initialize handlers
	chatHandler := handler.NewChatHandler(chatService, metrics, zlog)
	conversationHandler := handler.NewConversationHandler(repo)
	settingsHandler := handler.NewSettingsHandler(repo)

	// Setup Gin router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.Server.AllowedOrigins, ",")
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":     "healthy",
			"service":    "immo-invest-chat",
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// Version endpoint
	router.GET("/version", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	router.GET("/metrics", gin.WrapH(observability.MetricsHandler()))

	// API routes; the auth gate runs before anything else
	apiV1 := router.Group("/api/v1", middleware.Auth(cfg.Auth.Tokens))
	{
		apiV1.POST("/chat", chatHandler.Chat)

		apiV1.POST("/conversations", conversationHandler.Create)
		apiV1.GET("/conversations", conversationHandler.List)
		apiV1.GET("/conversations/:id", conversationHandler.Get)
		apiV1.PUT("/conversations/:id", conversationHandler.Update)
		apiV1.DELETE("/conversations/:id", conversationHandler.Delete)

		apiV1.GET("/settings/:key", settingsHandler.Get)
		apiV1.PUT("/settings/:key", settingsHandler.Put)
	}

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	zlog.Info("Starting server", zap.String("addr", addr))

	go func() {
		if err := router.Run(addr); err != nil {
			zlog.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("Shutting down server")
}
