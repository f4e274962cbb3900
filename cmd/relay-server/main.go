package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/instantshare/relay/internal/observability"
	"github.com/instantshare/relay/internal/session"
	"github.com/instantshare/relay/pkg/config"
	"github.com/instantshare/relay/pkg/types"
)

func main() {
	// Load configuration
	cfg := config.LoadFromEnv()

	// Setup logging
	setupLogging(cfg.Logging)

	log.Info().Msg("starting InstantShare relay server")

	// Initialize the session registry
	registry, err := session.NewRegistry(&cfg.Relay)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize session registry")
	}

	// Initialize metrics
	metrics := observability.InitMetrics()

	// Start the background expiry sweep
	sweeper := session.NewSweeper(registry, cfg.Relay.SessionTTL, cfg.Relay.SweepInterval)
	sweeper.OnSweep = func(removed int) {
		metrics.SessionsSwept.Add(float64(removed))
		metrics.ActiveSessions.Set(float64(registry.Len()))
	}
	sweeper.Start()
	defer sweeper.Stop()

	// Setup HTTP server
	router := setupRouter(registry, metrics, &cfg.Relay)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", server.Addr).Msg("listening for relay requests")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	} else {
		log.Info().Msg("server shutdown complete")
	}
}

func setupLogging(cfg config.LoggingConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func setupRouter(registry *session.Registry, metrics *observability.Metrics, relayCfg *config.RelayConfig) *gin.Engine {
	// Set Gin mode based on log level
	if zerolog.GlobalLevel() == zerolog.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "instantshare-relay",
			"time":    time.Now().UTC(),
		})
	})

	// Metrics
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// API routes
	api := router.Group("/api")
	{
		api.GET("/session", handleCreateSession(registry, metrics))
		api.POST("/session", handleCreateSessionWithCode(registry, metrics))
		api.GET("/session/:sessionId", handleDescribeSession(registry))
		api.POST("/session/:sessionId/upload", handleUpload(registry, metrics))
		api.GET("/session/:sessionId/file/:fileId", handleFetchFile(registry, metrics))
	}

	// Optionally serve the client bundle, falling back to index.html so
	// client-side routes resolve
	if relayCfg.StaticDir != "" {
		router.NoRoute(spaHandler(relayCfg.StaticDir))
	}

	return router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// spaHandler serves files from dir, with index.html as the catch-all
// for paths that are not real files
func spaHandler(dir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet || strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, types.APIResponse{Success: false, Error: "not found"})
			return
		}

		path := filepath.Join(dir, filepath.Clean("/"+c.Request.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			c.File(path)
			return
		}
		c.File(filepath.Join(dir, "index.html"))
	}
}
