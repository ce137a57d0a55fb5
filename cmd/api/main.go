package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"carbonlens/reporting-backend/internal/analytics"
	"carbonlens/reporting-backend/internal/config"
	"carbonlens/reporting-backend/internal/observability"
	"carbonlens/reporting-backend/internal/render"
	"carbonlens/reporting-backend/internal/report"
)

func main() {
	// .env is optional; real deployments use environment variables
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		panic(err)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Logging.Level == "debug" {
		logger, _ = zap.NewDevelopment()
	} else {
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	// Render engine: headless Chromium behind an admission semaphore so
	// load spikes cannot spawn unbounded browser processes
	engine := render.Limit(render.NewChromiumEngine(cfg.Renderer, logger), cfg.Renderer.MaxConcurrent)
	defer engine.Close()

	// Optional upstream analytics client for server-side report generation
	var fetcher *analytics.Client
	if cfg.Upstream.BaseURL != "" {
		fetcher = analytics.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, cfg.Upstream.MaxRetries, logger)
	}

	// Initialize Reporting Module
	reportService := report.NewService(engine, logger)
	reportHandler := report.NewHandler(reportService, fetcher, logger)

	// Setup Router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(observability.RequestLogger(logger))
	router.Use(observability.Metrics())

	// CORS Middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Register Routes
	api := router.Group("/api/v1")
	{
		reportHandler.RegisterRoutes(api)
	}

	// Health Check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
		})
	})

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Start Server
	srv := &http.Server{
		Addr:         cfg.Server.GetServerAddr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	logger.Info("Server started", zap.String("addr", srv.Addr))

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}
