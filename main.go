package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"golang.org/x/sync/errgroup"

	database "github.com/nepaltrails/trip-planner/app/db"
	appLogger "github.com/nepaltrails/trip-planner/app/logger"
	"github.com/nepaltrails/trip-planner/app/observability/metrics"
	"github.com/nepaltrails/trip-planner/app/tracer"
	"github.com/nepaltrails/trip-planner/config"
	"github.com/nepaltrails/trip-planner/internal/api/analytics"
	"github.com/nepaltrails/trip-planner/internal/api/attractions"
	"github.com/nepaltrails/trip-planner/internal/api/conversion"
	"github.com/nepaltrails/trip-planner/internal/api/itinerary"
	"github.com/nepaltrails/trip-planner/internal/api/preferences"
	"github.com/nepaltrails/trip-planner/internal/api/recommend"
	"github.com/nepaltrails/trip-planner/internal/api/stats"
	"github.com/nepaltrails/trip-planner/internal/router"
)

func main() {
	// Use standard log until slog is configured, in case godotenv fails
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}

	logger := setupLogger()
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// --- Observability ---
	metricsHandler, err := tracer.InitTracingAndMetrics(logger)
	if err != nil {
		logger.Error("Failed to initialize tracing and metrics", slog.Any("error", err))
		os.Exit(1)
	}
	metrics.InitAppMetrics()

	// --- Database Setup ---
	dbConfig, err := database.NewDatabaseConfig(&cfg, logger)
	if err != nil {
		logger.Error("Failed to generate database config", slog.Any("error", err))
		os.Exit(1)
	}

	// Run migrations *before* initializing the main pool
	err = database.RunMigrations(dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to run database migrations", slog.Any("error", err))
		os.Exit(1)
	}

	pool, err := database.Init(dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if !database.WaitForDB(ctx, pool, logger) {
		logger.Error("Database not ready after waiting, exiting.")
		os.Exit(1)
	}

	// --- Dependency Injection ---
	attractionRepo := attractions.NewPostgresAttractionRepo(pool, logger)
	attractionService := attractions.NewService(attractionRepo, logger)
	attractionHandler := attractions.NewHandler(attractionService, logger)

	recommendService := recommend.NewService(attractionService, logger)
	recommendHandler := recommend.NewHandler(recommendService, logger)

	itineraryService := itinerary.NewService(attractionService, itinerary.Bounds{
		MinDays: cfg.Itinerary.MinDays,
		MaxDays: cfg.Itinerary.MaxDays,
	}, logger)
	itineraryHandler := itinerary.NewHandler(itineraryService, logger)

	preferenceRepo := preferences.NewPostgresPreferenceRepo(pool, logger)
	preferenceService := preferences.NewService(preferenceRepo, logger)
	preferenceHandler := preferences.NewHandler(preferenceService, logger)

	leadRepo := conversion.NewPostgresLeadRepo(pool, logger)
	mailer := conversion.NewMailer(cfg, logger)
	conversionService := conversion.NewService(leadRepo, mailer, attractionService, cfg.Mail.AdminEmail, logger)
	conversionHandler := conversion.NewHandler(conversionService, logger)

	statsService := stats.NewService(attractionService, cfg.Stats.CacheTTL, logger)
	statsHandler := stats.NewHandler(statsService, logger)

	analyticsRepo := analytics.NewPostgresAnalyticsRepo(pool, logger)
	analyticsHandler := analytics.NewHandler(analyticsRepo, logger)

	// Build the similarity model before serving traffic.
	if err := recommendService.Refit(ctx); err != nil {
		logger.Warn("Recommendation model not fitted, catalog may be empty", slog.Any("error", err))
	}

	// --- Router Setup ---
	mainRouter := router.SetupRouter(&router.Config{
		AttractionsHandler: attractionHandler,
		RecommendHandler:   recommendHandler,
		ItineraryHandler:   itineraryHandler,
		PreferencesHandler: preferenceHandler,
		ConversionHandler:  conversionHandler,
		StatsHandler:       statsHandler,
		AnalyticsHandler:   analyticsHandler,
		AdminJWTSecret:     []byte(cfg.Admin.JWTSecret),
	})

	mux := chi.NewMux()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(appLogger.StructuredLogger(logger))
	mux.Use(middleware.Recoverer)
	mux.Use(middleware.StripSlashes)
	mux.Use(middleware.Timeout(60 * time.Second))
	mux.Use(middleware.Compress(5, "application/json"))
	mux.Mount("/", mainRouter)

	// --- HTTP Servers ---
	serverAddress := fmt.Sprintf(":%s", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         serverAddress,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	metricsMux := chi.NewMux()
	metricsMux.Handle("/metrics", metricsHandler)
	metricsSrv := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.Handlers.Prometheus.Port),
		Handler:     metricsMux,
		ReadTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", serverAddress))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		logger.Info("Starting metrics server", slog.String("address", metricsSrv.Addr))
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()

		logger.Info("Shutdown signal received, starting graceful shutdown...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server graceful shutdown failed", slog.Any("error", err))
		}
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Metrics server graceful shutdown failed", slog.Any("error", err))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Application shut down complete.")
}

// setupLogger configures and returns the application logger.
func setupLogger() *slog.Logger {
	var logger *slog.Logger
	env := os.Getenv("APP_ENV")

	if env == "development" || env == "" {
		// Colored logs for development
		tintOpts := &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}
		logger = slog.New(tint.NewHandler(os.Stdout, tintOpts))
		log.Println("Initialized development logger (tint)")
	} else {
		// JSON logs for production
		jsonOpts := &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}
		logger = slog.New(slog.NewJSONHandler(os.Stdout, jsonOpts))
		log.Println("Initialized production logger (JSON)")
	}
	return logger
}
