package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trackpixel/cache"
	"trackpixel/config"
	_ "trackpixel/docs" // Swagger docs
	"trackpixel/handler"
	appLogger "trackpixel/logger"
	"trackpixel/middleware"
	"trackpixel/recorder"
	redisClient "trackpixel/redis"
	"trackpixel/store"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title TrackPixel API
// @version 1.0
// @description Tracking pixel analytics service: pixel management, visit ingestion, and PV/UV analytics over Redis.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @tag.name Track
// @tag.description The tracking pixel itself: impression and lead-capture ingestion

// @tag.name Visits
// @tag.description Visit log writes and paginated reads

// @tag.name Pixels
// @tag.description Pixel management

// @tag.name Analytics
// @tag.description Trend, source breakdown, and dashboard aggregates

// @tag.name System
// @tag.description Health checks and cache metrics

func main() {
	// Initialize logger
	appLogger.Initialize()

	// Load configuration
	cfg := config.MustLoadConfig()
	log.Info().Msg("Configuration loaded successfully")

	// Initialize Redis client and store
	rdb := redisClient.NewClient(cfg.Redis)
	pixelStore := store.New(rdb)

	// Initialize cache (if enabled)
	var cacheClient *cache.Cache
	if cfg.Cache.Enabled {
		var err error
		cacheClient, err = cache.New(cfg.Cache)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize cache")
		}
	} else {
		log.Info().Msg("Cache disabled in configuration")
	}

	// Select the visit recorder implementation
	var rec recorder.Recorder
	switch cfg.Pixel.RecordMode {
	case "http":
		origin := cfg.Pixel.RecordEndpoint
		if origin == "" {
			origin = fmt.Sprintf("%s://%s:%s", cfg.WebServer.Scheme, cfg.WebServer.IP, cfg.WebServer.Port)
		}
		rec = recorder.NewHTTP(origin, time.Duration(cfg.Pixel.RecordTimeout)*time.Second)
		log.Info().Str("origin", origin).Msg("Using HTTP visit recorder")
	default:
		rec = recorder.NewLocal(pixelStore, cacheClient)
		log.Info().Msg("Using local visit recorder")
	}

	// Create handler with dependency injection
	pixelHandler := handler.NewPixelHandler(pixelStore, cacheClient, rec, cfg)

	// Set up router
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger)

	// Tracking pixel routes: no rate limiting or CORS machinery in front of
	// these; pixel delivery must stay unconditional.
	r.HandleFunc("/track/{code}", pixelHandler.TrackPixel).Methods("GET")
	r.HandleFunc("/track/{code}", pixelHandler.TrackLead).Methods("POST")

	// API routes for the dashboard frontend
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.CORS)
	api.Use(rateLimiter.Limit)

	api.HandleFunc("/visit/{trackCode}", pixelHandler.RecordVisit).Methods("POST")
	api.HandleFunc("/visit/{trackCode}", pixelHandler.ListVisits).Methods("GET")

	api.HandleFunc("/pixels", pixelHandler.CreatePixel).Methods("POST")
	api.HandleFunc("/pixels", pixelHandler.ListPixels).Methods("GET")
	api.HandleFunc("/pixels/{id}", pixelHandler.GetPixel).Methods("GET")
	api.HandleFunc("/pixels/{id}", pixelHandler.UpdatePixel).Methods("PUT")
	api.HandleFunc("/pixels/{id}", pixelHandler.DeletePixel).Methods("DELETE")
	api.HandleFunc("/pixels/{id}/status", pixelHandler.UpdatePixelStatus).Methods("PUT")
	api.HandleFunc("/pixels/{id}/qr", pixelHandler.PixelQR).Methods("GET")

	api.HandleFunc("/analytics", pixelHandler.Analytics).Methods("GET")
	api.HandleFunc("/dashboard/stats", pixelHandler.DashboardStats).Methods("GET")

	// System routes
	r.HandleFunc("/health", pixelHandler.HealthCheck).Methods("GET")
	r.HandleFunc("/cache/metrics", pixelHandler.CacheMetrics).Methods("GET")

	// Swagger UI
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// Configure HTTP server
	serverAddress := fmt.Sprintf("%s:%s", cfg.WebServer.IP, cfg.WebServer.Port)
	server := &http.Server{
		Addr:         serverAddress,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.WebServer.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WebServer.WriteTimeout) * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("address", serverAddress).
			Str("scheme", cfg.WebServer.Scheme).
			Msg("Starting server")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.WebServer.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	// Close cache
	if cacheClient != nil {
		cacheClient.Close()
	}

	// Close Redis connection
	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close Redis connection")
	}

	log.Info().Msg("Server stopped gracefully")
}
