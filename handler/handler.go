package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"trackpixel/cache"
	"trackpixel/config"
	"trackpixel/recorder"
	"trackpixel/store"

	"github.com/rs/zerolog/log"
)

const maxCodeRetries = 5

// PixelHandler serves the tracking pixel, the visit API, pixel CRUD, and
// the analytics endpoints.
type PixelHandler struct {
	store    *store.Store
	cache    *cache.Cache
	recorder recorder.Recorder
	config   config.Config
	baseURL  string
}

// NewPixelHandler creates the handler with its dependencies injected.
func NewPixelHandler(s *store.Store, c *cache.Cache, rec recorder.Recorder, cfg config.Config) *PixelHandler {
	// Use configured base_url if provided, otherwise construct from scheme, IP, and port
	baseURL := cfg.WebServer.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("%s://%s:%s", cfg.WebServer.Scheme, cfg.WebServer.IP, cfg.WebServer.Port)
	}
	return &PixelHandler{
		store:    s,
		cache:    c,
		recorder: rec,
		config:   cfg,
		baseURL:  baseURL,
	}
}

func (h *PixelHandler) opTimeout() time.Duration {
	return time.Duration(h.config.Redis.OperationTimeout) * time.Second
}

func (h *PixelHandler) recordTimeout() time.Duration {
	return time.Duration(h.config.Pixel.RecordTimeout) * time.Second
}

// HealthCheck handles GET /health
// @Summary Health check
// @Description Returns service health status and Redis connectivity
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string "Service is healthy"
// @Failure 503 {object} map[string]string "Service is unhealthy"
// @Router /health [get]
func (h *PixelHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		log.Error().Err(err).Msg("Redis health check failed")
		SendError(w, http.StatusServiceUnavailable, errors.New("redis unavailable"), "Service unhealthy")
		return
	}

	SendData(w, map[string]string{
		"status": "healthy",
		"redis":  "connected",
	})
}

// CacheMetrics handles GET /cache/metrics
// @Summary Cache performance metrics
// @Description Returns pixel cache metrics including hit rate, misses, and evictions
// @Tags System
// @Produce json
// @Success 200 {object} cache.MetricsSnapshot "Cache metrics"
// @Failure 503 {object} Envelope "Cache is disabled"
// @Router /cache/metrics [get]
func (h *PixelHandler) CacheMetrics(w http.ResponseWriter, r *http.Request) {
	if !h.config.Cache.Enabled || h.cache == nil {
		SendError(w, http.StatusServiceUnavailable, errors.New("cache is disabled"), "")
		return
	}

	SendData(w, h.cache.GetMetricsSnapshot())
}
