package cache

import (
	"time"

	"trackpixel/config"
	"trackpixel/model"

	"github.com/dgraph-io/ristretto"
	"github.com/rs/zerolog/log"
)

// pixelCost is the admission cost charged per cached pixel record.
const pixelCost = 1024

// Cache keeps recently resolved pixels in process memory, keyed by track
// code, so the /track hot path avoids a Redis round trip per impression.
type Cache struct {
	client *ristretto.Cache
	ttl    time.Duration
}

// New creates a cache instance with the given configuration.
func New(cfg config.CacheConfig) (*Cache, error) {
	// Convert MB to bytes
	maxCost := int64(cfg.MaxSizeMB) * 1024 * 1024

	client, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: int64(cfg.CounterSize), // keys tracked for admission frequency
		MaxCost:     maxCost,
		BufferItems: 64,
		Metrics:     true,
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("max_size_mb", cfg.MaxSizeMB).
		Int("ttl_seconds", cfg.TTLSeconds).
		Int("counter_size", cfg.CounterSize).
		Msg("Pixel cache initialized")

	return &Cache{
		client: client,
		ttl:    time.Duration(cfg.TTLSeconds) * time.Second,
	}, nil
}

// GetPixel returns the cached pixel for a track code, if present.
func (c *Cache) GetPixel(trackCode string) (*model.Pixel, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	value, found := c.client.Get(trackCode)
	if !found {
		return nil, false
	}
	pixel, ok := value.(model.Pixel)
	if !ok {
		return nil, false
	}
	return &pixel, true
}

// SetPixel caches a pixel under its track code with the configured TTL.
func (c *Cache) SetPixel(trackCode string, pixel model.Pixel) bool {
	if c == nil || c.client == nil {
		return false
	}
	return c.client.SetWithTTL(trackCode, pixel, pixelCost, c.ttl)
}

// Invalidate drops a track code from the cache. Called on pixel update,
// status toggle, and delete so stale records never serve the /track path
// longer than one write.
func (c *Cache) Invalidate(trackCode string) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(trackCode)
}

// Close cleanly shuts down the cache.
func (c *Cache) Close() {
	if c != nil && c.client != nil {
		c.client.Close()
		log.Info().Msg("Pixel cache closed")
	}
}

// MetricsSnapshot is the JSON shape served by the cache metrics endpoint.
type MetricsSnapshot struct {
	Hits        uint64  `json:"hits"`
	Misses      uint64  `json:"misses"`
	KeysAdded   uint64  `json:"keys_added"`
	KeysEvicted uint64  `json:"keys_evicted"`
	CostAdded   uint64  `json:"cost_added"`
	CostEvicted uint64  `json:"cost_evicted"`
	HitRatio    float64 `json:"hit_ratio"`
	TTLSeconds  int     `json:"ttl_seconds"`
}

// GetMetricsSnapshot returns current cache metrics as a snapshot.
func (c *Cache) GetMetricsSnapshot() MetricsSnapshot {
	if c == nil || c.client == nil || c.client.Metrics == nil {
		return MetricsSnapshot{}
	}

	m := c.client.Metrics
	hits := m.Hits()
	misses := m.Misses()
	total := hits + misses

	hitRatio := 0.0
	if total > 0 {
		hitRatio = float64(hits) / float64(total)
	}

	return MetricsSnapshot{
		Hits:        hits,
		Misses:      misses,
		KeysAdded:   m.KeysAdded(),
		KeysEvicted: m.KeysEvicted(),
		CostAdded:   m.CostAdded(),
		CostEvicted: m.CostEvicted(),
		HitRatio:    hitRatio,
		TTLSeconds:  int(c.ttl.Seconds()),
	}
}
