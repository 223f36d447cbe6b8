package store

import (
	"context"
	"encoding/json"
	"trackpixel/model"
	"trackpixel/utils"

	"github.com/go-redis/redis/v8"
)

const (
	codeIndexKey  = "code_index"  // Redis hash: track code -> pixel ID
	pixelIndexKey = "pixel_index" // Redis hash: pixel ID -> track code
)

// Store owns the Redis layout for pixels and their visit logs. Handlers go
// through it instead of touching Redis directly so the storage can be
// swapped without touching handler logic.
type Store struct {
	redis *redis.Client
}

func New(redisClient *redis.Client) *Store {
	return &Store{redis: redisClient}
}

// Ping reports whether the backing Redis is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.redis.Ping(ctx).Err()
}

func pixelKey(id string) string { return "pixel:" + id }

// CreatePixel stores a new pixel and registers it in both indexes.
func (s *Store) CreatePixel(ctx context.Context, pixel model.Pixel) error {
	data, err := json.Marshal(pixel)
	if err != nil {
		return err
	}

	if err := s.redis.Set(ctx, pixelKey(pixel.ID), data, 0).Err(); err != nil {
		return err
	}
	if err := s.redis.HSet(ctx, codeIndexKey, pixel.TrackCode, pixel.ID).Err(); err != nil {
		return err
	}
	return s.redis.HSet(ctx, pixelIndexKey, pixel.ID, pixel.TrackCode).Err()
}

// GetPixel fetches a pixel by ID. Returns utils.ErrPixelNotFound when absent.
func (s *Store) GetPixel(ctx context.Context, id string) (*model.Pixel, error) {
	data, err := s.redis.Get(ctx, pixelKey(id)).Bytes()
	if err == redis.Nil {
		return nil, utils.ErrPixelNotFound
	} else if err != nil {
		return nil, err
	}

	var pixel model.Pixel
	if err := json.Unmarshal(data, &pixel); err != nil {
		return nil, err
	}
	return &pixel, nil
}

// GetPixelByCode resolves a track code to its pixel.
// Returns utils.ErrPixelNotFound for unknown codes.
func (s *Store) GetPixelByCode(ctx context.Context, trackCode string) (*model.Pixel, error) {
	id, err := s.redis.HGet(ctx, codeIndexKey, trackCode).Result()
	if err == redis.Nil {
		return nil, utils.ErrPixelNotFound
	} else if err != nil {
		return nil, err
	}
	return s.GetPixel(ctx, id)
}

// TrackCodeExists reports whether a track code is already registered.
func (s *Store) TrackCodeExists(ctx context.Context, trackCode string) (bool, error) {
	n, err := s.redis.HExists(ctx, codeIndexKey, trackCode).Result()
	if err != nil {
		return false, err
	}
	return n, nil
}

// ListPixels returns all pixels, unordered. Callers sort as needed.
func (s *Store) ListPixels(ctx context.Context) ([]model.Pixel, error) {
	index, err := s.redis.HGetAll(ctx, pixelIndexKey).Result()
	if err != nil {
		return nil, err
	}

	pixels := make([]model.Pixel, 0, len(index))
	for id := range index {
		pixel, err := s.GetPixel(ctx, id)
		if err != nil {
			// Index entry without a record; skip rather than fail the listing
			continue
		}
		pixels = append(pixels, *pixel)
	}
	return pixels, nil
}

// UpdatePixel overwrites a pixel's record. The track code is immutable;
// callers must not change it.
func (s *Store) UpdatePixel(ctx context.Context, pixel model.Pixel) error {
	data, err := json.Marshal(pixel)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, pixelKey(pixel.ID), data, 0).Err()
}

// DeletePixel removes a pixel, its index entries, and its entire visit log.
func (s *Store) DeletePixel(ctx context.Context, id string) error {
	pixel, err := s.GetPixel(ctx, id)
	if err != nil {
		return err
	}

	if err := s.redis.HDel(ctx, codeIndexKey, pixel.TrackCode).Err(); err != nil {
		return err
	}
	if err := s.redis.HDel(ctx, pixelIndexKey, id).Err(); err != nil {
		return err
	}

	keys := []string{
		pixelKey(id),
		visitLogKey(id),
		visitSeqKey(id),
		pvKey(id),
		uvKey(id),
	}

	// Per-day counters share the pv:/uv: prefixes
	for _, pattern := range []string{pvKey(id) + ":*", uvKey(id) + ":*"} {
		dayKeys, err := s.redis.Keys(ctx, pattern).Result()
		if err == nil {
			keys = append(keys, dayKeys...)
		}
	}

	return s.redis.Del(ctx, keys...).Err()
}
