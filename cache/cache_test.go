package cache

import (
	"testing"
	"time"

	"trackpixel/config"
	"trackpixel/model"
)

func testConfig() config.CacheConfig {
	return config.CacheConfig{
		Enabled:     true,
		MaxSizeMB:   10,
		TTLSeconds:  2, // short TTL for expiry test
		CounterSize: 1000,
	}
}

func TestCacheBasicOperations(t *testing.T) {
	c, err := New(testConfig())
	if err != nil {
		t.Fatalf("Failed to create cache: %v", err)
	}
	defer c.Close()

	pixel := model.Pixel{ID: "pix-1", Name: "Homepage", TrackCode: "GOw3zsYG8I", Status: true}

	t.Run("SetPixel_and_GetPixel", func(t *testing.T) {
		if ok := c.SetPixel(pixel.TrackCode, pixel); !ok {
			t.Error("Failed to set pixel in cache")
		}

		// Wait for async admission
		time.Sleep(10 * time.Millisecond)

		got, found := c.GetPixel(pixel.TrackCode)
		if !found {
			t.Fatal("Pixel not found in cache")
		}
		if got.ID != pixel.ID || got.TrackCode != pixel.TrackCode {
			t.Errorf("Got %+v, want %+v", got, pixel)
		}
	})

	t.Run("GetPixel_Unknown", func(t *testing.T) {
		if _, found := c.GetPixel("nosuchcode"); found {
			t.Error("Expected track code not to be found")
		}
	})

	t.Run("Invalidate", func(t *testing.T) {
		c.SetPixel(pixel.TrackCode, pixel)
		time.Sleep(10 * time.Millisecond)

		c.Invalidate(pixel.TrackCode)
		time.Sleep(10 * time.Millisecond)

		if _, found := c.GetPixel(pixel.TrackCode); found {
			t.Error("Pixel still cached after Invalidate")
		}
	})
}

func TestCacheTTLExpiry(t *testing.T) {
	c, err := New(testConfig())
	if err != nil {
		t.Fatalf("Failed to create cache: %v", err)
	}
	defer c.Close()

	pixel := model.Pixel{ID: "pix-1", TrackCode: "abc12345"}
	c.SetPixel(pixel.TrackCode, pixel)
	time.Sleep(10 * time.Millisecond)

	if _, found := c.GetPixel(pixel.TrackCode); !found {
		t.Fatal("Pixel not cached")
	}

	// Wait past the 2s TTL
	time.Sleep(2100 * time.Millisecond)

	if _, found := c.GetPixel(pixel.TrackCode); found {
		t.Error("Pixel still cached after TTL expiry")
	}
}

func TestNilCacheIsSafe(t *testing.T) {
	var c *Cache

	if _, found := c.GetPixel("anything"); found {
		t.Error("nil cache returned a hit")
	}
	if ok := c.SetPixel("anything", model.Pixel{}); ok {
		t.Error("nil cache accepted a set")
	}
	c.Invalidate("anything")
	c.Close()
}
