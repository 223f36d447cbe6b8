package handler

import (
	"context"
	"testing"
	"time"

	"trackpixel/config"
	"trackpixel/model"
	"trackpixel/recorder"
	"trackpixel/store"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

func testConfig() config.Config {
	return config.Config{
		WebServer: config.WebServerConfig{
			Scheme: "http",
			IP:     "127.0.0.1",
			Port:   "8080",
		},
		Redis: config.RedisConfig{OperationTimeout: 5},
		Pixel: config.PixelConfig{
			CodeMinLength:   8,
			CodeMaxLength:   12,
			RecordTimeout:   2,
			DefaultPageSize: 20,
			MaxPageSize:     100,
		},
	}
}

// setupTestHandler wires a handler against miniredis with a local recorder
// and no cache.
func setupTestHandler(t *testing.T) (*PixelHandler, *store.Store) {
	t.Helper()

	s, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(s.Close)

	client := redis.NewClient(&redis.Options{
		Addr: s.Addr(),
	})
	st := store.New(client)

	return NewPixelHandler(st, nil, recorder.NewLocal(st, nil), testConfig()), st
}

func seedPixel(t *testing.T, st *store.Store, id, trackCode string, status bool) model.Pixel {
	t.Helper()

	pixel := model.Pixel{
		ID:        id,
		Name:      "Homepage",
		TrackCode: trackCode,
		Status:    status,
		CreatedAt: time.Now(),
	}
	if err := st.CreatePixel(context.Background(), pixel); err != nil {
		t.Fatalf("CreatePixel() error = %v", err)
	}
	return pixel
}

// recorderFunc adapts a function to the recorder interface so tests can
// observe or fail recording without touching the store.
type recorderFunc func(ctx context.Context, trackCode string, visit model.Visit) error

func (f recorderFunc) Record(ctx context.Context, trackCode string, visit model.Visit) error {
	return f(ctx, trackCode, visit)
}
