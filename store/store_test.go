package store

import (
	"context"
	"testing"
	"time"

	"trackpixel/model"
	"trackpixel/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

func setupTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	s, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: s.Addr(),
	})

	return New(client), s
}

func testPixel(id, trackCode string) model.Pixel {
	return model.Pixel{
		ID:        id,
		Name:      "Homepage",
		TrackCode: trackCode,
		Status:    true,
		CreatedAt: time.Now(),
	}
}

func TestPixelLifecycle(t *testing.T) {
	store, s := setupTestStore(t)
	defer s.Close()

	ctx := context.Background()
	pixel := testPixel("pix-1", "GOw3zsYG8I")

	if err := store.CreatePixel(ctx, pixel); err != nil {
		t.Fatalf("CreatePixel() error = %v", err)
	}

	t.Run("GetPixel", func(t *testing.T) {
		got, err := store.GetPixel(ctx, "pix-1")
		if err != nil {
			t.Fatalf("GetPixel() error = %v", err)
		}
		if got.TrackCode != "GOw3zsYG8I" {
			t.Errorf("TrackCode = %v, want GOw3zsYG8I", got.TrackCode)
		}
	})

	t.Run("GetPixelByCode", func(t *testing.T) {
		got, err := store.GetPixelByCode(ctx, "GOw3zsYG8I")
		if err != nil {
			t.Fatalf("GetPixelByCode() error = %v", err)
		}
		if got.ID != "pix-1" {
			t.Errorf("ID = %v, want pix-1", got.ID)
		}
	})

	t.Run("GetPixelByCode_Unknown", func(t *testing.T) {
		_, err := store.GetPixelByCode(ctx, "nosuchcode")
		if err != utils.ErrPixelNotFound {
			t.Errorf("error = %v, want ErrPixelNotFound", err)
		}
	})

	t.Run("UpdatePixel", func(t *testing.T) {
		pixel.Name = "Homepage v2"
		pixel.Status = false
		if err := store.UpdatePixel(ctx, pixel); err != nil {
			t.Fatalf("UpdatePixel() error = %v", err)
		}
		got, _ := store.GetPixel(ctx, "pix-1")
		if got.Name != "Homepage v2" || got.Status {
			t.Errorf("update not applied: %+v", got)
		}
	})

	t.Run("DeletePixel", func(t *testing.T) {
		if err := store.DeletePixel(ctx, "pix-1"); err != nil {
			t.Fatalf("DeletePixel() error = %v", err)
		}
		if _, err := store.GetPixel(ctx, "pix-1"); err != utils.ErrPixelNotFound {
			t.Errorf("pixel still present after delete, err = %v", err)
		}
		if _, err := store.GetPixelByCode(ctx, "GOw3zsYG8I"); err != utils.ErrPixelNotFound {
			t.Errorf("code index still present after delete, err = %v", err)
		}
	})
}

func TestAppendVisit_AssignsMonotonicIDs(t *testing.T) {
	store, s := setupTestStore(t)
	defer s.Close()

	ctx := context.Background()
	if err := store.CreatePixel(ctx, testPixel("pix-1", "abc12345")); err != nil {
		t.Fatalf("CreatePixel() error = %v", err)
	}

	var lastID int64
	for i := 0; i < 5; i++ {
		stored, err := store.AppendVisit(ctx, "pix-1", model.Visit{
			IP:        "203.0.113.7",
			UserAgent: "Mozilla/5.0 Chrome/91.0",
			Browser:   "Chrome",
			OS:        "Windows",
		})
		if err != nil {
			t.Fatalf("AppendVisit() error = %v", err)
		}
		if stored.ID <= lastID {
			t.Errorf("ID %d not greater than previous %d", stored.ID, lastID)
		}
		if stored.CreatedAt == "" {
			t.Error("CreatedAt not assigned")
		}
		lastID = stored.ID
	}
}

func TestListVisits_Pagination(t *testing.T) {
	store, s := setupTestStore(t)
	defer s.Close()

	ctx := context.Background()
	store.CreatePixel(ctx, testPixel("pix-1", "abc12345"))

	for i := 0; i < 45; i++ {
		if _, err := store.AppendVisit(ctx, "pix-1", model.Visit{IP: "203.0.113.7"}); err != nil {
			t.Fatalf("AppendVisit() error = %v", err)
		}
	}

	tests := []struct {
		name       string
		page       int
		pageSize   int
		wantLen    int
		wantPages  int
		wantNewest int64 // expected ID of first visit on the page
	}{
		{"First page", 1, 20, 20, 3, 45},
		{"Middle page", 2, 20, 20, 3, 25},
		{"Last partial page", 3, 20, 5, 3, 5},
		{"Out of range page", 4, 20, 0, 3, 0},
		{"Small page size", 1, 10, 10, 5, 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := store.ListVisits(ctx, "pix-1", tt.page, tt.pageSize)
			if err != nil {
				t.Fatalf("ListVisits() error = %v", err)
			}
			if page.Total != 45 {
				t.Errorf("Total = %d, want 45", page.Total)
			}
			if page.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", page.TotalPages, tt.wantPages)
			}
			if len(page.Visits) != tt.wantLen {
				t.Fatalf("len(Visits) = %d, want %d", len(page.Visits), tt.wantLen)
			}
			if tt.wantLen > 0 && page.Visits[0].ID != tt.wantNewest {
				t.Errorf("first visit ID = %d, want %d (newest first)", page.Visits[0].ID, tt.wantNewest)
			}
			// Newest-first within the page
			for i := 1; i < len(page.Visits); i++ {
				if page.Visits[i].ID >= page.Visits[i-1].ID {
					t.Errorf("visits not sorted newest first at index %d", i)
				}
			}
		})
	}
}

func TestListVisits_CrossPixelIsolation(t *testing.T) {
	store, s := setupTestStore(t)
	defer s.Close()

	ctx := context.Background()
	store.CreatePixel(ctx, testPixel("pix-1", "code11111"))
	store.CreatePixel(ctx, testPixel("pix-2", "code22222"))

	store.AppendVisit(ctx, "pix-1", model.Visit{IP: "203.0.113.1"})
	store.AppendVisit(ctx, "pix-2", model.Visit{IP: "203.0.113.2"})
	store.AppendVisit(ctx, "pix-2", model.Visit{IP: "203.0.113.3"})

	page, err := store.ListVisits(ctx, "pix-1", 1, 20)
	if err != nil {
		t.Fatalf("ListVisits() error = %v", err)
	}
	if page.Total != 1 {
		t.Fatalf("Total = %d, want 1", page.Total)
	}
	for _, visit := range page.Visits {
		if visit.PixelID != "pix-1" {
			t.Errorf("visit from pixel %s leaked into pix-1's page", visit.PixelID)
		}
	}
}

func TestPVAndUVCounters(t *testing.T) {
	store, s := setupTestStore(t)
	defer s.Close()

	ctx := context.Background()
	store.CreatePixel(ctx, testPixel("pix-1", "abc12345"))

	// Same visitor twice, second visitor once
	store.AppendVisit(ctx, "pix-1", model.Visit{IP: "203.0.113.7", UserAgent: "Chrome"})
	store.AppendVisit(ctx, "pix-1", model.Visit{IP: "203.0.113.7", UserAgent: "Chrome"})
	store.AppendVisit(ctx, "pix-1", model.Visit{IP: "198.51.100.9", UserAgent: "Firefox"})

	pv, err := store.PV(ctx, "pix-1")
	if err != nil {
		t.Fatalf("PV() error = %v", err)
	}
	if pv != 3 {
		t.Errorf("PV = %d, want 3", pv)
	}

	uv, err := store.UV(ctx, "pix-1")
	if err != nil {
		t.Fatalf("UV() error = %v", err)
	}
	if uv != 2 {
		t.Errorf("UV = %d, want 2", uv)
	}
}

func TestTrendRange(t *testing.T) {
	store, s := setupTestStore(t)
	defer s.Close()

	ctx := context.Background()
	store.CreatePixel(ctx, testPixel("pix-1", "abc12345"))
	store.AppendVisit(ctx, "pix-1", model.Visit{IP: "203.0.113.7", UserAgent: "Chrome"})

	today := time.Now()
	points, err := store.TrendRange(ctx, "pix-1", today.AddDate(0, 0, -2), today)
	if err != nil {
		t.Fatalf("TrendRange() error = %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("len(points) = %d, want 3", len(points))
	}

	// Only today carries traffic; earlier days are zero-filled
	last := points[len(points)-1]
	if last.PV != 1 || last.UV != 1 {
		t.Errorf("today's point = %+v, want PV=1 UV=1", last)
	}
	for _, p := range points[:len(points)-1] {
		if p.PV != 0 || p.UV != 0 {
			t.Errorf("expected zero-filled point, got %+v", p)
		}
	}
}
