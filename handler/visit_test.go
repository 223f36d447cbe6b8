package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"trackpixel/model"

	"github.com/gorilla/mux"
)

func visitRequest(method, trackCode, path, body string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	return mux.SetURLVars(r, map[string]string{"trackCode": trackCode})
}

func TestRecordVisit(t *testing.T) {
	h, st := setupTestHandler(t)
	seedPixel(t, st, "pix-1", "GOw3zsYG8I", true)
	seedPixel(t, st, "pix-2", "disabled99", false)

	t.Run("stores and returns the visit", func(t *testing.T) {
		body := `{"ip":"203.0.113.9","user_agent":"curl/8.0","referer":"https://www.google.com","browser":"Chrome","os":"Linux"}`
		w := httptest.NewRecorder()
		h.RecordVisit(w, visitRequest(http.MethodPost, "GOw3zsYG8I", "/api/visit/GOw3zsYG8I", body))

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d, body %s", w.Code, http.StatusOK, w.Body.String())
		}
		var resp struct {
			Code int         `json:"code"`
			Data model.Visit `json:"data"`
		}
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Code != 0 {
			t.Errorf("envelope code = %d, want 0", resp.Code)
		}
		if resp.Data.ID != 1 {
			t.Errorf("visit ID = %d, want the first server-assigned ID 1", resp.Data.ID)
		}
		if resp.Data.IP != "203.0.113.9" {
			t.Errorf("IP = %q", resp.Data.IP)
		}
		if resp.Data.CreatedAt == "" {
			t.Error("CreatedAt not assigned by the server")
		}
	})

	t.Run("empty IP becomes unknown", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.RecordVisit(w, visitRequest(http.MethodPost, "GOw3zsYG8I", "/api/visit/GOw3zsYG8I", `{"user_agent":"curl/8.0"}`))

		var resp struct {
			Data model.Visit `json:"data"`
		}
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Data.IP != "unknown" {
			t.Errorf("IP = %q, want unknown", resp.Data.IP)
		}
	})

	t.Run("unknown track code is 404", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.RecordVisit(w, visitRequest(http.MethodPost, "nosuchcode99", "/api/visit/nosuchcode99", `{"ip":"203.0.113.9"}`))

		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
		}
		var resp Envelope
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Code != 1 {
			t.Errorf("envelope code = %d, want 1", resp.Code)
		}
	})

	t.Run("disabled pixel drops the visit", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.RecordVisit(w, visitRequest(http.MethodPost, "disabled99", "/api/visit/disabled99", `{"ip":"203.0.113.9"}`))

		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
		}
		page, err := st.ListVisits(context.Background(), "pix-2", 1, 10)
		if err != nil {
			t.Fatalf("ListVisits() error = %v", err)
		}
		if page.Total != 0 {
			t.Errorf("disabled pixel stored %d visits, want 0", page.Total)
		}
	})

	t.Run("bad body is 400", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.RecordVisit(w, visitRequest(http.MethodPost, "GOw3zsYG8I", "/api/visit/GOw3zsYG8I", "{not json"))

		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})
}

func TestListVisits(t *testing.T) {
	h, st := setupTestHandler(t)
	pixel := seedPixel(t, st, "pix-1", "GOw3zsYG8I", true)

	ctx := context.Background()
	for i := 0; i < 45; i++ {
		_, err := st.AppendVisit(ctx, pixel.ID, model.Visit{IP: fmt.Sprintf("10.0.0.%d", i)})
		if err != nil {
			t.Fatalf("AppendVisit() error = %v", err)
		}
	}

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantLen    int
		wantFirst  int64
	}{
		{"defaults", "", http.StatusOK, 20, 45},
		{"second page", "?page=2&pageSize=20", http.StatusOK, 20, 25},
		{"last partial page", "?page=3&pageSize=20", http.StatusOK, 5, 5},
		{"out of range page", "?page=9&pageSize=20", http.StatusOK, 0, 0},
		{"pageSize clamped to max", "?page=1&pageSize=500", http.StatusOK, 45, 45},
		{"zero page rejected", "?page=0", http.StatusBadRequest, 0, 0},
		{"negative pageSize rejected", "?pageSize=-1", http.StatusBadRequest, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.ListVisits(w, visitRequest(http.MethodGet, "GOw3zsYG8I", "/api/visit/GOw3zsYG8I"+tt.query, ""))

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			var resp struct {
				Data model.VisitPage `json:"data"`
			}
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp.Data.Total != 45 {
				t.Errorf("total = %d, want 45", resp.Data.Total)
			}
			if len(resp.Data.Visits) != tt.wantLen {
				t.Fatalf("visits on page = %d, want %d", len(resp.Data.Visits), tt.wantLen)
			}
			if tt.wantLen > 0 && resp.Data.Visits[0].ID != tt.wantFirst {
				t.Errorf("first visit ID = %d, want %d (newest first)", resp.Data.Visits[0].ID, tt.wantFirst)
			}
		})
	}

	t.Run("unknown track code is 404", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ListVisits(w, visitRequest(http.MethodGet, "nosuchcode99", "/api/visit/nosuchcode99", ""))

		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
		}
	})
}
