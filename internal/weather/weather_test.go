package weather

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func testService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc := NewService(Config{APIKey: "test-key"})
	svc.baseURL = server.URL
	svc.geoURL = server.URL
	return svc
}

func currentPayload() map[string]any {
	return map[string]any{
		"weather": []map[string]any{{"description": "light rain", "icon": "10d"}},
		"main":    map[string]any{"temp": 61.4, "feels_like": 59.6, "humidity": 82},
		"wind":    map[string]any{"speed": 7.8},
	}
}

func TestCurrentRoundsFields(t *testing.T) {
	svc := testService(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("appid"); got != "test-key" {
			t.Errorf("appid = %q, want test-key", got)
		}
		if got := r.URL.Query().Get("units"); got != "imperial" {
			t.Errorf("units = %q, want imperial", got)
		}
		json.NewEncoder(w).Encode(currentPayload())
	})

	data, err := svc.Current(context.Background(), 47.61, -122.33)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if data.Temperature != 61 {
		t.Errorf("temperature = %d, want 61", data.Temperature)
	}
	if data.FeelsLike != 60 {
		t.Errorf("feels like = %d, want 60", data.FeelsLike)
	}
	if data.WindSpeed != 8 {
		t.Errorf("wind = %d, want 8", data.WindSpeed)
	}
	if data.Description != "light rain" || data.Icon != "10d" {
		t.Errorf("conditions = %q/%q", data.Description, data.Icon)
	}
	if data.Humidity != 82 {
		t.Errorf("humidity = %d, want 82", data.Humidity)
	}
}

func TestCurrentCachesPerCoordinate(t *testing.T) {
	var calls atomic.Int32
	svc := testService(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		json.NewEncoder(w).Encode(currentPayload())
	})

	ctx := context.Background()
	if _, err := svc.Current(ctx, 47.61, -122.33); err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	if _, err := svc.Current(ctx, 47.61, -122.33); err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("same coordinates hit the API %d times, want 1", got)
	}

	if _, err := svc.Current(ctx, 40.71, -74.00); err != nil {
		t.Fatalf("other location: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("new coordinates should miss the cache, calls = %d", got)
	}
}

func TestCurrentErrors(t *testing.T) {
	svc := testService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	if _, err := svc.Current(context.Background(), 1, 1); err == nil {
		t.Error("expected error on non-200 response")
	}

	unconfigured := NewService(Config{})
	if _, err := unconfigured.Current(context.Background(), 1, 1); err == nil {
		t.Error("expected error without api key")
	}
}

func TestSearch(t *testing.T) {
	svc := testService(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("limit"); got != "5" {
			t.Errorf("limit = %q, want 5", got)
		}
		json.NewEncoder(w).Encode([]map[string]any{
			{"name": "Seattle", "country": "US", "lat": 47.61, "lon": -122.33},
			{"name": "SeaTac", "country": "US", "lat": 47.44, "lon": -122.3},
		})
	})

	locations, err := svc.Search(context.Background(), "sea")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(locations) != 2 {
		t.Fatalf("locations = %d, want 2", len(locations))
	}
	if locations[0].Name != "Seattle, US" {
		t.Errorf("name = %q, want %q", locations[0].Name, "Seattle, US")
	}
	if locations[0].ID != "location-0" || locations[1].ID != "location-1" {
		t.Errorf("ids = %q, %q", locations[0].ID, locations[1].ID)
	}
}

func TestSearchEmptyResult(t *testing.T) {
	svc := testService(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{})
	})

	locations, err := svc.Search(context.Background(), "nowhere")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(locations) != 0 {
		t.Errorf("locations = %+v, want empty", locations)
	}
}
