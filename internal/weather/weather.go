package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"sync"
	"time"
)

const (
	cacheTTL    = 30 * time.Minute
	searchLimit = 5
)

// Config holds weather provider configuration from environment variables.
type Config struct {
	APIKey string
	Units  string // "imperial" or "metric"
}

// Location is a named place the weather widget can be pointed at.
type Location struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// WeatherData is the current-conditions payload the widget renders.
// Temperatures and wind are rounded to whole numbers.
type WeatherData struct {
	Temperature int    `json:"temperature"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Humidity    int    `json:"humidity"`
	WindSpeed   int    `json:"wind_speed"`
	FeelsLike   int    `json:"feels_like"`
	Units       string `json:"units"`
}

// Service fetches current conditions and geocoding results from
// OpenWeatherMap, caching conditions per coordinate pair.
type Service struct {
	config  Config
	client  *http.Client
	baseURL string
	geoURL  string

	mu    sync.Mutex
	cache map[string]cachedWeather
}

type cachedWeather struct {
	data      WeatherData
	fetchedAt time.Time
}

// NewService creates a weather service. Units default to imperial, which
// is what the dashboard has always shown.
func NewService(cfg Config) *Service {
	if cfg.Units == "" {
		cfg.Units = "imperial"
	}
	return &Service{
		config:  cfg,
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: "https://api.openweathermap.org/data/2.5",
		geoURL:  "https://api.openweathermap.org/geo/1.0",
		cache:   make(map[string]cachedWeather),
	}
}

// Configured reports whether an API key is present. An unconfigured
// service fails every fetch; the widget shows a setup hint instead.
func (s *Service) Configured() bool {
	return s.config.APIKey != ""
}

type currentResponse struct {
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

// Current returns current conditions at the coordinates, serving from the
// cache when a fetch for the same spot is newer than the TTL.
func (s *Service) Current(ctx context.Context, lat, lon float64) (WeatherData, error) {
	if !s.Configured() {
		return WeatherData{}, fmt.Errorf("weather api key not configured")
	}

	key := fmt.Sprintf("%.4f,%.4f", lat, lon)
	s.mu.Lock()
	if entry, ok := s.cache[key]; ok && time.Since(entry.fetchedAt) < cacheTTL {
		data := entry.data
		s.mu.Unlock()
		return data, nil
	}
	s.mu.Unlock()

	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%f", lat))
	q.Set("lon", fmt.Sprintf("%f", lon))
	q.Set("appid", s.config.APIKey)
	q.Set("units", s.config.Units)

	var resp currentResponse
	if err := s.getJSON(ctx, s.baseURL+"/weather?"+q.Encode(), &resp); err != nil {
		return WeatherData{}, fmt.Errorf("fetch current weather: %w", err)
	}
	if len(resp.Weather) == 0 {
		return WeatherData{}, fmt.Errorf("weather response missing conditions")
	}

	data := WeatherData{
		Temperature: int(math.Round(resp.Main.Temp)),
		Description: resp.Weather[0].Description,
		Icon:        resp.Weather[0].Icon,
		Humidity:    resp.Main.Humidity,
		WindSpeed:   int(math.Round(resp.Wind.Speed)),
		FeelsLike:   int(math.Round(resp.Main.FeelsLike)),
		Units:       s.config.Units,
	}

	s.mu.Lock()
	s.cache[key] = cachedWeather{data: data, fetchedAt: time.Now()}
	s.mu.Unlock()

	return data, nil
}

type geoResult struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Search geocodes a free-text query to up to five candidate locations.
func (s *Service) Search(ctx context.Context, query string) ([]Location, error) {
	if !s.Configured() {
		return nil, fmt.Errorf("weather api key not configured")
	}

	q := url.Values{}
	q.Set("q", query)
	q.Set("limit", fmt.Sprintf("%d", searchLimit))
	q.Set("appid", s.config.APIKey)

	var results []geoResult
	if err := s.getJSON(ctx, s.geoURL+"/direct?"+q.Encode(), &results); err != nil {
		return nil, fmt.Errorf("search location: %w", err)
	}

	locations := make([]Location, 0, len(results))
	for i, r := range results {
		locations = append(locations, Location{
			ID:   fmt.Sprintf("location-%d", i),
			Name: fmt.Sprintf("%s, %s", r.Name, r.Country),
			Lat:  r.Lat,
			Lon:  r.Lon,
		})
	}
	return locations, nil
}

func (s *Service) getJSON(ctx context.Context, rawURL string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
