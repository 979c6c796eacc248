package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/mvarner/hearth/internal/store"
	"github.com/mvarner/hearth/internal/weather"
)

// WeatherHandler serves current conditions for the dashboard's weather
// widget. Coordinates come from query params when present, otherwise from
// the saved location in settings.
type WeatherHandler struct {
	service  *weather.Service
	settings *store.SettingsStore
	logger   *slog.Logger
}

func NewWeatherHandler(service *weather.Service, settings *store.SettingsStore, logger *slog.Logger) *WeatherHandler {
	return &WeatherHandler{service: service, settings: settings, logger: logger}
}

func (h *WeatherHandler) Current(w http.ResponseWriter, r *http.Request) {
	if !h.service.Configured() {
		writeError(w, http.StatusServiceUnavailable, "weather is not configured")
		return
	}

	lat, lon, err := h.coordinates(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	data, err := h.service.Current(r.Context(), lat, lon)
	if err != nil {
		h.logger.Error("fetch weather", "error", err)
		writeError(w, http.StatusBadGateway, "failed to fetch weather")
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (h *WeatherHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}

	results, err := h.service.Search(r.Context(), query)
	if err != nil {
		h.logger.Error("search locations", "error", err)
		writeError(w, http.StatusBadGateway, "failed to search locations")
		return
	}
	if results == nil {
		results = []weather.Location{}
	}
	writeJSON(w, http.StatusOK, results)
}

func (h *WeatherHandler) coordinates(r *http.Request) (float64, float64, error) {
	q := r.URL.Query()
	if q.Get("lat") != "" || q.Get("lon") != "" {
		lat, err := strconv.ParseFloat(q.Get("lat"), 64)
		if err != nil {
			return 0, 0, errInvalidCoordinates
		}
		lon, err := strconv.ParseFloat(q.Get("lon"), 64)
		if err != nil {
			return 0, 0, errInvalidCoordinates
		}
		return lat, lon, nil
	}

	saved, err := h.settings.GetWeatherSettings()
	if err != nil {
		return 0, 0, err
	}
	lat, err := strconv.ParseFloat(saved["weather_latitude"], 64)
	if err != nil {
		return 0, 0, errNoLocation
	}
	lon, err := strconv.ParseFloat(saved["weather_longitude"], 64)
	if err != nil {
		return 0, 0, errNoLocation
	}
	return lat, lon, nil
}
