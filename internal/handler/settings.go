package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/mvarner/hearth/internal/store"
	"github.com/mvarner/hearth/internal/websocket"
)

type SettingsHandler struct {
	settings *store.SettingsStore
	hub      *websocket.Hub
	logger   *slog.Logger
}

func NewSettingsHandler(settings *store.SettingsStore, hub *websocket.Hub, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{settings: settings, hub: hub, logger: logger}
}

func (h *SettingsHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

func (h *SettingsHandler) GetWeather(w http.ResponseWriter, r *http.Request) {
	h.getGroup(w, h.settings.GetWeatherSettings)
}

func (h *SettingsHandler) UpdateWeather(w http.ResponseWriter, r *http.Request) {
	h.updateGroup(w, r, validateWeatherSettings, h.settings.GetWeatherSettings)
}

func (h *SettingsHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	h.getGroup(w, h.settings.GetThemeSettings)
}

func (h *SettingsHandler) UpdateTheme(w http.ResponseWriter, r *http.Request) {
	h.updateGroup(w, r, validateThemeSettings, h.settings.GetThemeSettings)
}

func (h *SettingsHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	h.getGroup(w, h.settings.GetCalendarSettings)
}

func (h *SettingsHandler) UpdateCalendar(w http.ResponseWriter, r *http.Request) {
	h.updateGroup(w, r, validateCalendarSettings, h.settings.GetCalendarSettings)
}

func (h *SettingsHandler) getGroup(w http.ResponseWriter, load func() (map[string]string, error)) {
	settings, err := load()
	if err != nil {
		h.logger.Error("load settings", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get settings")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *SettingsHandler) updateGroup(w http.ResponseWriter, r *http.Request, validate func(map[string]string) error, load func() (map[string]string, error)) {
	var req map[string]string
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := validate(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	for key, value := range req {
		if err := h.settings.Set(key, value); err != nil {
			h.logger.Error("save setting", "key", key, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to save settings")
			return
		}
	}

	h.broadcast(websocket.NewMessage("settings", "updated", "", nil))
	h.getGroup(w, load)
}

func validateWeatherSettings(settings map[string]string) error {
	allowed := map[string]bool{
		"weather_latitude":      true,
		"weather_longitude":     true,
		"weather_location_name": true,
		"weather_units":         true,
	}
	for key, value := range settings {
		if !allowed[key] {
			return fmt.Errorf("unknown setting: %s", key)
		}
		switch key {
		case "weather_latitude":
			n, err := strconv.ParseFloat(value, 64)
			if err != nil || n < -90 || n > 90 {
				return fmt.Errorf("weather_latitude must be -90 to 90")
			}
		case "weather_longitude":
			n, err := strconv.ParseFloat(value, 64)
			if err != nil || n < -180 || n > 180 {
				return fmt.Errorf("weather_longitude must be -180 to 180")
			}
		case "weather_units":
			if value != "imperial" && value != "metric" {
				return fmt.Errorf("weather_units must be \"imperial\" or \"metric\"")
			}
		}
	}
	return nil
}

func validateThemeSettings(settings map[string]string) error {
	allowed := map[string]bool{
		"theme_background":    true,
		"theme_header":        true,
		"theme_widget_header": true,
	}
	for key := range settings {
		if !allowed[key] {
			return fmt.Errorf("unknown setting: %s", key)
		}
	}
	return nil
}

func validateCalendarSettings(settings map[string]string) error {
	allowed := map[string]bool{
		"calendar_google_id":  true,
		"calendar_apple_url":  true,
		"calendar_outlook_id": true,
	}
	for key, value := range settings {
		if !allowed[key] {
			return fmt.Errorf("unknown setting: %s", key)
		}
		if key == "calendar_apple_url" && value != "" {
			if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") && !strings.HasPrefix(value, "webcal://") {
				return fmt.Errorf("calendar_apple_url must be an http, https, or webcal URL")
			}
		}
	}
	return nil
}

// Dashboard lock. A single 4-digit PIN gates the settings screen on the
// wall display.

func (h *SettingsHandler) SetLockPIN(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PIN string `json:"pin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if len(req.PIN) != 4 || !isDigits(req.PIN) {
		writeError(w, http.StatusBadRequest, "PIN must be exactly 4 digits")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.PIN), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to hash PIN")
		return
	}
	if err := h.settings.SetLockPIN(string(hash)); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to set PIN")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "pin set"})
}

func (h *SettingsHandler) ClearLockPIN(w http.ResponseWriter, r *http.Request) {
	if err := h.settings.ClearLockPIN(); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to clear PIN")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "pin cleared"})
}

func (h *SettingsHandler) VerifyLockPIN(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PIN string `json:"pin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	hash, err := h.settings.GetLockPINHash()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get PIN")
		return
	}
	if hash == "" {
		writeError(w, http.StatusBadRequest, "no PIN set")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.PIN)); err != nil {
		writeError(w, http.StatusUnauthorized, "incorrect PIN")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "verified"})
}
