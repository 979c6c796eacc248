package server

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mvarner/hearth/internal/calendar"
	"github.com/mvarner/hearth/internal/chore"
	"github.com/mvarner/hearth/internal/handler"
	"github.com/mvarner/hearth/internal/middleware"
	"github.com/mvarner/hearth/internal/sports"
	"github.com/mvarner/hearth/internal/store"
	"github.com/mvarner/hearth/internal/weather"
	ws "github.com/mvarner/hearth/internal/websocket"
)

type Server struct {
	db          *sql.DB
	hub         *ws.Hub
	choreH      *handler.ChoreHandler
	sportsH     *handler.SportsHandler
	weatherH    *handler.WeatherHandler
	calendarH   *handler.CalendarHandler
	settingsH   *handler.SettingsHandler
	rateLimiter *middleware.RateLimiter
	logger      *slog.Logger
}

// New wires the whole dashboard together: loads the saved widget state (or
// starts from defaults), builds the handlers, and assembles the calendar
// sources configured in settings.
func New(db *sql.DB, weatherSvc *weather.Service, logger *slog.Logger) (*Server, error) {
	hub := ws.NewHub(logger.With("component", "websocket"))

	stateStore := store.NewStateStore(db)
	settingsStore := store.NewSettingsStore(db)

	choreRoster, ok, err := stateStore.LoadChoreRoster()
	if err != nil {
		return nil, fmt.Errorf("load chore roster: %w", err)
	}
	if !ok {
		choreRoster = chore.DefaultRoster()
	}

	sportsRoster, ok, err := stateStore.LoadSportsRoster()
	if err != nil {
		return nil, fmt.Errorf("load sports roster: %w", err)
	}
	if !ok {
		sportsRoster = sports.DefaultRoster()
	}

	sportsH := handler.NewSportsHandler(sportsRoster, stateStore, hub, logger.With("component", "sports"))

	calendarSvc := buildCalendarService(settingsStore, sportsH, logger.With("component", "calendar"))

	return &Server{
		db:          db,
		hub:         hub,
		choreH:      handler.NewChoreHandler(choreRoster, stateStore, hub, logger.With("component", "chore")),
		sportsH:     sportsH,
		weatherH:    handler.NewWeatherHandler(weatherSvc, settingsStore, logger.With("component", "weather")),
		calendarH:   handler.NewCalendarHandler(calendarSvc, logger.With("component", "calendar")),
		settingsH:   handler.NewSettingsHandler(settingsStore, hub, logger.With("component", "settings")),
		rateLimiter: middleware.NewRateLimiter(),
		logger:      logger,
	}, nil
}

// buildCalendarService assembles sources from settings. Google and Outlook
// are demo feeds until OAuth ships; Apple works today via a public ICS URL.
// Sports events are always projected so the schedule shows up alongside
// everything else. Settings changes take effect on restart.
func buildCalendarService(settingsStore *store.SettingsStore, sportsH *handler.SportsHandler, logger *slog.Logger) *calendar.Service {
	svc := calendar.NewService(logger)

	cfg, err := settingsStore.GetCalendarSettings()
	if err != nil {
		logger.Warn("load calendar settings", "error", err)
		cfg = map[string]string{}
	}

	if cfg["calendar_google_id"] != "" {
		svc.AddSource(calendar.NewGoogleSource())
	}
	if cfg["calendar_outlook_id"] != "" {
		svc.AddSource(calendar.NewOutlookSource())
	}
	if url := cfg["calendar_apple_url"]; url != "" {
		if strings.HasPrefix(url, "webcal://") {
			url = "https://" + strings.TrimPrefix(url, "webcal://")
		}
		svc.AddSource(calendar.NewICSSource(url))
	}
	svc.AddSource(calendar.NewSportsSource(sportsH.Current))

	return svc
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)

	// Chore widget
	mux.HandleFunc("GET /api/chores", s.choreH.Roster)
	mux.HandleFunc("POST /api/chores", s.choreH.CreateChore)
	mux.HandleFunc("DELETE /api/chores/{id}", s.choreH.DeleteChore)
	mux.HandleFunc("POST /api/chores/{id}/complete", s.choreH.CompleteChore)
	mux.HandleFunc("POST /api/chores/{id}/reset", s.choreH.ResetChore)
	mux.HandleFunc("GET /api/chores/overdue", s.choreH.Overdue)
	mux.HandleFunc("GET /api/chores/due-today", s.choreH.DueToday)
	mux.HandleFunc("POST /api/chores/members", s.choreH.CreateMember)
	mux.HandleFunc("DELETE /api/chores/members/{id}", s.choreH.DeleteMember)
	mux.HandleFunc("GET /api/chores/members/{id}/chores", s.choreH.MemberChores)

	// Sports widget
	mux.HandleFunc("GET /api/sports", s.sportsH.Roster)
	mux.HandleFunc("POST /api/sports", s.sportsH.CreateSport)
	mux.HandleFunc("PUT /api/sports/{id}", s.sportsH.UpdateSport)
	mux.HandleFunc("DELETE /api/sports/{id}", s.sportsH.DeleteSport)
	mux.HandleFunc("POST /api/sports/members", s.sportsH.CreateMember)
	mux.HandleFunc("PUT /api/sports/members/{id}", s.sportsH.UpdateMember)
	mux.HandleFunc("DELETE /api/sports/members/{id}", s.sportsH.DeleteMember)
	mux.HandleFunc("GET /api/sports/members/{id}/stats", s.sportsH.MemberStats)
	mux.HandleFunc("POST /api/sports/{id}/events", s.sportsH.CreateEvent)
	mux.HandleFunc("PUT /api/sports/{id}/events/{event_id}", s.sportsH.UpdateEvent)
	mux.HandleFunc("DELETE /api/sports/{id}/events/{event_id}", s.sportsH.DeleteEvent)
	mux.HandleFunc("GET /api/sports/events", s.sportsH.AllEvents)
	mux.HandleFunc("GET /api/sports/events/upcoming", s.sportsH.UpcomingEvents)

	// Weather widget
	mux.HandleFunc("GET /api/weather", s.weatherH.Current)
	mux.HandleFunc("GET /api/weather/search", s.weatherH.Search)

	// Calendar widget
	mux.HandleFunc("GET /api/calendar/events", s.calendarH.Events)

	// Settings
	mux.HandleFunc("GET /api/settings/weather", s.settingsH.GetWeather)
	mux.HandleFunc("PUT /api/settings/weather", s.settingsH.UpdateWeather)
	mux.HandleFunc("GET /api/settings/theme", s.settingsH.GetTheme)
	mux.HandleFunc("PUT /api/settings/theme", s.settingsH.UpdateTheme)
	mux.HandleFunc("GET /api/settings/calendar", s.settingsH.GetCalendar)
	mux.HandleFunc("PUT /api/settings/calendar", s.settingsH.UpdateCalendar)
	mux.HandleFunc("POST /api/settings/lock", s.settingsH.SetLockPIN)
	mux.HandleFunc("DELETE /api/settings/lock", s.settingsH.ClearLockPIN)
	mux.HandleFunc("POST /api/settings/lock/verify", s.rateLimited(s.settingsH.VerifyLockPIN))

	// WebSocket
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.logger.With("component", "websocket")))

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// rateLimited wraps PIN verification so a kiosk on the couch cannot be
// brute-forced past the lock.
func (s *Server) rateLimited(h http.HandlerFunc) http.HandlerFunc {
	rl := middleware.RateLimit(s.rateLimiter, middleware.ClientIP, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(h).ServeHTTP(w, r)
	}
}
