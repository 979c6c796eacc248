package handler

import (
	"log/slog"
	"net/http"

	"github.com/mvarner/hearth/internal/calendar"
	"github.com/mvarner/hearth/internal/model"
)

type CalendarHandler struct {
	service *calendar.Service
	logger  *slog.Logger
}

func NewCalendarHandler(service *calendar.Service, logger *slog.Logger) *CalendarHandler {
	return &CalendarHandler{service: service, logger: logger}
}

func (h *CalendarHandler) Events(w http.ResponseWriter, r *http.Request) {
	events := h.service.Events(r.Context())
	if events == nil {
		events = []model.CalendarEvent{}
	}
	writeJSON(w, http.StatusOK, events)
}
