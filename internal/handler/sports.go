package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mvarner/hearth/internal/model"
	"github.com/mvarner/hearth/internal/sports"
	"github.com/mvarner/hearth/internal/store"
	"github.com/mvarner/hearth/internal/websocket"
)

// SportsHandler hosts the sports widget's roster the same way ChoreHandler
// hosts chores: one current value, mutex-serialized replacement, snapshot
// save and broadcast after every change.
type SportsHandler struct {
	mu     sync.Mutex
	roster model.SportsRoster

	states *store.StateStore
	hub    *websocket.Hub
	logger *slog.Logger
	now    func() time.Time
}

func NewSportsHandler(initial model.SportsRoster, states *store.StateStore, hub *websocket.Hub, logger *slog.Logger) *SportsHandler {
	return &SportsHandler{
		roster: initial,
		states: states,
		hub:    hub,
		logger: logger,
		now:    time.Now,
	}
}

// Current returns the roster value the handler holds right now. Exported
// so the calendar's sports source can project the latest schedule.
func (h *SportsHandler) Current() model.SportsRoster {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.roster
}

func (h *SportsHandler) replace(update func(model.SportsRoster) model.SportsRoster) (model.SportsRoster, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	next := update(h.roster)
	if h.states != nil {
		if err := h.states.SaveSportsRoster(next); err != nil {
			return model.SportsRoster{}, err
		}
	}
	h.roster = next
	return next, nil
}

func (h *SportsHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

func (h *SportsHandler) saveError(w http.ResponseWriter, err error) {
	h.logger.Error("save roster", "error", err)
	writeError(w, http.StatusInternalServerError, "failed to save roster")
}

func (h *SportsHandler) Roster(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Current())
}

func (h *SportsHandler) CreateMember(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	next, err := h.replace(func(cur model.SportsRoster) model.SportsRoster {
		return sports.AddMember(cur, req.Name, req.Color)
	})
	if err != nil {
		h.saveError(w, err)
		return
	}

	added := next.Members[len(next.Members)-1]
	h.broadcast(websocket.NewMessage("sports_member", "created", added.ID, nil))
	writeJSON(w, http.StatusCreated, added)
}

func (h *SportsHandler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req struct {
		Name  *string `json:"name"`
		Color *string `json:"color"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	next, err := h.replace(func(cur model.SportsRoster) model.SportsRoster {
		return sports.UpdateMember(cur, id, sports.MemberPatch{Name: req.Name, Color: req.Color})
	})
	if err != nil {
		h.saveError(w, err)
		return
	}

	for _, m := range next.Members {
		if m.ID == id {
			h.broadcast(websocket.NewMessage("sports_member", "updated", id, nil))
			writeJSON(w, http.StatusOK, m)
			return
		}
	}
	writeError(w, http.StatusNotFound, "member not found")
}

func (h *SportsHandler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if _, err := h.replace(func(cur model.SportsRoster) model.SportsRoster {
		return sports.RemoveMember(cur, id)
	}); err != nil {
		h.saveError(w, err)
		return
	}

	h.broadcast(websocket.NewMessage("sports_member", "removed", id, nil))
	w.WriteHeader(http.StatusNoContent)
}

type sportRequest struct {
	Name           string   `json:"name"`
	FamilyMemberID string   `json:"family_member_id"`
	Equipment      []string `json:"equipment"`
}

func (h *SportsHandler) CreateSport(w http.ResponseWriter, r *http.Request) {
	var req sportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	next, err := h.replace(func(cur model.SportsRoster) model.SportsRoster {
		return sports.AddSport(cur, req.Name, req.FamilyMemberID, req.Equipment)
	})
	if err != nil {
		h.saveError(w, err)
		return
	}

	added := next.Sports[len(next.Sports)-1]
	h.broadcast(websocket.NewMessage("sport", "created", added.ID, nil))
	writeJSON(w, http.StatusCreated, added)
}

func (h *SportsHandler) UpdateSport(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req struct {
		Name           *string   `json:"name"`
		FamilyMemberID *string   `json:"family_member_id"`
		Equipment      *[]string `json:"equipment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	next, err := h.replace(func(cur model.SportsRoster) model.SportsRoster {
		return sports.UpdateSport(cur, id, sports.SportPatch{
			Name:           req.Name,
			FamilyMemberID: req.FamilyMemberID,
			Equipment:      req.Equipment,
		})
	})
	if err != nil {
		h.saveError(w, err)
		return
	}

	for _, s := range next.Sports {
		if s.ID == id {
			h.broadcast(websocket.NewMessage("sport", "updated", id, nil))
			writeJSON(w, http.StatusOK, s)
			return
		}
	}
	writeError(w, http.StatusNotFound, "sport not found")
}

func (h *SportsHandler) DeleteSport(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if _, err := h.replace(func(cur model.SportsRoster) model.SportsRoster {
		return sports.RemoveSport(cur, id)
	}); err != nil {
		h.saveError(w, err)
		return
	}

	h.broadcast(websocket.NewMessage("sport", "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}

type eventRequest struct {
	Title     string          `json:"title"`
	Date      model.Date      `json:"date"`
	StartTime string          `json:"start_time"`
	EndTime   string          `json:"end_time"`
	Location  string          `json:"location"`
	Type      model.EventType `json:"type"`
	Equipment []string        `json:"equipment"`
	Notes     string          `json:"notes"`
}

func (h *SportsHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	sportID := r.PathValue("id")

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if !req.Type.Valid() {
		writeError(w, http.StatusBadRequest, "type must be practice or game")
		return
	}
	if req.Date.IsZero() {
		writeError(w, http.StatusBadRequest, "date is required")
		return
	}

	next, err := h.replace(func(cur model.SportsRoster) model.SportsRoster {
		return sports.AddEvent(cur, sportID, sports.EventFields{
			Title:     req.Title,
			Date:      req.Date,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			Location:  req.Location,
			Type:      req.Type,
			Equipment: req.Equipment,
			Notes:     req.Notes,
		})
	})
	if err != nil {
		h.saveError(w, err)
		return
	}

	for _, s := range next.Sports {
		if s.ID == sportID {
			added := s.Events[len(s.Events)-1]
			h.broadcast(websocket.NewMessage("sport_event", "created", added.ID, nil))
			writeJSON(w, http.StatusCreated, added)
			return
		}
	}
	writeError(w, http.StatusNotFound, "sport not found")
}

func (h *SportsHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	sportID := r.PathValue("id")
	eventID := r.PathValue("event_id")

	var req struct {
		Title     *string          `json:"title"`
		Date      *model.Date      `json:"date"`
		StartTime *string          `json:"start_time"`
		EndTime   *string          `json:"end_time"`
		Location  *string          `json:"location"`
		Type      *model.EventType `json:"type"`
		Equipment *[]string        `json:"equipment"`
		Notes     *string          `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Type != nil && !req.Type.Valid() {
		writeError(w, http.StatusBadRequest, "type must be practice or game")
		return
	}

	next, err := h.replace(func(cur model.SportsRoster) model.SportsRoster {
		return sports.UpdateEvent(cur, sportID, eventID, sports.EventPatch{
			Title:     req.Title,
			Date:      req.Date,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			Location:  req.Location,
			Type:      req.Type,
			Equipment: req.Equipment,
			Notes:     req.Notes,
		})
	})
	if err != nil {
		h.saveError(w, err)
		return
	}

	for _, s := range next.Sports {
		if s.ID != sportID {
			continue
		}
		for _, e := range s.Events {
			if e.ID == eventID {
				h.broadcast(websocket.NewMessage("sport_event", "updated", eventID, nil))
				writeJSON(w, http.StatusOK, e)
				return
			}
		}
	}
	writeError(w, http.StatusNotFound, "event not found")
}

func (h *SportsHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	sportID := r.PathValue("id")
	eventID := r.PathValue("event_id")

	if _, err := h.replace(func(cur model.SportsRoster) model.SportsRoster {
		return sports.RemoveEvent(cur, sportID, eventID)
	}); err != nil {
		h.saveError(w, err)
		return
	}

	h.broadcast(websocket.NewMessage("sport_event", "deleted", eventID, nil))
	w.WriteHeader(http.StatusNoContent)
}

func (h *SportsHandler) AllEvents(w http.ResponseWriter, r *http.Request) {
	events := sports.AllEvents(h.Current())
	if events == nil {
		events = []model.SportEvent{}
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *SportsHandler) UpcomingEvents(w http.ResponseWriter, r *http.Request) {
	days := sports.DefaultWindowDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = n
	}

	events := sports.UpcomingEvents(h.Current(), h.now(), days)
	if events == nil {
		events = []model.SportEvent{}
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *SportsHandler) MemberStats(w http.ResponseWriter, r *http.Request) {
	stats := sports.MemberStats(h.Current(), r.PathValue("id"), h.now())
	writeJSON(w, http.StatusOK, stats)
}
