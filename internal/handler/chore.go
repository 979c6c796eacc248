package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/mvarner/hearth/internal/chore"
	"github.com/mvarner/hearth/internal/model"
	"github.com/mvarner/hearth/internal/store"
	"github.com/mvarner/hearth/internal/websocket"
)

// ChoreHandler is the host for the chore widget's roster. It owns the
// single current value, serializes updates behind a mutex, and after each
// replacement saves a snapshot and tells connected dashboards to refetch.
// All domain logic lives in the chore package's pure functions.
type ChoreHandler struct {
	mu     sync.Mutex
	roster model.ChoreRoster

	states *store.StateStore
	hub    *websocket.Hub
	logger *slog.Logger
	now    func() time.Time
}

func NewChoreHandler(initial model.ChoreRoster, states *store.StateStore, hub *websocket.Hub, logger *slog.Logger) *ChoreHandler {
	return &ChoreHandler{
		roster: initial,
		states: states,
		hub:    hub,
		logger: logger,
		now:    time.Now,
	}
}

// current returns the roster value the handler holds right now.
func (h *ChoreHandler) current() model.ChoreRoster {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.roster
}

// replace applies a pure update, persists the result, and swaps it in.
// The mutex is the single writer lock the engines themselves do not need.
func (h *ChoreHandler) replace(update func(model.ChoreRoster) model.ChoreRoster) (model.ChoreRoster, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	next := update(h.roster)
	if h.states != nil {
		if err := h.states.SaveChoreRoster(next); err != nil {
			return model.ChoreRoster{}, err
		}
	}
	h.roster = next
	return next, nil
}

func (h *ChoreHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

func (h *ChoreHandler) Roster(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.current())
}

type memberRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (h *ChoreHandler) CreateMember(w http.ResponseWriter, r *http.Request) {
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

	next, err := h.replace(func(cur model.ChoreRoster) model.ChoreRoster {
		return chore.AddMember(cur, req.Name, req.Color)
	})
	if err != nil {
		h.logger.Error("save roster", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save roster")
		return
	}

	added := next.Members[len(next.Members)-1]
	h.broadcast(websocket.NewMessage("chore_member", "created", added.ID, nil))
	writeJSON(w, http.StatusCreated, added)
}

func (h *ChoreHandler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if _, err := h.replace(func(cur model.ChoreRoster) model.ChoreRoster {
		return chore.RemoveMember(cur, id)
	}); err != nil {
		h.logger.Error("save roster", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save roster")
		return
	}

	h.broadcast(websocket.NewMessage("chore_member", "removed", id, nil))
	w.WriteHeader(http.StatusNoContent)
}

type choreRequest struct {
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	AssignedTo     string          `json:"assigned_to"`
	Frequency      model.Frequency `json:"frequency"`
	FrequencyValue *int            `json:"frequency_value"`
}

func (h *ChoreHandler) CreateChore(w http.ResponseWriter, r *http.Request) {
	var req choreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if !req.Frequency.Valid() {
		writeError(w, http.StatusBadRequest, "unknown frequency")
		return
	}
	value := 1
	if req.FrequencyValue != nil {
		value = *req.FrequencyValue
	}

	next, err := h.replace(func(cur model.ChoreRoster) model.ChoreRoster {
		return chore.AddChore(cur, req.Title, req.Description, req.AssignedTo, req.Frequency, value, h.now())
	})
	if err != nil {
		h.logger.Error("save roster", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save roster")
		return
	}

	added := next.Chores[len(next.Chores)-1]
	h.broadcast(websocket.NewMessage("chore", "created", added.ID, nil))
	writeJSON(w, http.StatusCreated, added)
}

func (h *ChoreHandler) CompleteChore(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	next, err := h.replace(func(cur model.ChoreRoster) model.ChoreRoster {
		return chore.CompleteChore(cur, id, h.now())
	})
	if err != nil {
		h.logger.Error("save roster", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save roster")
		return
	}

	for _, c := range next.Chores {
		if c.ID == id {
			h.broadcast(websocket.NewMessage("chore", "completed", id, nil))
			writeJSON(w, http.StatusOK, c)
			return
		}
	}
	writeError(w, http.StatusNotFound, "chore not found")
}

func (h *ChoreHandler) ResetChore(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	next, err := h.replace(func(cur model.ChoreRoster) model.ChoreRoster {
		return chore.ResetChore(cur, id)
	})
	if err != nil {
		h.logger.Error("save roster", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save roster")
		return
	}

	for _, c := range next.Chores {
		if c.ID == id {
			h.broadcast(websocket.NewMessage("chore", "reset", id, nil))
			writeJSON(w, http.StatusOK, c)
			return
		}
	}
	writeError(w, http.StatusNotFound, "chore not found")
}

func (h *ChoreHandler) DeleteChore(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if _, err := h.replace(func(cur model.ChoreRoster) model.ChoreRoster {
		return chore.DeleteChore(cur, id)
	}); err != nil {
		h.logger.Error("save roster", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save roster")
		return
	}

	h.broadcast(websocket.NewMessage("chore", "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}

func (h *ChoreHandler) MemberChores(w http.ResponseWriter, r *http.Request) {
	chores := chore.ChoresForMember(h.current(), r.PathValue("id"))
	if chores == nil {
		chores = []model.Chore{}
	}
	writeJSON(w, http.StatusOK, chores)
}

func (h *ChoreHandler) Overdue(w http.ResponseWriter, r *http.Request) {
	chores := chore.OverdueChores(h.current(), h.now())
	if chores == nil {
		chores = []model.Chore{}
	}
	writeJSON(w, http.StatusOK, chores)
}

func (h *ChoreHandler) DueToday(w http.ResponseWriter, r *http.Request) {
	chores := chore.DueTodayChores(h.current(), h.now())
	if chores == nil {
		chores = []model.Chore{}
	}
	writeJSON(w, http.StatusOK, chores)
}
