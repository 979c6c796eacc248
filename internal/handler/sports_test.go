package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mvarner/hearth/internal/model"
	"github.com/mvarner/hearth/internal/sports"
)

func newSportsHandler(t *testing.T) *SportsHandler {
	t.Helper()
	initial := sports.AddMember(sports.DefaultRoster(), "Alice", "#FF6B6B")
	h := NewSportsHandler(initial, nil, nil, testLogger())
	h.now = func() time.Time {
		return time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)
	}
	return h
}

func createSport(t *testing.T, h *SportsHandler, body string) model.Sport {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/sports", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.CreateSport(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create sport status = %d, want 201", rec.Code)
	}
	var s model.Sport
	if err := json.NewDecoder(rec.Body).Decode(&s); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return s
}

func TestCreateSportAndEvent(t *testing.T) {
	h := newSportsHandler(t)
	member := h.Current().Members[0]

	s := createSport(t, h, `{"name": "Soccer", "family_member_id": "`+member.ID+`", "equipment": ["cleats"]}`)
	if s.Name != "Soccer" {
		t.Errorf("name = %q, want Soccer", s.Name)
	}

	body := `{"title": "Tuesday Practice", "date": "2024-04-09", "start_time": "17:00", "end_time": "18:30", "type": "practice"}`
	req := httptest.NewRequest(http.MethodPost, "/api/sports/"+s.ID+"/events", strings.NewReader(body))
	req.SetPathValue("id", s.ID)
	rec := httptest.NewRecorder()
	h.CreateEvent(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("create event status = %d, want 201", rec.Code)
	}
	var ev model.SportEvent
	if err := json.NewDecoder(rec.Body).Decode(&ev); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ev.SportID != s.ID {
		t.Errorf("sport_id = %q, want %q", ev.SportID, s.ID)
	}
	if ev.FamilyMemberID != member.ID {
		t.Errorf("family_member_id = %q, want inherited %q", ev.FamilyMemberID, member.ID)
	}
}

func TestCreateEventValidation(t *testing.T) {
	h := newSportsHandler(t)
	s := createSport(t, h, `{"name": "Soccer"}`)

	tests := map[string]struct {
		sportID string
		body    string
		want    int
	}{
		"bad type":      {s.ID, `{"title": "x", "date": "2024-04-09", "type": "scrimmage"}`, http.StatusBadRequest},
		"missing date":  {s.ID, `{"title": "x", "type": "game"}`, http.StatusBadRequest},
		"unknown sport": {"nope", `{"title": "x", "date": "2024-04-09", "type": "game"}`, http.StatusNotFound},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/sports/"+tt.sportID+"/events", strings.NewReader(tt.body))
			req.SetPathValue("id", tt.sportID)
			rec := httptest.NewRecorder()
			h.CreateEvent(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestUpdateSportPatchesOnlyProvidedFields(t *testing.T) {
	h := newSportsHandler(t)
	s := createSport(t, h, `{"name": "Soccer", "equipment": ["cleats"]}`)

	req := httptest.NewRequest(http.MethodPut, "/api/sports/"+s.ID, strings.NewReader(`{"name": "Futsal"}`))
	req.SetPathValue("id", s.ID)
	rec := httptest.NewRecorder()
	h.UpdateSport(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var updated model.Sport
	if err := json.NewDecoder(rec.Body).Decode(&updated); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if updated.Name != "Futsal" {
		t.Errorf("name = %q, want Futsal", updated.Name)
	}
	if len(updated.Equipment) != 1 || updated.Equipment[0] != "cleats" {
		t.Errorf("equipment = %v, want untouched [cleats]", updated.Equipment)
	}
}

func TestUpdateUnknownSport(t *testing.T) {
	h := newSportsHandler(t)

	req := httptest.NewRequest(http.MethodPut, "/api/sports/nope", strings.NewReader(`{"name": "X"}`))
	req.SetPathValue("id", "nope")
	rec := httptest.NewRecorder()
	h.UpdateSport(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestUpcomingEventsWindow(t *testing.T) {
	h := newSportsHandler(t)
	s := createSport(t, h, `{"name": "Soccer"}`)

	for _, ev := range []string{
		`{"title": "Near", "date": "2024-04-03", "type": "practice"}`,
		`{"title": "Far", "date": "2024-05-20", "type": "game"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/sports/"+s.ID+"/events", strings.NewReader(ev))
		req.SetPathValue("id", s.ID)
		rec := httptest.NewRecorder()
		h.CreateEvent(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create event status = %d", rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/sports/events/upcoming", nil)
	rec := httptest.NewRecorder()
	h.UpcomingEvents(rec, req)

	var events []model.SportEvent
	if err := json.NewDecoder(rec.Body).Decode(&events); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(events) != 1 || events[0].Title != "Near" {
		t.Errorf("events = %v, want only Near", events)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/sports/events/upcoming?days=60", nil)
	rec = httptest.NewRecorder()
	h.UpcomingEvents(rec, req)
	if err := json.NewDecoder(rec.Body).Decode(&events); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("events = %d with days=60, want 2", len(events))
	}

	req = httptest.NewRequest(http.MethodGet, "/api/sports/events/upcoming?days=zero", nil)
	rec = httptest.NewRecorder()
	h.UpcomingEvents(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d for bad days, want 400", rec.Code)
	}
}

func TestDeleteSportsMemberCascades(t *testing.T) {
	h := newSportsHandler(t)
	member := h.Current().Members[0]
	createSport(t, h, `{"name": "Soccer", "family_member_id": "`+member.ID+`"}`)

	req := httptest.NewRequest(http.MethodDelete, "/api/sports/members/"+member.ID, nil)
	req.SetPathValue("id", member.ID)
	rec := httptest.NewRecorder()
	h.DeleteMember(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if got := len(h.Current().Sports); got != 0 {
		t.Errorf("sports = %d, want 0 after cascade", got)
	}
}
