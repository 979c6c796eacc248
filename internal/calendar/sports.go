package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mvarner/hearth/internal/model"
	"github.com/mvarner/hearth/internal/sports"
)

const (
	practiceColor = "#4CAF50"
	gameColor     = "#F44336"
)

// SportsSource projects the sports widget's schedule into the calendar so
// practices and games appear alongside the other feeds. It reads the
// current roster through a getter, so it always reflects the latest
// replacement without holding its own copy.
type SportsSource struct {
	roster func() model.SportsRoster
}

func NewSportsSource(roster func() model.SportsRoster) *SportsSource {
	return &SportsSource{roster: roster}
}

func (s *SportsSource) Name() string { return "sports" }

func (s *SportsSource) Load(_ context.Context) ([]model.CalendarEvent, error) {
	r := s.roster()

	sportNames := make(map[string]string, len(r.Sports))
	for _, sp := range r.Sports {
		sportNames[sp.ID] = sp.Name
	}
	memberNames := make(map[string]string, len(r.Members))
	for _, m := range r.Members {
		memberNames[m.ID] = m.Name
	}

	var events []model.CalendarEvent
	for _, e := range sports.AllEvents(r) {
		sportName := sportNames[e.SportID]
		memberName := memberNames[e.FamilyMemberID]
		if memberName == "" {
			// Dangling member reference: render rather than fail.
			memberName = "Unknown"
		}
		events = append(events, FromSportEvent(e, sportName, memberName))
	}
	return events, nil
}

// FromSportEvent converts one scheduled practice or game into the
// calendar widget's event shape.
func FromSportEvent(e model.SportEvent, sportName, memberName string) model.CalendarEvent {
	start := atTime(e.Date, e.StartTime)
	end := atTime(e.Date, e.EndTime)

	description := "Location: " + e.Location
	if len(e.Equipment) > 0 {
		description += "\nEquipment: " + strings.Join(e.Equipment, ", ")
	}
	if e.Notes != "" {
		description += "\nNotes: " + e.Notes
	}

	color := practiceColor
	if e.Type == model.EventGame {
		color = gameColor
	}

	return model.CalendarEvent{
		ID:          e.ID,
		Title:       fmt.Sprintf("%s - %s (%s)", sportName, memberName, e.Type),
		Start:       start,
		End:         end,
		Description: description,
		Location:    e.Location,
		Color:       color,
	}
}

// atTime combines a calendar date with an "HH:MM" clock string. Malformed
// clock strings fall back to midnight.
func atTime(d model.Date, clock string) time.Time {
	t := d.Time(time.Local)
	var hour, min int
	if _, err := fmt.Sscanf(clock, "%d:%d", &hour, &min); err != nil {
		return t
	}
	return t.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
}
