package calendar

import (
	"context"
	"fmt"
	"net/http"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/mvarner/hearth/internal/model"
)

// ICSSource loads events from a published iCalendar feed. This is how an
// Apple calendar is wired in: the user pastes the calendar's public .ics
// URL into the widget settings.
type ICSSource struct {
	url    string
	client *http.Client
}

func NewICSSource(url string) *ICSSource {
	return &ICSSource{
		url:    url,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *ICSSource) Name() string { return "apple" }

func (s *ICSSource) Load(ctx context.Context) ([]model.CalendarEvent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch ics: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch ics: unexpected status %d", resp.StatusCode)
	}

	cal, err := ical.ParseCalendar(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse ics: %w", err)
	}

	var events []model.CalendarEvent
	for _, ve := range cal.Events() {
		ev, err := eventFromVEvent(ve)
		if err != nil {
			// One malformed VEVENT should not sink the whole feed.
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

func eventFromVEvent(ve *ical.VEvent) (model.CalendarEvent, error) {
	var out model.CalendarEvent

	uid := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uid == nil || uid.Value == "" {
		return out, fmt.Errorf("missing UID")
	}
	out.ID = uid.Value

	start, err := ve.GetStartAt()
	if err != nil {
		return out, fmt.Errorf("missing DTSTART: %w", err)
	}
	out.Start = start

	end, err := ve.GetEndAt()
	if err != nil {
		// DTEND is optional; treat as an hour-long event like most
		// calendar clients do.
		end = start.Add(time.Hour)
	}
	out.End = end

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.Title = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
		out.Description = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyLocation); p != nil {
		out.Location = p.Value
	}
	return out, nil
}
