package calendar

import (
	"context"
	"time"

	"github.com/mvarner/hearth/internal/model"
)

// MockSource stands in for the Google and Outlook integrations, which are
// not wired to their real APIs. It serves a small fixed set of household
// events anchored to the current day so the widget has something to show.
type MockSource struct {
	name string
	now  func() time.Time
}

func NewGoogleSource() *MockSource {
	return &MockSource{name: "google", now: time.Now}
}

func NewOutlookSource() *MockSource {
	return &MockSource{name: "outlook", now: time.Now}
}

func (s *MockSource) Name() string { return s.name }

func (s *MockSource) Load(_ context.Context) ([]model.CalendarEvent, error) {
	now := s.now()
	day := func(offset, hour, min int) time.Time {
		return time.Date(now.Year(), now.Month(), now.Day()+offset, hour, min, 0, 0, now.Location())
	}
	return []model.CalendarEvent{
		{
			ID:          s.name + "-1",
			Title:       "Family Dinner",
			Start:       day(0, 18, 0),
			End:         day(0, 19, 30),
			Description: "Weekly family dinner",
			Location:    "Home",
			Color:       "#4CAF50",
		},
		{
			ID:          s.name + "-2",
			Title:       "Soccer Practice",
			Start:       day(1, 16, 0),
			End:         day(1, 17, 30),
			Description: "Kids soccer practice",
			Location:    "Community Center",
			Color:       "#2196F3",
		},
		{
			ID:          s.name + "-3",
			Title:       "Doctor Appointment",
			Start:       day(2, 10, 0),
			End:         day(2, 11, 0),
			Description: "Annual checkup",
			Location:    "Medical Center",
			Color:       "#FF9800",
		},
	}, nil
}
