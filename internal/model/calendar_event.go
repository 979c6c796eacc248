package model

import "time"

// CalendarEvent is the normalized event shape the calendar widget renders,
// regardless of which source produced it.
type CalendarEvent struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	Color       string    `json:"color,omitempty"`
}
