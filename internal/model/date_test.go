package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-09")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.Year != 2024 || d.Month != time.March || d.Day != 9 {
		t.Errorf("got %v, want 2024-03-09", d)
	}

	if _, err := ParseDate("03/09/2024"); err == nil {
		t.Error("expected error for non-ISO date")
	}
}

func TestDateOfDropsTimeOfDay(t *testing.T) {
	d := DateOf(time.Date(2024, 6, 1, 23, 59, 58, 0, time.UTC))
	if d.String() != "2024-06-01" {
		t.Errorf("got %s, want 2024-06-01", d)
	}
}

func TestDateAddDays(t *testing.T) {
	tests := []struct {
		start string
		days  int
		want  string
	}{
		{"2024-01-01", 14, "2024-01-15"},
		{"2024-02-28", 1, "2024-02-29"}, // leap year
		{"2023-12-31", 1, "2024-01-01"},
		{"2024-01-15", -15, "2023-12-31"},
	}
	for _, tt := range tests {
		d, err := ParseDate(tt.start)
		if err != nil {
			t.Fatalf("parse %q: %v", tt.start, err)
		}
		if got := d.AddDays(tt.days).String(); got != tt.want {
			t.Errorf("%s + %d days = %s, want %s", tt.start, tt.days, got, tt.want)
		}
	}
}

func TestDateOrdering(t *testing.T) {
	a, _ := ParseDate("2024-05-01")
	b, _ := ParseDate("2024-05-02")

	if !a.Before(b) || b.Before(a) {
		t.Error("Before comparison wrong")
	}
	if !b.After(a) || a.After(b) {
		t.Error("After comparison wrong")
	}
	if a.After(a) || a.Before(a) {
		t.Error("a date must not order before or after itself")
	}
	if !a.Equal(a) {
		t.Error("Equal(self) = false")
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d, _ := ParseDate("2024-11-30")

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"2024-11-30"` {
		t.Errorf("marshal = %s, want %q", data, `"2024-11-30"`)
	}

	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d) {
		t.Errorf("round trip = %v, want %v", back, d)
	}
}
