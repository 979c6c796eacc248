package model

import "time"

// Frequency controls how a chore's next due date is computed when it is
// completed.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	// FrequencyCustom uses FrequencyValue as an explicit day count. It is
	// behaviorally identical to daily; the distinct name is kept for
	// compatibility with existing widget configs.
	FrequencyCustom Frequency = "custom"
)

// Valid reports whether f is one of the known frequencies.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyCustom:
		return true
	}
	return false
}

type Chore struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Frequency   Frequency `json:"frequency"`
	// FrequencyValue is the repeat interval in Frequency units. Zero is
	// accepted and makes the chore due again immediately on completion.
	FrequencyValue int        `json:"frequency_value"`
	AssignedTo     string     `json:"assigned_to"`
	Completed      bool       `json:"completed"`
	LastCompleted  *time.Time `json:"last_completed,omitempty"`
	NextDue        time.Time  `json:"next_due"`
}

// ChoreRoster is the chore widget's aggregate: the family members plus the
// chores assigned to them, both in insertion order. Rosters are treated as
// immutable values; every update produces a new roster.
type ChoreRoster struct {
	Members []FamilyMember `json:"members"`
	Chores  []Chore        `json:"chores"`
}

// Clone returns a deep copy. Chore values contain a pointer
// (LastCompleted), so the copy re-points it at fresh storage.
func (r ChoreRoster) Clone() ChoreRoster {
	out := ChoreRoster{
		Members: make([]FamilyMember, len(r.Members)),
		Chores:  make([]Chore, len(r.Chores)),
	}
	copy(out.Members, r.Members)
	for i, c := range r.Chores {
		if c.LastCompleted != nil {
			t := *c.LastCompleted
			c.LastCompleted = &t
		}
		out.Chores[i] = c
	}
	return out
}
