// Package chore computes the chore widget's state: who is on the roster,
// what they are assigned, and when each chore comes due again.
//
// Every operation is a pure function taking a roster value and returning a
// new one. The host keeps a single current roster and replaces it wholesale
// after each call; nothing here holds state between calls. Operations that
// depend on the clock take now explicitly so one logical update reads the
// time exactly once.
package chore

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/mvarner/hearth/internal/model"
)

// DefaultRoster returns the starter roster new dashboards begin with: four
// placeholder members and no chores. Deterministic, so it can be rebuilt
// identically when no saved snapshot exists.
func DefaultRoster() model.ChoreRoster {
	return model.ChoreRoster{
		Members: []model.FamilyMember{
			{ID: "1", Name: "Mom", Color: "#FF6B6B"},
			{ID: "2", Name: "Dad", Color: "#4ECDC4"},
			{ID: "3", Name: "Child 1", Color: "#45B7D1"},
			{ID: "4", Name: "Child 2", Color: "#96CEB4"},
		},
		Chores: []model.Chore{},
	}
}

// AddMember appends a member with a fresh id. Names are not required to be
// unique.
func AddMember(r model.ChoreRoster, name, color string) model.ChoreRoster {
	out := r.Clone()
	out.Members = append(out.Members, model.FamilyMember{
		ID:    uuid.NewString(),
		Name:  name,
		Color: color,
	})
	return out
}

// RemoveMember removes the member and cascades: every chore assigned to
// them is deleted with them, so a member deletion can never strand a
// dangling assignment. Unknown ids filter to a no-op.
func RemoveMember(r model.ChoreRoster, memberID string) model.ChoreRoster {
	out := r.Clone()
	out.Members = lo.Filter(out.Members, func(m model.FamilyMember, _ int) bool {
		return m.ID != memberID
	})
	out.Chores = lo.Filter(out.Chores, func(c model.Chore, _ int) bool {
		return c.AssignedTo != memberID
	})
	return out
}

// AddChore appends a chore due immediately (NextDue = now). AssignedTo is
// not checked against the member list; a stale id surfaces as "unknown" at
// read time rather than failing the write.
func AddChore(r model.ChoreRoster, title, description, assignedTo string, freq model.Frequency, freqValue int, now time.Time) model.ChoreRoster {
	out := r.Clone()
	out.Chores = append(out.Chores, model.Chore{
		ID:             uuid.NewString(),
		Title:          title,
		Description:    description,
		Frequency:      freq,
		FrequencyValue: freqValue,
		AssignedTo:     assignedTo,
		Completed:      false,
		NextDue:        now,
	})
	return out
}

// CompleteChore marks the chore done and schedules the next occurrence
// relative to now, not to the previous due date: completing late shifts
// the whole future cadence forward. Unknown ids return r unchanged.
func CompleteChore(r model.ChoreRoster, choreID string, now time.Time) model.ChoreRoster {
	if _, found := findChore(r, choreID); !found {
		return r
	}
	out := r.Clone()
	out.Chores = lo.Map(out.Chores, func(c model.Chore, _ int) model.Chore {
		if c.ID != choreID {
			return c
		}
		done := now
		c.Completed = true
		c.LastCompleted = &done
		c.NextDue = nextDueAfter(c.Frequency, c.FrequencyValue, now)
		return c
	})
	return out
}

// ResetChore returns the chore to the not-done state. NextDue is left
// exactly where the last completion put it.
func ResetChore(r model.ChoreRoster, choreID string) model.ChoreRoster {
	if _, found := findChore(r, choreID); !found {
		return r
	}
	out := r.Clone()
	out.Chores = lo.Map(out.Chores, func(c model.Chore, _ int) model.Chore {
		if c.ID != choreID {
			return c
		}
		c.Completed = false
		c.LastCompleted = nil
		return c
	})
	return out
}

// DeleteChore removes the chore; unknown ids filter to a no-op.
func DeleteChore(r model.ChoreRoster, choreID string) model.ChoreRoster {
	out := r.Clone()
	out.Chores = lo.Filter(out.Chores, func(c model.Chore, _ int) bool {
		return c.ID != choreID
	})
	return out
}

// ChoresForMember returns the chores assigned to the member, in insertion
// order.
func ChoresForMember(r model.ChoreRoster, memberID string) []model.Chore {
	return lo.Filter(r.Chores, func(c model.Chore, _ int) bool {
		return c.AssignedTo == memberID
	})
}

// OverdueChores returns the not-done chores whose due date fell before the
// start of now's day. Anything due today is not overdue yet, which keeps
// this list disjoint from DueTodayChores for any single now.
func OverdueChores(r model.ChoreRoster, now time.Time) []model.Chore {
	dayStart := startOfDay(now)
	return lo.Filter(r.Chores, func(c model.Chore, _ int) bool {
		return !c.Completed && c.NextDue.Before(dayStart)
	})
}

// DueTodayChores returns the not-done chores due within
// [startOfDay(now), startOfDay(now)+24h).
func DueTodayChores(r model.ChoreRoster, now time.Time) []model.Chore {
	dayStart := startOfDay(now)
	dayEnd := dayStart.Add(24 * time.Hour)
	return lo.Filter(r.Chores, func(c model.Chore, _ int) bool {
		return !c.Completed && !c.NextDue.Before(dayStart) && c.NextDue.Before(dayEnd)
	})
}

// nextDueAfter maps a frequency to a concrete next due date. "custom" is a
// day-count alias of daily, kept for config compatibility. Unrecognized
// frequencies fall back to one week out.
func nextDueAfter(freq model.Frequency, value int, now time.Time) time.Time {
	switch freq {
	case model.FrequencyDaily, model.FrequencyCustom:
		return now.AddDate(0, 0, value)
	case model.FrequencyWeekly:
		return now.AddDate(0, 0, 7*value)
	case model.FrequencyMonthly:
		return addMonthsClamped(now, value)
	default:
		return now.AddDate(0, 0, 7)
	}
}

// addMonthsClamped adds months and clamps to the last day of the target
// month, so Jan 31 + 1 month lands on the end of February instead of
// normalizing into March the way time.AddDate does.
func addMonthsClamped(t time.Time, months int) time.Time {
	target := time.Date(t.Year(), t.Month()+time.Month(months), 1,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	day := t.Day()
	if last := daysInMonth(target.Year(), target.Month()); day > last {
		day = last
	}
	return time.Date(target.Year(), target.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysInMonth(year int, month time.Month) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func findChore(r model.ChoreRoster, choreID string) (model.Chore, bool) {
	return lo.Find(r.Chores, func(c model.Chore) bool { return c.ID == choreID })
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
