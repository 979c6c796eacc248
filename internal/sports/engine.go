// Package sports computes the sports widget's state: which family members
// play what, and the practice/game schedule for each sport.
//
// Like the chore engine, everything here is a pure function over an
// immutable roster value: the host applies an operation, gets a fresh
// roster back, and replaces the one it holds.
package sports

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/mvarner/hearth/internal/model"
)

// DefaultWindowDays is the forward window the schedule view shows.
const DefaultWindowDays = 14

// DefaultRoster returns an empty sports roster.
func DefaultRoster() model.SportsRoster {
	return model.SportsRoster{
		Members: []model.FamilyMember{},
		Sports:  []model.Sport{},
	}
}

// AddMember appends a member with a fresh id.
func AddMember(r model.SportsRoster, name, color string) model.SportsRoster {
	out := r.Clone()
	out.Members = append(out.Members, model.FamilyMember{
		ID:    uuid.NewString(),
		Name:  name,
		Color: color,
	})
	return out
}

// MemberPatch carries the fields UpdateMember may change; nil fields are
// left alone.
type MemberPatch struct {
	Name  *string
	Color *string
}

// UpdateMember applies the patch to the matching member; unknown ids are a
// no-op.
func UpdateMember(r model.SportsRoster, memberID string, patch MemberPatch) model.SportsRoster {
	out := r.Clone()
	out.Members = lo.Map(out.Members, func(m model.FamilyMember, _ int) model.FamilyMember {
		if m.ID != memberID {
			return m
		}
		if patch.Name != nil {
			m.Name = *patch.Name
		}
		if patch.Color != nil {
			m.Color = *patch.Color
		}
		return m
	})
	return out
}

// RemoveMember removes the member and cascades to their sports, and with
// them every scheduled event.
func RemoveMember(r model.SportsRoster, memberID string) model.SportsRoster {
	out := r.Clone()
	out.Members = lo.Filter(out.Members, func(m model.FamilyMember, _ int) bool {
		return m.ID != memberID
	})
	out.Sports = lo.Filter(out.Sports, func(s model.Sport, _ int) bool {
		return s.FamilyMemberID != memberID
	})
	return out
}

// AddSport appends a sport with no scheduled events yet.
func AddSport(r model.SportsRoster, name, familyMemberID string, equipment []string) model.SportsRoster {
	out := r.Clone()
	out.Sports = append(out.Sports, model.Sport{
		ID:             uuid.NewString(),
		Name:           name,
		FamilyMemberID: familyMemberID,
		Equipment:      append([]string(nil), equipment...),
		Events:         []model.SportEvent{},
	})
	return out
}

// SportPatch carries the fields UpdateSport may change.
type SportPatch struct {
	Name           *string
	FamilyMemberID *string
	Equipment      *[]string
}

// UpdateSport shallow-merges the patch into the matching sport; unknown
// ids are a no-op. Schedules are untouched.
func UpdateSport(r model.SportsRoster, sportID string, patch SportPatch) model.SportsRoster {
	out := r.Clone()
	out.Sports = lo.Map(out.Sports, func(s model.Sport, _ int) model.Sport {
		if s.ID != sportID {
			return s
		}
		if patch.Name != nil {
			s.Name = *patch.Name
		}
		if patch.FamilyMemberID != nil {
			s.FamilyMemberID = *patch.FamilyMemberID
		}
		if patch.Equipment != nil {
			s.Equipment = append([]string(nil), *patch.Equipment...)
		}
		return s
	})
	return out
}

// RemoveSport removes the sport and its schedule.
func RemoveSport(r model.SportsRoster, sportID string) model.SportsRoster {
	out := r.Clone()
	out.Sports = lo.Filter(out.Sports, func(s model.Sport, _ int) bool {
		return s.ID != sportID
	})
	return out
}

// EventFields holds the caller-supplied parts of a new event. The id, the
// sport id, and the owning member id are filled in by AddEvent.
type EventFields struct {
	Title     string
	Date      model.Date
	StartTime string
	EndTime   string
	Location  string
	Type      model.EventType
	Equipment []string
	Notes     string
}

// AddEvent appends an event to the sport's schedule with a fresh id. The
// event inherits the sport's id and owning member so the embedded copies
// queries rely on stay consistent. Unknown sport ids return r unchanged.
func AddEvent(r model.SportsRoster, sportID string, fields EventFields) model.SportsRoster {
	if _, found := findSport(r, sportID); !found {
		return r
	}
	out := r.Clone()
	out.Sports = lo.Map(out.Sports, func(s model.Sport, _ int) model.Sport {
		if s.ID != sportID {
			return s
		}
		s.Events = append(s.Events, model.SportEvent{
			ID:             uuid.NewString(),
			Title:          fields.Title,
			Date:           fields.Date,
			StartTime:      fields.StartTime,
			EndTime:        fields.EndTime,
			Location:       fields.Location,
			Type:           fields.Type,
			SportID:        s.ID,
			FamilyMemberID: s.FamilyMemberID,
			Equipment:      append([]string(nil), fields.Equipment...),
			Notes:          fields.Notes,
		})
		return s
	})
	return out
}

// EventPatch carries the fields UpdateEvent may change.
type EventPatch struct {
	Title     *string
	Date      *model.Date
	StartTime *string
	EndTime   *string
	Location  *string
	Type      *model.EventType
	Equipment *[]string
	Notes     *string
}

// UpdateEvent applies the patch to the matching event within the sport's
// schedule. Unknown sport or event ids are a no-op.
func UpdateEvent(r model.SportsRoster, sportID, eventID string, patch EventPatch) model.SportsRoster {
	out := r.Clone()
	out.Sports = lo.Map(out.Sports, func(s model.Sport, _ int) model.Sport {
		if s.ID != sportID {
			return s
		}
		s.Events = lo.Map(s.Events, func(e model.SportEvent, _ int) model.SportEvent {
			if e.ID != eventID {
				return e
			}
			if patch.Title != nil {
				e.Title = *patch.Title
			}
			if patch.Date != nil {
				e.Date = *patch.Date
			}
			if patch.StartTime != nil {
				e.StartTime = *patch.StartTime
			}
			if patch.EndTime != nil {
				e.EndTime = *patch.EndTime
			}
			if patch.Location != nil {
				e.Location = *patch.Location
			}
			if patch.Type != nil {
				e.Type = *patch.Type
			}
			if patch.Equipment != nil {
				e.Equipment = append([]string(nil), *patch.Equipment...)
			}
			if patch.Notes != nil {
				e.Notes = *patch.Notes
			}
			return e
		})
		return s
	})
	return out
}

// RemoveEvent filters the event out of the sport's schedule.
func RemoveEvent(r model.SportsRoster, sportID, eventID string) model.SportsRoster {
	out := r.Clone()
	out.Sports = lo.Map(out.Sports, func(s model.Sport, _ int) model.Sport {
		if s.ID != sportID {
			return s
		}
		s.Events = lo.Filter(s.Events, func(e model.SportEvent, _ int) bool {
			return e.ID != eventID
		})
		return s
	})
	return out
}

// AllEvents flattens every sport's schedule into one list sorted ascending
// by date. The sort is stable over a practices-then-games merge per sport,
// so same-date ties keep practices before games within a sport and sports
// in insertion order.
func AllEvents(r model.SportsRoster) []model.SportEvent {
	var all []model.SportEvent
	for _, s := range r.Sports {
		all = append(all, s.Practices()...)
		all = append(all, s.Games()...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Date.Before(all[j].Date)
	})
	return all
}

// UpcomingEvents returns the events dated within [today, today+windowDays],
// inclusive on both ends, where today is now's calendar date. windowDays
// <= 0 falls back to DefaultWindowDays.
func UpcomingEvents(r model.SportsRoster, now time.Time, windowDays int) []model.SportEvent {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	from := model.DateOf(now)
	to := from.AddDays(windowDays)
	return lo.Filter(AllEvents(r), func(e model.SportEvent, _ int) bool {
		return !e.Date.Before(from) && !e.Date.After(to)
	})
}

// MemberStats reports how many sports the member owns and how many of
// their events are dated today or later. The event count has no forward
// bound, unlike UpcomingEvents.
func MemberStats(r model.SportsRoster, memberID string, now time.Time) model.MemberStats {
	today := model.DateOf(now)
	return model.MemberStats{
		SportsCount: lo.CountBy(r.Sports, func(s model.Sport) bool {
			return s.FamilyMemberID == memberID
		}),
		UpcomingEvents: lo.CountBy(AllEvents(r), func(e model.SportEvent) bool {
			return e.FamilyMemberID == memberID && !e.Date.Before(today)
		}),
	}
}

func findSport(r model.SportsRoster, sportID string) (model.Sport, bool) {
	return lo.Find(r.Sports, func(s model.Sport) bool { return s.ID == sportID })
}
