package model

// EventType partitions a sport's schedule into practices and games.
type EventType string

const (
	EventPractice EventType = "practice"
	EventGame     EventType = "game"
)

func (t EventType) Valid() bool {
	return t == EventPractice || t == EventGame
}

// SportEvent is a single practice or game. SportID and FamilyMemberID
// duplicate the owning sport's identity; the embedded copies are what
// queries read, so writers keep them in sync with containment.
type SportEvent struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Date           Date      `json:"date"`
	StartTime      string    `json:"start_time"` // "HH:MM"
	EndTime        string    `json:"end_time"`   // "HH:MM"
	Location       string    `json:"location"`
	Type           EventType `json:"type"`
	SportID        string    `json:"sport_id"`
	FamilyMemberID string    `json:"family_member_id"`
	Equipment      []string  `json:"equipment"`
	Notes          string    `json:"notes,omitempty"`
}

// Sport is one activity owned by one family member. Events is a single
// ordered list; practice and game views are derived by filtering on
// Type rather than kept as two parallel lists.
type Sport struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	FamilyMemberID string       `json:"family_member_id"`
	Equipment      []string     `json:"equipment"`
	Events         []SportEvent `json:"events"`
}

// Practices returns the practice events in insertion order.
func (s Sport) Practices() []SportEvent {
	return s.eventsOfType(EventPractice)
}

// Games returns the game events in insertion order.
func (s Sport) Games() []SportEvent {
	return s.eventsOfType(EventGame)
}

func (s Sport) eventsOfType(t EventType) []SportEvent {
	var out []SportEvent
	for _, e := range s.Events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// SportsRoster is the sports widget's aggregate, with the same
// immutable-replacement discipline as ChoreRoster.
type SportsRoster struct {
	Members []FamilyMember `json:"members"`
	Sports  []Sport        `json:"sports"`
}

// Clone returns a deep copy, including every sport's equipment and event
// lists.
func (r SportsRoster) Clone() SportsRoster {
	out := SportsRoster{
		Members: make([]FamilyMember, len(r.Members)),
		Sports:  make([]Sport, len(r.Sports)),
	}
	copy(out.Members, r.Members)
	for i, s := range r.Sports {
		out.Sports[i] = s.clone()
	}
	return out
}

func (s Sport) clone() Sport {
	out := s
	out.Equipment = cloneStrings(s.Equipment)
	if s.Events != nil {
		out.Events = make([]SportEvent, len(s.Events))
		for i, e := range s.Events {
			e.Equipment = cloneStrings(e.Equipment)
			out.Events[i] = e
		}
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// MemberStats summarizes one member's sports involvement. UpcomingEvents
// counts every event dated today or later with no forward bound, which is
// intentionally different from the schedule view's bounded window.
type MemberStats struct {
	SportsCount    int `json:"sports_count"`
	UpcomingEvents int `json:"upcoming_events_count"`
}
