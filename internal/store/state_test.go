package store

import (
	"reflect"
	"testing"
	"time"

	"github.com/mvarner/hearth/internal/database"
	"github.com/mvarner/hearth/internal/model"
)

func setupStateTestDB(t *testing.T) *StateStore {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStateStore(db)
}

func TestLoadWithoutSnapshot(t *testing.T) {
	ss := setupStateTestDB(t)

	_, ok, err := ss.LoadChoreRoster()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok {
		t.Error("empty db reported a chore snapshot")
	}

	_, ok, err = ss.LoadSportsRoster()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok {
		t.Error("empty db reported a sports snapshot")
	}
}

func TestChoreRosterSaveLoad(t *testing.T) {
	ss := setupStateTestDB(t)

	done := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	r := model.ChoreRoster{
		Members: []model.FamilyMember{{ID: "m1", Name: "Mom", Color: "#FF6B6B"}},
		Chores: []model.Chore{{
			ID: "c1", Title: "Dishes", Frequency: model.FrequencyDaily,
			FrequencyValue: 1, AssignedTo: "m1", Completed: true,
			LastCompleted: &done,
			NextDue:       time.Date(2024, 3, 2, 9, 30, 0, 0, time.UTC),
		}},
	}

	if err := ss.SaveChoreRoster(r); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok, err := ss.LoadChoreRoster()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !ok {
		t.Fatal("snapshot not found after save")
	}
	if !reflect.DeepEqual(r, got) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, r)
	}
}

func TestSportsRosterSaveOverwrites(t *testing.T) {
	ss := setupStateTestDB(t)

	d, _ := model.ParseDate("2024-04-10")
	first := model.SportsRoster{
		Members: []model.FamilyMember{{ID: "m1", Name: "Alice", Color: "#45B7D1"}},
		Sports: []model.Sport{{
			ID: "s1", Name: "Soccer", FamilyMemberID: "m1",
			Events: []model.SportEvent{{
				ID: "e1", Title: "Practice", Date: d, StartTime: "16:00",
				EndTime: "17:30", Type: model.EventPractice,
				SportID: "s1", FamilyMemberID: "m1",
			}},
		}},
	}
	if err := ss.SaveSportsRoster(first); err != nil {
		t.Fatalf("save: %v", err)
	}

	second := first
	second.Sports = nil
	if err := ss.SaveSportsRoster(second); err != nil {
		t.Fatalf("save again: %v", err)
	}

	got, ok, err := ss.LoadSportsRoster()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !ok {
		t.Fatal("snapshot not found")
	}
	if len(got.Sports) != 0 {
		t.Errorf("second save did not replace the first: %+v", got.Sports)
	}
}

// The two snapshots are independent rows; saving one never disturbs the
// other.
func TestSnapshotsIndependent(t *testing.T) {
	ss := setupStateTestDB(t)

	chores := model.ChoreRoster{Members: []model.FamilyMember{{ID: "m1", Name: "Mom", Color: "#FF6B6B"}}}
	if err := ss.SaveChoreRoster(chores); err != nil {
		t.Fatalf("save chores: %v", err)
	}
	sportsR := model.SportsRoster{Members: []model.FamilyMember{{ID: "m2", Name: "Alice", Color: "#45B7D1"}}}
	if err := ss.SaveSportsRoster(sportsR); err != nil {
		t.Fatalf("save sports: %v", err)
	}

	gotChores, ok, err := ss.LoadChoreRoster()
	if err != nil || !ok {
		t.Fatalf("load chores: ok=%v err=%v", ok, err)
	}
	if gotChores.Members[0].ID != "m1" {
		t.Errorf("chore snapshot = %+v", gotChores.Members)
	}
	gotSports, ok, err := ss.LoadSportsRoster()
	if err != nil || !ok {
		t.Fatalf("load sports: ok=%v err=%v", ok, err)
	}
	if gotSports.Members[0].ID != "m2" {
		t.Errorf("sports snapshot = %+v", gotSports.Members)
	}
}
