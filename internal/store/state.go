package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mvarner/hearth/internal/model"
)

// Snapshot keys. One row per widget data domain.
const (
	snapshotChores = "chores"
	snapshotSports = "sports"
)

// StateStore persists roster snapshots between sessions. The engines never
// see it: the host saves the current roster value after each replacement
// and loads it once at startup. Snapshots are stored as JSON documents, so
// a load-then-save round trip is lossless.
type StateStore struct {
	db *sql.DB
}

func NewStateStore(db *sql.DB) *StateStore {
	return &StateStore{db: db}
}

// SaveChoreRoster replaces the stored chore snapshot.
func (s *StateStore) SaveChoreRoster(r model.ChoreRoster) error {
	return s.save(snapshotChores, r)
}

// LoadChoreRoster returns the stored chore roster. The second return is
// false when no snapshot has been saved yet.
func (s *StateStore) LoadChoreRoster() (model.ChoreRoster, bool, error) {
	var r model.ChoreRoster
	ok, err := s.load(snapshotChores, &r)
	return r, ok, err
}

// SaveSportsRoster replaces the stored sports snapshot.
func (s *StateStore) SaveSportsRoster(r model.SportsRoster) error {
	return s.save(snapshotSports, r)
}

// LoadSportsRoster returns the stored sports roster, if any.
func (s *StateStore) LoadSportsRoster() (model.SportsRoster, bool, error) {
	var r model.SportsRoster
	ok, err := s.load(snapshotSports, &r)
	return r, ok, err
}

func (s *StateStore) save(key string, v any) error {
	doc, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s snapshot: %w", key, err)
	}
	_, err = s.db.Exec(
		`INSERT INTO snapshots (key, doc, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at`,
		key, string(doc), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save %s snapshot: %w", key, err)
	}
	return nil
}

func (s *StateStore) load(key string, v any) (bool, error) {
	var doc string
	err := s.db.QueryRow(`SELECT doc FROM snapshots WHERE key = ?`, key).Scan(&doc)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %s snapshot: %w", key, err)
	}
	if err := json.Unmarshal([]byte(doc), v); err != nil {
		return false, fmt.Errorf("decode %s snapshot: %w", key, err)
	}
	return true, nil
}
