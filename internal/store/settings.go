package store

import (
	"database/sql"
	"fmt"
	"time"
)

var weatherKeys = []string{
	"weather_latitude",
	"weather_longitude",
	"weather_location_name",
	"weather_units",
}

var themeKeys = []string{
	"theme_background",
	"theme_header",
	"theme_widget_header",
}

var calendarKeys = []string{
	"calendar_google_id",
	"calendar_apple_url",
	"calendar_outlook_id",
}

// lockPINKey holds the bcrypt hash of the dashboard lock PIN. No row means
// the dashboard is unlocked.
const lockPINKey = "lock_pin"

type SettingsStore struct {
	db *sql.DB
}

func NewSettingsStore(db *sql.DB) *SettingsStore {
	return &SettingsStore{db: db}
}

func (s *SettingsStore) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("setting %q not found", key)
	}
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *SettingsStore) Set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}

func (s *SettingsStore) GetWeatherSettings() (map[string]string, error) {
	return s.getKeys(weatherKeys)
}

func (s *SettingsStore) GetThemeSettings() (map[string]string, error) {
	return s.getKeys(themeKeys)
}

func (s *SettingsStore) GetCalendarSettings() (map[string]string, error) {
	return s.getKeys(calendarKeys)
}

// SetLockPIN stores the bcrypt hash for the dashboard lock.
func (s *SettingsStore) SetLockPIN(hash string) error {
	return s.Set(lockPINKey, hash)
}

// GetLockPINHash returns the stored hash, or "" when no lock is set.
func (s *SettingsStore) GetLockPINHash() (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, lockPINKey).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get lock pin: %w", err)
	}
	return value, nil
}

// ClearLockPIN removes the dashboard lock.
func (s *SettingsStore) ClearLockPIN() error {
	if _, err := s.db.Exec(`DELETE FROM settings WHERE key = ?`, lockPINKey); err != nil {
		return fmt.Errorf("clear lock pin: %w", err)
	}
	return nil
}

func (s *SettingsStore) getKeys(keys []string) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	for _, key := range keys {
		value, err := s.Get(key)
		if err != nil {
			return nil, err
		}
		out[key] = value
	}
	return out, nil
}
