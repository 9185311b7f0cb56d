package localstore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/lanyicong/moodlink/backend/internal/model/mood"
)

// Keys mirror the browser dashboard's localStorage slots.
const (
	keyHistory  = "moodHistory"
	keySettings = "dashboardSettings"
	keyStats    = "moodStats"
)

// Store is the device's durable key-value storage for the serialized local
// log, settings, and stats. Corrupt values decode to defaults; losing state
// is acceptable, crashing over it is not.
type Store struct {
	db *sql.DB
}

// Open creates the data directory and database on first use.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "moodlink.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) get(key string) ([]byte, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(value), true, nil
}

func (s *Store) put(key string, value []byte) error {
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO kv (key, value, updated_at) VALUES (?, ?, ?)",
		key, string(value), time.Now().UTC(),
	)
	return err
}

// LoadHistory reads the persisted local log. Missing or corrupt state comes
// back empty.
func (s *Store) LoadHistory() ([]mood.Event, error) {
	raw, ok, err := s.get(keyHistory)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var history []mood.Event
	if err := json.Unmarshal(raw, &history); err != nil {
		log.Printf("[store] corrupt history, starting empty: %v", err)
		return nil, nil
	}
	return history, nil
}

// SaveHistory writes the serialized local log.
func (s *Store) SaveHistory(history []mood.Event) error {
	raw, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	return s.put(keyHistory, raw)
}

// LoadSettings reads device settings, falling back to defaults.
func (s *Store) LoadSettings() (mood.Settings, error) {
	raw, ok, err := s.get(keySettings)
	if err != nil {
		return mood.DefaultSettings(), fmt.Errorf("load settings: %w", err)
	}
	if !ok {
		return mood.DefaultSettings(), nil
	}

	settings := mood.DefaultSettings()
	if err := json.Unmarshal(raw, &settings); err != nil {
		log.Printf("[store] corrupt settings, using defaults: %v", err)
		return mood.DefaultSettings(), nil
	}
	return settings, nil
}

// SaveSettings writes device settings.
func (s *Store) SaveSettings(settings mood.Settings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return s.put(keySettings, raw)
}

// LoadStats reads the persisted counters, falling back to zeroes.
func (s *Store) LoadStats() (mood.Stats, error) {
	raw, ok, err := s.get(keyStats)
	if err != nil {
		return mood.NewStats(), fmt.Errorf("load stats: %w", err)
	}
	if !ok {
		return mood.NewStats(), nil
	}

	stats := mood.NewStats()
	if err := json.Unmarshal(raw, &stats); err != nil {
		log.Printf("[store] corrupt stats, starting zeroed: %v", err)
		return mood.NewStats(), nil
	}
	return stats, nil
}

// SaveStats writes the derived counters.
func (s *Store) SaveStats(stats mood.Stats) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("encode stats: %w", err)
	}
	return s.put(keyStats, raw)
}
