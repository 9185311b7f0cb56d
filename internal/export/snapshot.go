package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/lanyicong/moodlink/backend/internal/model/mood"
)

// Write saves the whole-state snapshot as one readable JSON document.
func Write(path string, snap mood.Snapshot) error {
	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Read loads a snapshot for import. Unlike local persistence, a broken file
// is an error here: the user asked for exactly this document.
func Read(path string) (mood.Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return mood.Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}

	var snap mood.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return mood.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}

// DefaultFilename names exports the way the dashboard did.
func DefaultFilename(now time.Time) string {
	return fmt.Sprintf("ldr-mood-data-%s.json", now.UTC().Format("2006-01-02"))
}
