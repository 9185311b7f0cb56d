package mood

import "time"

// Snapshot is the whole-state document used by import/export. Import replaces
// in-memory state wholesale.
type Snapshot struct {
	History    []Event   `json:"history"`
	Settings   Settings  `json:"settings"`
	Stats      Stats     `json:"stats"`
	ExportDate time.Time `json:"exportDate"`
}
