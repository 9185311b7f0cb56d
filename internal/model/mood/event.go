package mood

import (
	"errors"
	"time"
)

// Kind distinguishes the two event variants exchanged between partners.
type Kind string

const (
	KindMood     Kind = "mood"
	KindResponse Kind = "response"
)

// ResponseKind narrows response events to the supported gestures.
type ResponseKind string

const (
	ResponseHug     ResponseKind = "hug"
	ResponseKiss    ResponseKind = "kiss"
	ResponseMessage ResponseKind = "message"
)

// HistoryCap bounds every event log, local or shared. Oldest entries are
// silently dropped.
const HistoryCap = 100

const (
	defaultEmoji = "😊"
	defaultLabel = "情绪"
)

var ErrMissingFields = errors.New("missing required fields")

// Event is an immutable mood or response record. Timestamp plus Sender form
// the natural dedup key: no two retained events may share both.
type Event struct {
	ID           string       `json:"id,omitempty"`
	Mood         string       `json:"mood,omitempty"`
	Emoji        string       `json:"emoji"`
	Label        string       `json:"label"`
	Message      string       `json:"message"`
	Type         Kind         `json:"type"`
	ResponseType ResponseKind `json:"responseType,omitempty"`
	Timestamp    time.Time    `json:"timestamp"`
	Sender       string       `json:"sender"`
}

// Validate rejects records carrying neither a mood nor a response kind.
// Fields irrelevant to the event's kind are ignored, never errors.
func (e Event) Validate() error {
	if e.Mood == "" && e.ResponseType == "" {
		return ErrMissingFields
	}
	return nil
}

// ApplyDefaults fills display fields and the kind the way the shared store
// stamps them, so locally created and remotely stored copies stay identical.
func (e *Event) ApplyDefaults() {
	if e.Emoji == "" {
		e.Emoji = defaultEmoji
	}
	if e.Label == "" {
		e.Label = defaultLabel
	}
	if e.Type == "" {
		e.Type = KindMood
	}
}

// DedupKey identifies the same event across merge boundaries.
func (e Event) DedupKey() string {
	return e.Timestamp.UTC().Format(time.RFC3339Nano) + "|" + e.Sender
}

// IsMood reports whether the event counts toward the mood histogram.
func (e Event) IsMood() bool {
	return e.Type == KindMood && e.Mood != ""
}
