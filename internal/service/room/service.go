package room

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lanyicong/moodlink/backend/internal/model/mood"
)

// Entry is the shared state held for one room.
type Entry struct {
	MoodHistory []mood.Event `json:"moodHistory"`
	Stats       mood.Stats   `json:"stats"`
	LastUpdated time.Time    `json:"lastUpdated"`
}

// View is what a polling client sees: the room entry plus the newest event
// written by the other participant.
type View struct {
	MoodHistory []mood.Event `json:"moodHistory"`
	Stats       mood.Stats   `json:"stats"`
	LastUpdated time.Time    `json:"lastUpdated"`
	PartnerMood *mood.Event  `json:"partnerMood"`
}

// Service holds every room for the lifetime of the process. Rooms are created
// lazily on first access and never deleted. All reads and appends apply as one
// atomic step under the service mutex, so no partial append is observable.
type Service struct {
	mu    sync.Mutex
	rooms map[string]*Entry
	subs  map[string][]chan time.Time
	now   func() time.Time
}

// NewService bootstraps the in-memory room store.
func NewService() *Service {
	return &Service{
		rooms: make(map[string]*Entry),
		subs:  make(map[string][]chan time.Time),
		now:   time.Now,
	}
}

// getRoom returns the entry for roomID, creating an empty one on first use.
// Caller must hold s.mu.
func (s *Service) getRoom(roomID string) *Entry {
	entry, ok := s.rooms[roomID]
	if !ok {
		entry = &Entry{
			MoodHistory: make([]mood.Event, 0, 16),
			Stats:       mood.NewStats(),
			LastUpdated: s.now().UTC(),
		}
		s.rooms[roomID] = entry
	}
	return entry
}

// Append validates and stores one event in the room. A parseable
// client-supplied timestamp is kept so the stored copy shares its dedup key
// with the sender's optimistic local copy; only absent timestamps get a
// server stamp. Malformed events leave the room untouched.
func (s *Service) Append(_ context.Context, roomID string, event mood.Event) (mood.Event, error) {
	if err := event.Validate(); err != nil {
		return mood.Event{}, err
	}

	event.ApplyDefaults()
	if event.ResponseType != "" {
		event.Type = mood.KindResponse
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.getRoom(roomID)

	event.ID = uuid.NewString()
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now().UTC()
	}

	entry.MoodHistory = append([]mood.Event{event}, entry.MoodHistory...)
	if len(entry.MoodHistory) > mood.HistoryCap {
		entry.MoodHistory = entry.MoodHistory[:mood.HistoryCap]
	}

	entry.Stats.Record(event)
	entry.LastUpdated = s.now().UTC()

	s.notify(roomID, entry.LastUpdated)

	return event, nil
}

// Read returns the room view for one requester. The partner mood is the
// newest history entry whose sender differs from requesterID, or nil.
func (s *Service) Read(_ context.Context, roomID, requesterID string) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.getRoom(roomID)

	history := make([]mood.Event, len(entry.MoodHistory))
	copy(history, entry.MoodHistory)

	var partner *mood.Event
	for i := range history {
		if history[i].Sender != requesterID {
			ev := history[i]
			partner = &ev
			break
		}
	}

	return View{
		MoodHistory: history,
		Stats:       entry.Stats,
		LastUpdated: entry.LastUpdated,
		PartnerMood: partner,
	}
}

// Subscribe registers for room-update nudges. The returned cancel func must
// be called when the subscriber goes away.
func (s *Service) Subscribe(roomID string) (<-chan time.Time, func()) {
	ch := make(chan time.Time, 1)

	s.mu.Lock()
	s.subs[roomID] = append(s.subs[roomID], ch)
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		subs := s.subs[roomID]
		for i, sub := range subs {
			if sub == ch {
				s.subs[roomID] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
	}
	return ch, cancel
}

// notify nudges subscribers without blocking; a full channel coalesces.
// Caller must hold s.mu.
func (s *Service) notify(roomID string, at time.Time) {
	for _, ch := range s.subs[roomID] {
		select {
		case ch <- at:
		default:
		}
	}
}
