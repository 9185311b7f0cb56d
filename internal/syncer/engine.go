package syncer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/lanyicong/moodlink/backend/internal/analysis/stats"
	"github.com/lanyicong/moodlink/backend/internal/metrics"
	"github.com/lanyicong/moodlink/backend/internal/model/mood"
)

// Store is the durable local persistence the engine writes through. Load
// implementations treat corrupt state as empty, never as an error worth
// failing over.
type Store interface {
	LoadHistory() ([]mood.Event, error)
	SaveHistory([]mood.Event) error
	SaveStats(mood.Stats) error
}

// Config selects the room the engine syncs against.
type Config struct {
	BaseURL      string
	RoomID       string
	UserID       string
	PollInterval time.Duration
	AutoSave     bool
}

// PushResult reports the two-phase outcome of a send: the local commit always
// succeeds; Synced tells whether the remote commit made it too.
type PushResult struct {
	Event  mood.Event
	Synced bool
}

// Engine keeps the local log, derived stats, and the shared room eventually
// consistent. The local log is authoritative on any sync failure.
type Engine struct {
	cfg    Config
	client *http.Client
	store  Store

	mu          sync.Mutex
	history     []mood.Event
	stats       mood.Stats
	partnerMood *mood.Event
	lastUpdated time.Time
}

// New loads the persisted log and prepares the engine. A broken local store
// starts the engine empty rather than failing.
func New(cfg Config, store Store) *Engine {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}

	e := &Engine{
		cfg:    cfg,
		client: newHTTPClient(10 * time.Second),
		store:  store,
	}

	history, err := store.LoadHistory()
	if err != nil {
		log.Printf("[sync] load local history: %v", err)
		history = nil
	}
	e.history = history
	e.stats = stats.Project(history)
	return e
}

// History returns a copy of the merged log, newest-first.
func (e *Engine) History() []mood.Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]mood.Event, len(e.history))
	copy(out, e.history)
	return out
}

// Stats returns the counters recomputed from the current log.
func (e *Engine) Stats() mood.Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

// PartnerMood returns the partner's newest event seen on the last pull.
func (e *Engine) PartnerMood() *mood.Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.partnerMood == nil {
		return nil
	}
	ev := *e.partnerMood
	return &ev
}

type remoteView struct {
	MoodHistory []mood.Event `json:"moodHistory"`
	Stats       mood.Stats   `json:"stats"`
	LastUpdated time.Time    `json:"lastUpdated"`
	PartnerMood *mood.Event  `json:"partnerMood"`
}

type remoteEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// Pull fetches the room view and merges it into the local log. Remote stats
// are ignored; counters are always recomputed from the merged log so a stale
// or partial remote summary cannot drift them. Any failure leaves local state
// untouched.
func (e *Engine) Pull(ctx context.Context) error {
	view, err := e.fetch(ctx)
	if err != nil {
		metrics.Pulls.WithLabelValues("error").Inc()
		return err
	}
	metrics.Pulls.WithLabelValues("ok").Inc()

	e.mu.Lock()
	e.history = Merge(e.history, view.MoodHistory)
	e.stats = stats.Project(e.history)
	e.partnerMood = view.PartnerMood
	e.lastUpdated = view.LastUpdated
	e.persistLocked()
	e.mu.Unlock()

	return nil
}

func (e *Engine) fetch(ctx context.Context) (remoteView, error) {
	endpoint := fmt.Sprintf("%s/api/mood?roomId=%s&userId=%s",
		e.cfg.BaseURL, url.QueryEscape(e.cfg.RoomID), url.QueryEscape(e.cfg.UserID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return remoteView{}, fmt.Errorf("build pull request: %w", err)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return remoteView{}, fmt.Errorf("pull room view: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return remoteView{}, fmt.Errorf("pull room view: unexpected status %d", resp.StatusCode)
	}

	var envelope remoteEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return remoteView{}, fmt.Errorf("decode room view: %w", err)
	}
	if !envelope.Success {
		return remoteView{}, fmt.Errorf("pull room view: %s", envelope.Error)
	}

	var view remoteView
	if err := json.Unmarshal(envelope.Data, &view); err != nil {
		return remoteView{}, fmt.Errorf("decode room view: %w", err)
	}
	return view, nil
}

type pushPayload struct {
	RoomID       string `json:"roomId"`
	UserID       string `json:"userId"`
	Mood         string `json:"mood,omitempty"`
	Message      string `json:"message,omitempty"`
	Type         string `json:"type"`
	ResponseType string `json:"responseType,omitempty"`
	Emoji        string `json:"emoji"`
	Label        string `json:"label"`
	Sender       string `json:"sender"`
	Timestamp    string `json:"timestamp"`
}

// Push commits one user-created event: local first, so the view reflects the
// action immediately and survives offline use, then a best-effort remote
// append. The local copy is never rolled back; a remote failure just comes
// back as Synced=false.
func (e *Engine) Push(ctx context.Context, event mood.Event) (PushResult, error) {
	if err := event.Validate(); err != nil {
		return PushResult{}, err
	}

	event.ApplyDefaults()
	if event.ResponseType != "" {
		event.Type = mood.KindResponse
	}
	if event.Sender == "" {
		event.Sender = e.cfg.UserID
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	// Phase one: local commit, infallible.
	e.mu.Lock()
	e.history = Prepend(e.history, event)
	e.stats = stats.Project(e.history)
	e.persistLocked()
	e.mu.Unlock()

	// Phase two: remote commit attempt.
	if err := e.appendRemote(ctx, event); err != nil {
		log.Printf("[sync] push failed, event saved locally only: %v", err)
		metrics.Pushes.WithLabelValues("local_only").Inc()
		return PushResult{Event: event, Synced: false}, nil
	}

	metrics.Pushes.WithLabelValues("synced").Inc()
	return PushResult{Event: event, Synced: true}, nil
}

func (e *Engine) appendRemote(ctx context.Context, event mood.Event) error {
	payload := pushPayload{
		RoomID:       e.cfg.RoomID,
		UserID:       e.cfg.UserID,
		Mood:         event.Mood,
		Message:      event.Message,
		Type:         string(event.Type),
		ResponseType: string(event.ResponseType),
		Emoji:        event.Emoji,
		Label:        event.Label,
		Sender:       event.Sender,
		Timestamp:    event.Timestamp.UTC().Format(time.RFC3339Nano),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode push payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.cfg.BaseURL+"/api/mood", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("push event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("push event: unexpected status %d", resp.StatusCode)
	}

	var envelope remoteEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode push response: %w", err)
	}
	if !envelope.Success {
		return fmt.Errorf("push event: %s", envelope.Error)
	}
	return nil
}

// Clear drops the local log and stats and persists the empty state.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.history = nil
	e.stats = mood.NewStats()
	e.partnerMood = nil
	e.persistLocked()
}

// Replace swaps in imported state wholesale and persists it. Stats are
// recomputed from the imported log rather than trusted from the snapshot.
func (e *Engine) Replace(history []mood.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(history) > mood.HistoryCap {
		history = history[:mood.HistoryCap]
	}
	e.history = history
	e.stats = stats.Project(history)
	e.persistLocked()
}

// persistLocked writes through to the local store when auto-save is on.
// Storage failures are logged, never fatal. Caller must hold e.mu.
func (e *Engine) persistLocked() {
	if !e.cfg.AutoSave {
		return
	}
	if err := e.store.SaveHistory(e.history); err != nil {
		log.Printf("[sync] persist history: %v", err)
	}
	if err := e.store.SaveStats(e.stats); err != nil {
		log.Printf("[sync] persist stats: %v", err)
	}
}

// Run pulls once immediately, then on every tick until the context ends.
// Pull errors are swallowed; the local log stays authoritative.
func (e *Engine) Run(ctx context.Context) {
	if err := e.Pull(ctx); err != nil {
		log.Printf("[sync] initial pull: %v", err)
	}

	ticker := time.NewTicker(e.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := e.Pull(ctx); err != nil {
				log.Printf("[sync] pull: %v", err)
			}
		}
	}
}
