package stats

import (
	"time"

	"github.com/lanyicong/moodlink/backend/internal/model/mood"
)

// Project derives aggregate counters from a full event log scan. It is the
// single source of truth on the client: after any merge, import, or
// truncation the counters are rebuilt from scratch, so they can never drift
// from the log they describe.
func Project(events []mood.Event) mood.Stats {
	s := mood.NewStats()
	for _, e := range events {
		s.Record(e)
	}
	return s
}

// Window names a stats filtering period.
type Window string

const (
	WindowAll   Window = "all"
	WindowToday Window = "today"
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
)

// Filter returns the events falling inside the window, evaluated against now.
// Today means the same calendar day; week and month are rolling 7- and 30-day
// spans.
func Filter(events []mood.Event, w Window, now time.Time) []mood.Event {
	var since time.Time
	switch w {
	case WindowToday:
		y, m, d := now.Date()
		since = time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	case WindowWeek:
		since = now.Add(-7 * 24 * time.Hour)
	case WindowMonth:
		since = now.Add(-30 * 24 * time.Hour)
	default:
		return events
	}

	filtered := make([]mood.Event, 0, len(events))
	for _, e := range events {
		if !e.Timestamp.Before(since) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}
