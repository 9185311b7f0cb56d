package syncer

import (
	"sort"

	"github.com/lanyicong/moodlink/backend/internal/model/mood"
)

// Merge folds remote events into the local log. A remote event is taken only
// when no local event shares its dedup key, so replaying the same remote view
// any number of times yields the same log. The result is ordered newest-first
// and capped; ties keep local entries ahead of remote ones.
func Merge(local, remote []mood.Event) []mood.Event {
	seen := make(map[string]struct{}, len(local))
	merged := make([]mood.Event, 0, len(local)+len(remote))

	for _, e := range local {
		key := e.DedupKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, e)
	}

	for _, e := range remote {
		key := e.DedupKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, e)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Timestamp.After(merged[j].Timestamp)
	})

	if len(merged) > mood.HistoryCap {
		merged = merged[:mood.HistoryCap]
	}
	return merged
}

// Prepend commits one freshly created event at the head of the log, keeping
// the cap invariant.
func Prepend(log []mood.Event, event mood.Event) []mood.Event {
	out := make([]mood.Event, 0, len(log)+1)
	out = append(out, event)
	out = append(out, log...)
	if len(out) > mood.HistoryCap {
		out = out[:mood.HistoryCap]
	}
	return out
}
