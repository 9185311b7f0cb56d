package mood

// Stats aggregates counters over an event log.
type Stats struct {
	Messages   int            `json:"messages"`
	Hugs       int            `json:"hugs"`
	Kisses     int            `json:"kisses"`
	MoodCounts map[string]int `json:"moodCounts"`
}

// NewStats returns zeroed stats with an allocated histogram.
func NewStats() Stats {
	return Stats{MoodCounts: make(map[string]int)}
}

// Record bumps the counters for a single event. Used by the shared store's
// incremental path; clients recompute from the full log instead.
func (s *Stats) Record(e Event) {
	if s.MoodCounts == nil {
		s.MoodCounts = make(map[string]int)
	}
	switch {
	case e.IsMood():
		s.Messages++
		s.MoodCounts[e.Mood]++
	case e.ResponseType == ResponseHug:
		s.Hugs++
	case e.ResponseType == ResponseKiss:
		s.Kisses++
	}
}
