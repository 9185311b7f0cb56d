package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Appends counts stored room events by kind.
	Appends = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "moodlink",
		Name:      "room_appends_total",
		Help:      "Number of events appended to shared rooms",
	}, []string{"kind"})

	// Reads counts room view fetches.
	Reads = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "moodlink",
		Name:      "room_reads_total",
		Help:      "Number of room view reads",
	})

	// ValidationRejects counts appends refused at ingestion.
	ValidationRejects = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "moodlink",
		Name:      "room_validation_rejects_total",
		Help:      "Number of append payloads rejected by validation",
	})

	// Pulls counts client sync pulls by outcome.
	Pulls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "moodlink",
		Name:      "sync_pulls_total",
		Help:      "Number of sync engine pulls by status",
	}, []string{"status"})

	// Pushes counts client pushes by outcome.
	Pushes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "moodlink",
		Name:      "sync_pushes_total",
		Help:      "Number of sync engine pushes by status",
	}, []string{"status"})
)

func init() {
	prometheus.MustRegister(Appends, Reads, ValidationRejects, Pulls, Pushes)
}
