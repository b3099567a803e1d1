package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// OccurrencesCreatedTotal counts successful occurrence submissions.
	OccurrencesCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "urbanmap",
		Subsystem: "engine",
		Name:      "occurrences_created_total",
		Help:      "Total number of user-submitted occurrences created.",
	})

	// VotesTotal counts applied community votes.
	VotesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "urbanmap",
		Subsystem: "engine",
		Name:      "votes_total",
		Help:      "Total number of votes applied to occurrences.",
	})

	// CommentsTotal counts appended comments.
	CommentsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "urbanmap",
		Subsystem: "engine",
		Name:      "comments_total",
		Help:      "Total number of comments appended to occurrences.",
	})

	// StoreWriteErrorsTotal counts failed report store writes.
	StoreWriteErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "urbanmap",
		Subsystem: "engine",
		Name:      "store_write_errors_total",
		Help:      "Total number of report store write failures.",
	})
)

// Register registers engine metrics with the default Prometheus registry.
// Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			OccurrencesCreatedTotal,
			VotesTotal,
			CommentsTotal,
			StoreWriteErrorsTotal,
		)
	})
}
