package crawler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// targetsTotal counts finished targets partitioned by crawl status.
	targetsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crawler_targets_total",
		Help: "Total targets processed, labeled by crawl status.",
	}, []string{"status"})
	// fetchAttemptsTotal counts every HTTP attempt, retries included.
	fetchAttemptsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crawler_fetch_attempts_total",
		Help: "Total HTTP fetch attempts issued, including retries.",
	})
	// fetchRetriesTotal counts attempts beyond the first per target.
	fetchRetriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crawler_fetch_retries_total",
		Help: "Total fetch retries triggered by transient failures.",
	})
	// fetchDurationSeconds observes wall time per completed fetch sequence.
	fetchDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "crawler_fetch_duration_seconds",
		Help:    "Duration of the full fetch attempt sequence per target.",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	})
	// robotsDeniedTotal counts targets refused by robots.txt.
	robotsDeniedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crawler_robots_denied_total",
		Help: "Total targets denied by robots.txt policy.",
	})
	// robotsFailOpenTotal counts robots.txt lookups that failed and were
	// resolved as allowed.
	robotsFailOpenTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crawler_robots_failopen_total",
		Help: "Total robots.txt checks that failed and defaulted to allowed.",
	})
	// emailsFoundTotal counts results carrying an extracted email.
	emailsFoundTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crawler_emails_found_total",
		Help: "Total results with a business email extracted.",
	})
	// formsFoundTotal counts results carrying an inquiry form URL.
	formsFoundTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crawler_forms_found_total",
		Help: "Total results with an inquiry form detected.",
	})
)
