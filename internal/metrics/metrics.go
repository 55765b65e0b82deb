package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "binwatch_requests_total",
			Help: "Total number of requests per council",
		},
		[]string{"council"},
	)

	RequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "binwatch_request_duration_seconds",
			Help:    "Request duration in seconds per council and path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"council", "path"},
	)

	RequestErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "binwatch_request_errors_total",
			Help: "Total number of error responses per council and path",
		},
		[]string{"council", "path", "code"},
	)

	ScansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "binwatch_scans_total",
			Help: "Total number of directory scans per council",
		},
		[]string{"council"},
	)

	ScanFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "binwatch_scan_failures_total",
			Help: "Total number of fatal scan failures per council",
		},
		[]string{"council"},
	)

	RemindersSentTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "binwatch_reminders_sent_total",
			Help: "Total number of collection reminder emails sent",
		},
	)

	JobLastRunTimestamp = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "binwatch_job_last_run_timestamp_seconds",
			Help: "Unix time of the last run per background job",
		},
		[]string{"job"},
	)

	JobLastDurationSeconds = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "binwatch_job_last_duration_seconds",
			Help: "Duration of the last run per background job",
		},
		[]string{"job"},
	)

	JobFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "binwatch_job_failures_total",
			Help: "Total number of failed runs per background job",
		},
		[]string{"job"},
	)
)

// UpdateJobMetrics records the outcome of one background job run.
func UpdateJobMetrics(job string, started time.Time, err error) {
	JobLastRunTimestamp.WithLabelValues(job).Set(float64(started.Unix()))
	JobLastDurationSeconds.WithLabelValues(job).Set(time.Since(started).Seconds())
	if err != nil {
		JobFailuresTotal.WithLabelValues(job).Inc()
	}
}
