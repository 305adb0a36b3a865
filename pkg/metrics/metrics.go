package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks request latency per route
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// CMSQueryDuration tracks content-store round trips
	CMSQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cms_query_duration_seconds",
			Help:    "Content store query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"operation", "status"},
	)

	// EmailsSentCount counts broadcast and transactional sends
	EmailsSentCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emails_sent_count",
			Help: "Total number of emails sent",
		},
		[]string{"list", "status"}, // list: newsletter, trash, transactional; status: success, failed
	)

	// RSVPCount counts recorded RSVPs
	RSVPCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rsvp_count",
			Help: "Total number of RSVPs recorded",
		},
		[]string{"response"}, // response: yes, maybe
	)
)

// RecordHTTPRequestDuration records one HTTP request observation
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordCMSQueryDuration records one content-store round trip
func RecordCMSQueryDuration(operation, status string, duration time.Duration) {
	CMSQueryDuration.WithLabelValues(operation, status).Observe(duration.Seconds())
}

// IncrementEmailsSent increments the send counter for a list
func IncrementEmailsSent(list, status string) {
	EmailsSentCount.WithLabelValues(list, status).Inc()
}

// IncrementRSVP increments the RSVP counter for a response kind
func IncrementRSVP(response string) {
	RSVPCount.WithLabelValues(response).Inc()
}
