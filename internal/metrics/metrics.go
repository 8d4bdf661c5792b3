// Package metrics provides counters, Prometheus collectors, and HTTP
// handlers for exporting towncrier runtime metrics.
package metrics

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Internal state (source of truth for the JSON snapshot)
var (
	broadcasts    int64
	sendsSuccess  int64
	sendsFailure  int64
	lastBroadcast int64
)

// Prometheus collectors
var (
	promBroadcasts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "towncrier_broadcasts_total",
			Help: "Total broadcasts dispatched",
		},
	)
	promSends = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "towncrier_channel_sends_total",
			Help: "Total per-channel delivery attempts",
		},
		[]string{"channel", "status"},
	)
	promSendDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "towncrier_channel_send_duration_seconds",
			Help:    "Duration of individual channel deliveries",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
	)
	promLastBroadcast = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "towncrier_last_broadcast_timestamp_seconds",
			Help: "Unix timestamp of the last broadcast",
		},
	)
)

func init() {
	prometheus.MustRegister(
		promBroadcasts,
		promSends,
		promSendDuration,
		promLastBroadcast,
	)
}

// IncBroadcast increments the number of dispatched broadcasts.
func IncBroadcast() {
	atomic.AddInt64(&broadcasts, 1)
	promBroadcasts.Inc()
}

// IncSendSuccess increments the success counter for a channel.
func IncSendSuccess(channel string) {
	atomic.AddInt64(&sendsSuccess, 1)
	promSends.WithLabelValues(channel, "success").Inc()
}

// IncSendFailure increments the failure counter for a channel.
func IncSendFailure(channel string) {
	atomic.AddInt64(&sendsFailure, 1)
	promSends.WithLabelValues(channel, "failure").Inc()
}

// ObserveSendDuration records the duration (in seconds) of a single
// channel delivery.
func ObserveSendDuration(seconds float64) {
	promSendDuration.Observe(seconds)
}

// SetLastBroadcast stores the provided time as the last broadcast timestamp.
func SetLastBroadcast(t time.Time) {
	atomic.StoreInt64(&lastBroadcast, t.Unix())
	promLastBroadcast.Set(float64(t.Unix()))
}

// StatsSnapshot is a snapshot of metrics for JSON encoding.
type StatsSnapshot struct {
	Broadcasts         int64  `json:"broadcasts"`
	SendsSuccess       int64  `json:"sends_success"`
	SendsFailure       int64  `json:"sends_failure"`
	LastBroadcast      int64  `json:"last_broadcast_timestamp"`
	LastBroadcastHuman string `json:"last_broadcast_human"`
}

// GetSnapshot returns a StatsSnapshot with the current values of all
// internal counters and timestamps.
func GetSnapshot() StatsSnapshot {
	ts := atomic.LoadInt64(&lastBroadcast)
	return StatsSnapshot{
		Broadcasts:         atomic.LoadInt64(&broadcasts),
		SendsSuccess:       atomic.LoadInt64(&sendsSuccess),
		SendsFailure:       atomic.LoadInt64(&sendsFailure),
		LastBroadcast:      ts,
		LastBroadcastHuman: time.Unix(ts, 0).Format(time.RFC3339),
	}
}

// PromHandler returns an HTTP handler that exposes Prometheus metrics.
func PromHandler() http.Handler { return promhttp.Handler() }

// JSONHandler returns an HTTP handler that serves the current metrics as
// a JSON-encoded StatsSnapshot.
func JSONHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(GetSnapshot())
	})
}
