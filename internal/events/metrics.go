package events

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Snapshot outcomes recorded in trip_snapshots_total.
const (
	resultAssembled    = "assembled"
	resultRejected     = "rejected"
	resultStale        = "stale"
	resultMalformed    = "malformed"
	resultHandlerError = "handler_error"
	resultPublished    = "published"
	resultPublishError = "publish_error"
)

// SnapshotMetrics holds Prometheus metrics for the snapshot pipeline
type SnapshotMetrics struct {
	snapshots  *prometheus.CounterVec
	subscribed prometheus.Gauge
}

var (
	snapshotMetricsOnce   sync.Once
	globalSnapshotMetrics *SnapshotMetrics
)

func getSnapshotMetrics() *SnapshotMetrics {
	snapshotMetricsOnce.Do(func() {
		globalSnapshotMetrics = &SnapshotMetrics{
			snapshots: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "trip_snapshots_total",
				Help: "Trip document snapshots by pipeline result",
			}, []string{"result"}),
			subscribed: promauto.NewGauge(prometheus.GaugeOpts{
				Name: "trip_snapshot_listener_active",
				Help: "1 while the snapshot listener holds a Redis subscription",
			}),
		}
	})
	return globalSnapshotMetrics
}
