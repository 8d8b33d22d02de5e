// Package observability exposes Prometheus metrics for workout processing.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	workoutsComputed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ftracker",
		Subsystem: "workouts",
		Name:      "computed_total",
		Help:      "Number of workout summaries computed, labeled by training type.",
	}, []string{"training_type"})

	workoutsRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ftracker",
		Subsystem: "workouts",
		Name:      "rejected_total",
		Help:      "Number of sensor packages rejected before computation, labeled by reason.",
	}, []string{"reason"})

	caloriesSpent = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ftracker",
		Subsystem: "workouts",
		Name:      "calories_spent",
		Help:      "Distribution of calories spent per workout.",
		Buckets:   prometheus.LinearBuckets(100, 100, 10),
	}, []string{"training_type"})

	summaryPersistGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "ftracker",
		Subsystem: "summaries",
		Name:      "persisted_last_timestamp_seconds",
		Help:      "Unix timestamp of the most recent workout summary persisted to Postgres.",
	})
)

func init() {
	prometheus.MustRegister(workoutsComputed, workoutsRejected, caloriesSpent, summaryPersistGauge)
}

// RecordComputed counts a computed workout and observes its calories.
func RecordComputed(trainingType string, calories float64) {
	workoutsComputed.WithLabelValues(trainingType).Inc()
	caloriesSpent.WithLabelValues(trainingType).Observe(calories)
}

// RecordRejected counts a sensor package that could not be turned into a workout.
func RecordRejected(reason string) {
	workoutsRejected.WithLabelValues(reason).Inc()
}

// RecordSummaryPersisted updates the persistence watermark gauge.
func RecordSummaryPersisted(ts time.Time) {
	if ts.IsZero() {
		return
	}
	summaryPersistGauge.Set(float64(ts.Unix()))
}
