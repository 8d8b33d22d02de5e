package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func TestRecordComputed(t *testing.T) {
	before := testutil.ToFloat64(workoutsComputed.WithLabelValues("Swimming"))

	RecordComputed("Swimming", 336)

	require.Equal(t, before+1, testutil.ToFloat64(workoutsComputed.WithLabelValues("Swimming")))

	var metric dto.Metric
	observer, err := caloriesSpent.GetMetricWithLabelValues("Swimming")
	require.NoError(t, err)
	require.NoError(t, observer.(prometheus.Metric).Write(&metric))
	require.GreaterOrEqual(t, metric.GetHistogram().GetSampleCount(), uint64(1))
	require.GreaterOrEqual(t, metric.GetHistogram().GetSampleSum(), 336.0)
}

func TestRecordRejected(t *testing.T) {
	before := testutil.ToFloat64(workoutsRejected.WithLabelValues("unsupported_workout"))
	RecordRejected("unsupported_workout")
	require.Equal(t, before+1, testutil.ToFloat64(workoutsRejected.WithLabelValues("unsupported_workout")))
}

func TestRecordSummaryPersistedIgnoresZeroTime(t *testing.T) {
	ts := time.Date(2025, time.October, 27, 20, 0, 0, 0, time.UTC)
	RecordSummaryPersisted(ts)
	RecordSummaryPersisted(time.Time{})

	require.Equal(t, float64(ts.Unix()), testutil.ToFloat64(summaryPersistGauge))
}

func TestMetricNamesAreExported(t *testing.T) {
	RecordComputed("Running", 797.805)
	RecordRejected("arity")
	RecordSummaryPersisted(time.Date(2025, time.October, 27, 20, 0, 0, 0, time.UTC))

	for _, name := range []string{
		"ftracker_workouts_computed_total",
		"ftracker_workouts_rejected_total",
		"ftracker_workouts_calories_spent",
		"ftracker_summaries_persisted_last_timestamp_seconds",
	} {
		count, err := testutil.GatherAndCount(prometheus.DefaultGatherer, name)
		require.NoError(t, err, name)
		require.GreaterOrEqual(t, count, 1, name)
	}
}
