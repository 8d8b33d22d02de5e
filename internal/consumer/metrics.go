package consumer

import "github.com/prometheus/client_golang/prometheus"

var (
	processedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ftracker",
		Subsystem: "consumer",
		Name:      "messages_processed_total",
		Help:      "Number of sensor packages successfully handled.",
	}, []string{"topic", "workout_type"})

	rejectedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ftracker",
		Subsystem: "consumer",
		Name:      "messages_rejected_total",
		Help:      "Number of sensor packages committed without a summary because they can never be processed.",
	}, []string{"topic", "workout_type"})

	handlerErrorCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ftracker",
		Subsystem: "consumer",
		Name:      "handler_errors_total",
		Help:      "Number of retryable handler errors grouped by topic and workout type.",
	}, []string{"topic", "workout_type"})

	decodeErrorCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ftracker",
		Subsystem: "consumer",
		Name:      "decode_errors_total",
		Help:      "Number of decode failures per topic.",
	}, []string{"topic"})

	lastMessageGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "ftracker",
		Subsystem: "consumer",
		Name:      "last_message_timestamp_seconds",
		Help:      "Unix timestamp of the most recent successfully processed message per topic.",
	}, []string{"topic"})
)

func init() {
	prometheus.MustRegister(processedCounter, rejectedCounter, handlerErrorCounter, decodeErrorCounter, lastMessageGauge)
}

func recordProcessed(msg Message) {
	processedCounter.WithLabelValues(msg.Topic, msg.Package.WorkoutType).Inc()
	if !msg.Timestamp.IsZero() {
		lastMessageGauge.WithLabelValues(msg.Topic).Set(float64(msg.Timestamp.Unix()))
	}
}

func recordRejected(msg Message) {
	rejectedCounter.WithLabelValues(msg.Topic, msg.Package.WorkoutType).Inc()
}

func recordHandlerError(msg Message) {
	handlerErrorCounter.WithLabelValues(msg.Topic, msg.Package.WorkoutType).Inc()
}

func recordDecodeError(topic string) {
	decodeErrorCounter.WithLabelValues(topic).Inc()
}
