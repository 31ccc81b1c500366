package classifier

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "filter_decisions_total",
		Help: "Classification decisions by action (swallow, respond, interrupt)",
	}, []string{"action"})

	metricDebounced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "filter_debounced_total",
		Help: "Speaking-context decisions suppressed by the debounce window",
	})

	metricTranscriptTokens = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "filter_transcript_tokens",
		Help:    "Token count per transcript after stop-word removal",
		Buckets: prometheus.ExponentialBuckets(1, 2, 7),
	})
)
