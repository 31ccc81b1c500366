package loop

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricTranscripts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "loop_transcripts_total",
		Help: "Transcript messages received by kind (interim, final)",
	}, []string{"kind"})

	metricStopSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "loop_stop_tts_sent_total",
		Help: "stop_tts commands sent to workers",
	})

	metricRespondSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "loop_respond_sent_total",
		Help: "respond commands sent to workers",
	})

	gaugeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "loop_sessions_tracked",
		Help: "Sessions with dispatcher state",
	})
)
