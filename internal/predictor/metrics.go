package predictor

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	predictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cardiod",
			Name:      "predictions_total",
			Help:      "Total number of served predictions by model and verdict",
		},
		[]string{"model", "verdict"},
	)

	inferenceDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cardiod",
			Name:      "inference_duration_seconds",
			Help:      "Duration of model forward passes in seconds",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"model"},
	)

	ecgCacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "cardiod",
			Name:      "ecg_cache_hits_total",
			Help:      "ECG predictions answered from the result cache",
		},
	)
)

func init() {
	prometheus.MustRegister(predictionsTotal, inferenceDuration, ecgCacheHits)
}

func observeInference(model string, start time.Time) {
	inferenceDuration.WithLabelValues(model).Observe(time.Since(start).Seconds())
}
