package matching

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	pipelineJobs       = "jobs"
	pipelineCandidates = "candidates"

	outcomeOK       = "ok"
	outcomeFallback = "fallback"
	outcomeDisabled = "disabled"
)

// Metrics groups the collectors updated by the service.
type Metrics struct {
	scoringDuration *prometheus.HistogramVec
	scoredItems     *prometheus.CounterVec
	narratives      *prometheus.CounterVec
}

// NewMetrics registers the service collectors with reg. A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		scoringDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hire_matcher",
			Name:      "scoring_duration_seconds",
			Help:      "Time spent scoring one request, by pipeline.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}, []string{"pipeline"}),
		scoredItems: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hire_matcher",
			Name:      "scored_items_total",
			Help:      "Jobs or candidates scored, by pipeline.",
		}, []string{"pipeline"}),
		narratives: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hire_matcher",
			Name:      "narratives_total",
			Help:      "Narrative generations, by outcome.",
		}, []string{"outcome"}),
	}
}
