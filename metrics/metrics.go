package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	PlatformRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bigbrain_platform_requests_total",
		Help: "YouTube API calls by operation and outcome",
	}, []string{"operation", "status"})

	LLMGenerationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bigbrain_llm_generation_duration_seconds",
		Help:    "Duration of text generation calls",
		Buckets: []float64{.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
	}, []string{"provider", "status"})

	SummaryFallbacks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bigbrain_summary_fallbacks_total",
		Help: "Summaries replaced by the placeholder result",
	}, []string{"mode"})

	VideosProcessed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bigbrain_videos_processed_total",
		Help: "Videos that left staging, by category",
	}, []string{"category"})

	VideosStaged = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bigbrain_videos_staged_total",
		Help: "New liked videos added to staging by sync",
	})
)

func MustRegister(registerer prometheus.Registerer) {
	registerer.MustRegister(
		PlatformRequests,
		LLMGenerationDuration,
		SummaryFallbacks,
		VideosProcessed,
		VideosStaged,
	)
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func ObservePlatformRequest(operation string, err error) {
	PlatformRequests.WithLabelValues(operation, status(err)).Inc()
}

func ObserveGeneration(provider string, start time.Time, err error) {
	LLMGenerationDuration.WithLabelValues(provider, status(err)).Observe(time.Since(start).Seconds())
}
