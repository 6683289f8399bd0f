package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Upstream names used as label values.
const (
	UpstreamWeather = "weather_graphql"
	UpstreamSummary = "summary_api"
	UpstreamLLM     = "llm"
)

// Recorder groups the Prometheus collectors used by the dashboard.
type Recorder struct {
	upstreamRequests *prometheus.CounterVec
	upstreamLatency  *prometheus.HistogramVec
	summaryOutcomes  *prometheus.CounterVec
	cacheLookups     *prometheus.CounterVec
	llmTokens        prometheus.Counter
}

// New registers the dashboard collectors on reg.
func New(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		upstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "weather_dashboard_upstream_requests_total",
			Help: "Upstream calls by upstream and outcome",
		}, []string{"upstream", "outcome"}),
		upstreamLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "weather_dashboard_upstream_duration_seconds",
			Help:    "Time spent waiting on upstream calls",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}, []string{"upstream"}),
		summaryOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "weather_dashboard_summary_outcomes_total",
			Help: "Rendered dashboards by summary state",
		}, []string{"state"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "weather_dashboard_cache_lookups_total",
			Help: "Weather cache lookups by result",
		}, []string{"result"}),
		llmTokens: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "weather_dashboard_llm_tokens_total",
			Help: "Total LLM tokens reported by the completion API",
		}),
	}
	reg.MustRegister(r.upstreamRequests, r.upstreamLatency, r.summaryOutcomes, r.cacheLookups, r.llmTokens)
	return r
}

// ObserveUpstream records one upstream call.
func (r *Recorder) ObserveUpstream(upstream string, started time.Time, err error) {
	if r == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	r.upstreamRequests.WithLabelValues(upstream, outcome).Inc()
	r.upstreamLatency.WithLabelValues(upstream).Observe(time.Since(started).Seconds())
}

// SummaryOutcome counts a rendered dashboard by its summary state.
func (r *Recorder) SummaryOutcome(state string) {
	if r == nil {
		return
	}
	r.summaryOutcomes.WithLabelValues(state).Inc()
}

// CacheLookup counts a weather cache hit or miss.
func (r *Recorder) CacheLookup(hit bool) {
	if r == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheLookups.WithLabelValues(result).Inc()
}

// AddTokens adds reported token usage.
func (r *Recorder) AddTokens(usage TokenUsage) {
	if r == nil || usage.IsZero() {
		return
	}
	r.llmTokens.Add(float64(usage.TotalTokens))
}
