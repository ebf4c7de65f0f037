package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Candidate outcomes.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
)

// Metrics holds the Prometheus collectors for enumeration jobs. Each Metrics
// owns its registry so tests and repeated runs do not collide on the default
// one.
type Metrics struct {
	registry *prometheus.Registry

	// candidates counts visited candidates.
	// Labels: job, outcome (accepted, rejected)
	candidates *prometheus.CounterVec

	// rejections counts rejected candidates by law.
	// Labels: job, code (NON_ASSOCIATIVE, NOT_WELL_DEFINED, ...)
	rejections *prometheus.CounterVec

	// progress is the finished fraction of the job's outer loop.
	// Labels: job
	progress *prometheus.GaugeVec
}

// NewMetrics registers the collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		candidates: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pshcalc",
			Name:      "candidates_total",
			Help:      "Candidates visited by enumeration jobs",
		}, []string{"job", "outcome"}),
		rejections: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pshcalc",
			Name:      "rejections_total",
			Help:      "Candidates rejected by enumeration jobs, by violated law",
		}, []string{"job", "code"}),
		progress: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "pshcalc",
			Name:      "progress_ratio",
			Help:      "Finished fraction of the job's outer loop",
		}, []string{"job"}),
	}
}

// Registry returns the registry the collectors live in.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
