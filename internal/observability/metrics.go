package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups all Prometheus instruments used by the service.
type Metrics struct {
	CallsTotal       *prometheus.CounterVec
	BehavioralIssues prometheus.Counter
	PrivacyIssues    prometheus.Counter
	ProbeLatency     prometheus.Histogram
	RiskScore        *prometheus.GaugeVec
	ReportsSaved     prometheus.Counter
	ReportErrors     prometheus.Counter
}

func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		CallsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calls_total",
			Help:      "Tracked calls by mode and outcome.",
		}, []string{"mode", "outcome"}),
		BehavioralIssues: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "behavioral_issues_total",
			Help:      "Calls flagged with behavioral issues.",
		}),
		PrivacyIssues: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "privacy_issues_total",
			Help:      "Calls flagged with privacy issues.",
		}),
		ProbeLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "probe_latency_seconds",
			Help:      "Latency of outbound probe calls in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5},
		}),
		RiskScore: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "risk_score",
			Help:      "Latest aggregate risk score by category.",
		}, []string{"category"}),
		ReportsSaved: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_saved_total",
			Help:      "Aggregate risk reports persisted by the reporter.",
		}),
		ReportErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_errors_total",
			Help:      "Failures while persisting aggregate risk reports.",
		}),
	}
}

// ObserveCall records one tracked call. Safe on a nil receiver so the guard
// can run without metrics in tests.
func (m *Metrics) ObserveCall(mode string, isError bool, latency time.Duration) {
	if m == nil {
		return
	}
	outcome := "ok"
	if isError {
		outcome = "error"
	}
	m.CallsTotal.WithLabelValues(mode, outcome).Inc()
	if mode == "probe" {
		m.ProbeLatency.Observe(latency.Seconds())
	}
}

func (m *Metrics) ObserveIssues(behavioral, privacy bool) {
	if m == nil {
		return
	}
	if behavioral {
		m.BehavioralIssues.Inc()
	}
	if privacy {
		m.PrivacyIssues.Inc()
	}
}

// SetRiskScores publishes the latest aggregate scores.
func (m *Metrics) SetRiskScores(reliability, behavioral, privacy, overall float64) {
	if m == nil {
		return
	}
	m.RiskScore.WithLabelValues("reliability").Set(reliability)
	m.RiskScore.WithLabelValues("behavioral").Set(behavioral)
	m.RiskScore.WithLabelValues("privacy").Set(privacy)
	m.RiskScore.WithLabelValues("overall").Set(overall)
}

func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
