package report

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/riskguard/riskguard/internal/guard"
	"github.com/riskguard/riskguard/internal/observability"
)

// Reporter periodically computes the aggregate risk summary and persists it.
// It reads window snapshots only; the guard keeps accepting calls while a
// report is being written.
type Reporter struct {
	guard    *guard.Guard
	store    Store
	metrics  *observability.Metrics
	interval time.Duration
}

func NewReporter(g *guard.Guard, store Store, metrics *observability.Metrics, interval time.Duration) *Reporter {
	return &Reporter{guard: g, store: store, metrics: metrics, interval: interval}
}

// Run reports on the configured interval until ctx is cancelled. An
// interval of zero disables reporting.
func (r *Reporter) Run(ctx context.Context) {
	if r.interval <= 0 {
		return
	}
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.reportOnce(ctx)
		}
	}
}

func (r *Reporter) reportOnce(ctx context.Context) {
	summary := r.guard.ComputeAllRisks()
	r.metrics.SetRiskScores(
		summary.Reliability.RiskScore,
		summary.Behavioral.RiskScore,
		summary.Privacy.RiskScore,
		summary.OverallRiskScore,
	)

	err := r.store.SaveReport(ctx, RiskReport{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Summary:     summary,
	})
	if err != nil {
		if r.metrics != nil {
			r.metrics.ReportErrors.Inc()
		}
		log.Printf("risk report save failed: %v", err)
		return
	}
	if r.metrics != nil {
		r.metrics.ReportsSaved.Inc()
	}
}
