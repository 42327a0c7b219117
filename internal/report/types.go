package report

import (
	"context"
	"time"

	"github.com/riskguard/riskguard/internal/risk"
)

// RiskReport is one persisted aggregate snapshot. It carries only the
// aggregate metadata structures; no raw call content exists at this layer.
type RiskReport struct {
	ID          string       `json:"id"`
	GeneratedAt time.Time    `json:"generated_at"`
	Summary     risk.Summary `json:"summary"`
}

// Store persists and retrieves aggregate risk reports.
type Store interface {
	SaveReport(ctx context.Context, report RiskReport) error
	RecentReports(ctx context.Context, limit int) ([]RiskReport, error)
	Close() error
}
