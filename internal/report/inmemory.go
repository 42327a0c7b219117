package report

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// maxInMemoryReports caps the dev store so a long-running process does not
// grow without bound.
const maxInMemoryReports = 256

// InMemoryStore is a simple in-process report store for local/dev use.
type InMemoryStore struct {
	mu      sync.RWMutex
	reports []RiskReport
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) SaveReport(_ context.Context, report RiskReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	if report.GeneratedAt.IsZero() {
		report.GeneratedAt = time.Now().UTC()
	}
	s.reports = append(s.reports, report)
	if len(s.reports) > maxInMemoryReports {
		s.reports = s.reports[len(s.reports)-maxInMemoryReports:]
	}
	return nil
}

func (s *InMemoryStore) RecentReports(_ context.Context, limit int) ([]RiskReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.reports) == 0 {
		return nil, nil
	}
	if limit <= 0 || limit > len(s.reports) {
		limit = len(s.reports)
	}
	out := make([]RiskReport, 0, limit)
	for i := len(s.reports) - limit; i < len(s.reports); i++ {
		out = append(out, s.reports[i])
	}
	return out, nil
}

func (s *InMemoryStore) Close() error { return nil }
