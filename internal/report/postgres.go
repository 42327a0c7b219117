package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/riskguard/riskguard/internal/risk"
)

// PostgresStore persists aggregate risk reports in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := initSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{pool: pool}, nil
}

func initSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS risk_reports (
			id TEXT PRIMARY KEY,
			generated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			summary JSONB NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_risk_reports_generated ON risk_reports (generated_at);`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema failed on %q: %w", stmt, err)
		}
	}
	return nil
}

func (s *PostgresStore) SaveReport(ctx context.Context, report RiskReport) error {
	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	if report.GeneratedAt.IsZero() {
		report.GeneratedAt = time.Now().UTC()
	}

	summary, err := json.Marshal(report.Summary)
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO risk_reports (id, generated_at, summary) VALUES ($1, $2, $3)`,
		report.ID,
		report.GeneratedAt,
		summary,
	)
	if err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}

func (s *PostgresStore) RecentReports(ctx context.Context, limit int) ([]RiskReport, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, generated_at, summary
		 FROM risk_reports ORDER BY generated_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	var out []RiskReport
	for rows.Next() {
		var (
			rec     RiskReport
			summary []byte
		)
		if err := rows.Scan(&rec.ID, &rec.GeneratedAt, &summary); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		var s risk.Summary
		if err := json.Unmarshal(summary, &s); err != nil {
			return nil, fmt.Errorf("decode summary: %w", err)
		}
		rec.Summary = s
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reports: %w", err)
	}

	// Oldest first, matching the in-memory store.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
