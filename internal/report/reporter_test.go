package report

import (
	"context"
	"testing"

	"github.com/riskguard/riskguard/internal/guard"
)

func TestReporterSavesSnapshot(t *testing.T) {
	g, err := guard.New(guard.Options{WindowSize: 5})
	if err != nil {
		t.Fatalf("guard.New error = %v", err)
	}
	g.Chat(context.Background(), guard.ChatRequest{
		Prompt:       "my ssn is 123-45-6789",
		ResponseText: "noted",
	})

	store := NewInMemoryStore()
	r := NewReporter(g, store, nil, 0)
	r.reportOnce(context.Background())

	got, err := store.RecentReports(context.Background(), 1)
	if err != nil {
		t.Fatalf("RecentReports error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len(RecentReports) = %d, want 1", len(got))
	}
	if got[0].Summary.RequestVolume != 1 {
		t.Fatalf("Summary.RequestVolume = %d, want 1", got[0].Summary.RequestVolume)
	}
	if score := got[0].Summary.Privacy.RiskScore; score <= 0 || score > 1 {
		t.Fatalf("Privacy.RiskScore = %v, want in (0,1]", score)
	}
}
