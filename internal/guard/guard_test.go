package guard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/riskguard/riskguard/internal/scan"
)

func newTestGuard(t *testing.T, opts Options) *Guard {
	t.Helper()
	g, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return g
}

func TestNewRejectsInvalidWindowSize(t *testing.T) {
	if _, err := New(Options{WindowSize: -1}); err == nil {
		t.Fatalf("New(WindowSize: -1) error = nil, want error")
	}
}

func TestChatOfflineMode(t *testing.T) {
	g := newTestGuard(t, Options{})

	result := g.Chat(context.Background(), ChatRequest{
		Prompt:       "My SSN is 123-45-6789",
		ResponseText: "noted",
	})

	if result.Status != http.StatusOK {
		t.Fatalf("Status = %d, want %d", result.Status, http.StatusOK)
	}
	if result.Error {
		t.Fatalf("Error = true, want false")
	}
	if !result.Privacy.PIIDetected {
		t.Fatalf("Privacy.PIIDetected = false, want true")
	}
	if g.WindowLen() != 1 {
		t.Fatalf("WindowLen() = %d, want 1", g.WindowLen())
	}
}

func TestChatOfflineEmptyResponse(t *testing.T) {
	g := newTestGuard(t, Options{})

	result := g.Chat(context.Background(), ChatRequest{Prompt: "hello"})
	if result.Behavioral.HallucinationScore != 0 ||
		result.Behavioral.ToxicityScore != 0 ||
		result.Behavioral.SafetyViolationScore != 0 {
		t.Fatalf("Behavioral = %+v, want all zero", result.Behavioral)
	}
	if result.Behavioral.HasBehavioralIssues {
		t.Fatalf("HasBehavioralIssues = true, want false")
	}
}

func TestChatProbeSuccess(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("The capital of France is Paris, a fine answer with plenty of detail for everyone."))
	}))
	defer ts.Close()

	g := newTestGuard(t, Options{})
	result := g.Chat(context.Background(), ChatRequest{Prompt: "capital?", URL: ts.URL})

	if result.Status != http.StatusOK {
		t.Fatalf("Status = %d, want %d", result.Status, http.StatusOK)
	}
	if result.Error {
		t.Fatalf("Error = true, want false")
	}
	if result.LatencySeconds <= 0 {
		t.Fatalf("LatencySeconds = %v, want > 0", result.LatencySeconds)
	}
}

func TestChatProbeHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts.Close()

	g := newTestGuard(t, Options{})
	result := g.Chat(context.Background(), ChatRequest{Prompt: "x", URL: ts.URL})

	if result.Status != http.StatusInternalServerError {
		t.Fatalf("Status = %d, want %d", result.Status, http.StatusInternalServerError)
	}
	if !result.Error {
		t.Fatalf("Error = false, want true")
	}

	rel := g.ComputeReliabilityRisk()
	if rel.ErrorRate != 1 {
		t.Fatalf("ErrorRate = %v, want 1", rel.ErrorRate)
	}
}

func TestChatProbeTimeoutStillRecorded(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer ts.Close()

	g := newTestGuard(t, Options{ProbeTimeout: 50 * time.Millisecond})
	result := g.Chat(context.Background(), ChatRequest{Prompt: "x", URL: ts.URL})

	if result.Status != scan.StatusTransportError {
		t.Fatalf("Status = %d, want transport error sentinel %d", result.Status, scan.StatusTransportError)
	}
	if !result.Error {
		t.Fatalf("Error = false, want true")
	}
	if g.WindowLen() != 1 {
		t.Fatalf("WindowLen() = %d, want 1: timed-out calls must still be recorded", g.WindowLen())
	}
}

func TestChatBodyPreviewIsBounded(t *testing.T) {
	long := make([]byte, 4096)
	for i := range long {
		long[i] = 'x'
	}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(long)
	}))
	defer ts.Close()

	g := newTestGuard(t, Options{})
	result := g.Chat(context.Background(), ChatRequest{Prompt: "x", URL: ts.URL})

	if len(result.BodyPreview) > bodyPreviewLimit {
		t.Fatalf("len(BodyPreview) = %d, want <= %d", len(result.BodyPreview), bodyPreviewLimit)
	}
}

func TestComputeAllRisksIdempotentBetweenCalls(t *testing.T) {
	g := newTestGuard(t, Options{})
	g.Chat(context.Background(), ChatRequest{
		Prompt:       "my email is a@b.com",
		ResponseText: "I think maybe that is fine",
	})

	first := g.ComputeAllRisks()
	second := g.ComputeAllRisks()
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("ComputeAllRisks not idempotent:\nfirst  = %+v\nsecond = %+v", first, second)
	}
	if first.RequestVolume != 1 {
		t.Fatalf("RequestVolume = %d, want 1", first.RequestVolume)
	}
}

func TestWindowEvictionThroughChat(t *testing.T) {
	g := newTestGuard(t, Options{WindowSize: 3})

	for i := 0; i < 7; i++ {
		g.Chat(context.Background(), ChatRequest{Prompt: "p", ResponseText: "a reasonable answer with enough words to pass the length check easily"})
	}
	if g.WindowLen() != 3 {
		t.Fatalf("WindowLen() = %d, want 3", g.WindowLen())
	}
	summary := g.ComputeAllRisks()
	if summary.RequestVolume != 3 {
		t.Fatalf("RequestVolume = %d, want 3", summary.RequestVolume)
	}
}
