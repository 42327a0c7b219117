// Package guard wires the scanners, rolling window, and aggregator into the
// per-call facade. One Guard instance owns one window; Chat is meant to be
// driven by a single logical caller while the Compute* methods may be read
// concurrently.
package guard

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/riskguard/riskguard/internal/observability"
	"github.com/riskguard/riskguard/internal/risk"
	"github.com/riskguard/riskguard/internal/scan"
)

// Options configures a Guard. Zero fields fall back to documented defaults.
type Options struct {
	WindowSize    int
	ProbeTimeout  time.Duration
	LatencyBudget time.Duration
	Weights       risk.Weights
	Behavioral    scan.BehavioralConfig
	Privacy       scan.PrivacyConfig
	Metrics       *observability.Metrics
}

// Guard scores every wrapped call and keeps a bounded rolling window of the
// resulting metadata. Raw prompt and response text is scanned in place and
// never retained.
type Guard struct {
	window     *risk.Window
	aggregator *risk.Aggregator
	behavioral *scan.BehavioralScanner
	privacy    *scan.PrivacyScanner
	prober     *prober
	metrics    *observability.Metrics
}

// New builds a Guard. The only hard failure is an invalid window size.
func New(opts Options) (*Guard, error) {
	size := opts.WindowSize
	if size == 0 {
		size = risk.DefaultWindowSize
	}
	window, err := risk.NewWindow(size)
	if err != nil {
		return nil, err
	}

	if opts.Behavioral == (scan.BehavioralConfig{}) {
		opts.Behavioral = scan.DefaultBehavioralConfig()
	}
	if opts.Privacy == (scan.PrivacyConfig{}) {
		opts.Privacy = scan.DefaultPrivacyConfig()
	}

	lib := scan.DefaultLibrary()
	return &Guard{
		window:     window,
		aggregator: risk.NewAggregator(opts.LatencyBudget, opts.Weights),
		behavioral: scan.NewBehavioralScanner(lib, opts.Behavioral),
		privacy:    scan.NewPrivacyScanner(lib, opts.Privacy),
		prober:     newProber(opts.ProbeTimeout),
		metrics:    opts.Metrics,
	}, nil
}

// ChatRequest describes one call to score. Either URL (probe mode: the
// guard performs a timed GET) or ResponseText (offline mode: the caller
// already has the response) supplies the outcome.
type ChatRequest struct {
	Prompt       string `json:"prompt"`
	URL          string `json:"url,omitempty"`
	ResponseText string `json:"response_text,omitempty"`
}

// ChatResult is the per-call metadata. BodyPreview is a bounded excerpt of
// the probe response for debugging; the stored record never includes it.
type ChatResult struct {
	ID             string                  `json:"id"`
	Status         int                     `json:"status"`
	LatencySeconds float64                 `json:"latency_seconds"`
	Error          bool                    `json:"error"`
	BodyPreview    string                  `json:"body,omitempty"`
	Behavioral     scan.BehavioralMetadata `json:"behavioral_metadata"`
	Privacy        scan.PrivacyMetadata    `json:"privacy_metadata"`
}

const bodyPreviewLimit = 120

// Chat scores one call and pushes its record into the rolling window. A
// probe that times out or fails still produces a record with is_error set;
// observations are never dropped.
func (g *Guard) Chat(ctx context.Context, req ChatRequest) ChatResult {
	mode := "offline"
	outcome := probeResult{status: http.StatusOK, body: req.ResponseText}
	if strings.TrimSpace(req.URL) != "" {
		mode = "probe"
		outcome = g.prober.fetch(ctx, req.URL)
	}

	behavioral := g.behavioral.Scan(outcome.body)
	privacy := g.privacy.Scan(req.Prompt, outcome.body)
	reliability := scan.TrackOutcome(outcome.status, outcome.latency, outcome.isError)

	rec := risk.CallRecord{
		ID:          uuid.NewString(),
		Timestamp:   time.Now().UTC(),
		Reliability: reliability,
		Behavioral:  behavioral,
		Privacy:     privacy,
	}
	g.window.Push(rec)

	g.metrics.ObserveCall(mode, outcome.isError, outcome.latency)
	g.metrics.ObserveIssues(behavioral.HasBehavioralIssues, privacy.HasPrivacyIssues)

	return ChatResult{
		ID:             rec.ID,
		Status:         reliability.Status,
		LatencySeconds: reliability.LatencySeconds,
		Error:          reliability.IsError,
		BodyPreview:    preview(outcome.body),
		Behavioral:     behavioral,
		Privacy:        privacy,
	}
}

// ComputeReliabilityRisk aggregates reliability over the current window.
func (g *Guard) ComputeReliabilityRisk() risk.ReliabilityRisk {
	return g.aggregator.Reliability(g.window.Snapshot())
}

// ComputeBehavioralRisk aggregates behavioral signals over the current window.
func (g *Guard) ComputeBehavioralRisk() risk.BehavioralRisk {
	return g.aggregator.Behavioral(g.window.Snapshot())
}

// ComputePrivacyRisk aggregates privacy signals over the current window.
func (g *Guard) ComputePrivacyRisk() risk.PrivacyRisk {
	return g.aggregator.Privacy(g.window.Snapshot())
}

// ComputeAllRisks aggregates all categories plus the overall score.
func (g *Guard) ComputeAllRisks() risk.Summary {
	return g.aggregator.Summarize(g.window.Snapshot())
}

// WindowLen reports how many calls the window currently tracks.
func (g *Guard) WindowLen() int {
	return g.window.Len()
}

func preview(body string) string {
	if len(body) <= bodyPreviewLimit {
		return body
	}
	return body[:bodyPreviewLimit]
}
