package guard

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/riskguard/riskguard/internal/scan"
)

// DefaultProbeTimeout bounds outbound probe calls when no timeout is
// configured.
const DefaultProbeTimeout = 3 * time.Second

// probeResult is the raw outcome of one timed HTTP exchange.
type probeResult struct {
	status  int
	latency time.Duration
	body    string
	isError bool
}

type prober struct {
	client *http.Client
}

func newProber(timeout time.Duration) *prober {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	return &prober{client: &http.Client{Timeout: timeout}}
}

// fetch performs one timed GET. Transport failures are returned as data
// with the transport-error status sentinel, never as a Go error: a failed
// call is still an observation.
func (p *prober) fetch(ctx context.Context, url string) probeResult {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return probeResult{
			status:  scan.StatusTransportError,
			latency: time.Since(start),
			isError: true,
		}
	}

	res, err := p.client.Do(req)
	if err != nil {
		return probeResult{
			status:  scan.StatusTransportError,
			latency: time.Since(start),
			isError: true,
		}
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	return probeResult{
		status:  res.StatusCode,
		latency: time.Since(start),
		body:    string(body),
		isError: scan.IsErrorStatus(res.StatusCode),
	}
}
