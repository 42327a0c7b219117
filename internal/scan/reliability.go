package scan

import "time"

// StatusTransportError is the status sentinel recorded when a call never
// produced an HTTP status (timeout, DNS failure, connection reset).
const StatusTransportError = 0

// ReliabilityMetadata captures the outcome of one call.
type ReliabilityMetadata struct {
	Status         int     `json:"status"`
	LatencySeconds float64 `json:"latency_seconds"`
	IsError        bool    `json:"is_error"`
}

// TrackOutcome validates one call outcome and returns its reliability
// record. Negative latencies are clamped to zero.
func TrackOutcome(status int, latency time.Duration, isError bool) ReliabilityMetadata {
	if latency < 0 {
		latency = 0
	}
	return ReliabilityMetadata{
		Status:         status,
		LatencySeconds: latency.Seconds(),
		IsError:        isError,
	}
}

// IsErrorStatus classifies a status as a failed call: either the transport
// sentinel or an HTTP error code.
func IsErrorStatus(status int) bool {
	return status == StatusTransportError || status >= 400
}
