package risk

import (
	"time"

	"github.com/riskguard/riskguard/internal/scan"
)

// CallRecord is one tracked call. It holds only derived scores, counts, and
// flags; raw prompt and response text must never be stored here.
type CallRecord struct {
	ID          string                   `json:"id"`
	Timestamp   time.Time                `json:"timestamp"`
	Reliability scan.ReliabilityMetadata `json:"reliability"`
	Behavioral  scan.BehavioralMetadata  `json:"behavioral"`
	Privacy     scan.PrivacyMetadata     `json:"privacy"`
}
