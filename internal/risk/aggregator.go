package risk

import (
	"math"
	"time"
)

// ReliabilityRisk aggregates call outcomes over a window snapshot.
type ReliabilityRisk struct {
	ErrorRate         float64 `json:"error_rate"`
	SuccessRate       float64 `json:"success_rate"`
	AvgLatencySeconds float64 `json:"avg_latency_seconds"`
	UptimePercent     float64 `json:"uptime_percent"`
	RiskScore         float64 `json:"reliability_risk_score"`
	RequestVolume     int     `json:"request_volume"`
}

// BehavioralRisk aggregates behavioral scan results over a window snapshot.
type BehavioralRisk struct {
	AvgHallucinationScore   float64 `json:"avg_hallucination_score"`
	AvgToxicityScore        float64 `json:"avg_toxicity_score"`
	AvgSafetyViolationScore float64 `json:"avg_safety_violation_score"`
	IssueRate               float64 `json:"behavioral_issue_rate"`
	RiskScore               float64 `json:"behavioral_risk_score"`
}

// PrivacyRisk aggregates privacy scan results over a window snapshot.
type PrivacyRisk struct {
	PIIDetectionRate      float64 `json:"pii_detection_rate"`
	AvgSensitiveTermCount float64 `json:"avg_sensitive_term_count"`
	ViolationRate         float64 `json:"privacy_violation_rate"`
	RiskScore             float64 `json:"privacy_risk_score"`
}

// Summary combines all three risk categories into one report.
type Summary struct {
	OverallRiskScore float64         `json:"overall_risk_score"`
	Reliability      ReliabilityRisk `json:"reliability"`
	Behavioral       BehavioralRisk  `json:"behavioral"`
	Privacy          PrivacyRisk     `json:"privacy"`
	RequestVolume    int             `json:"request_volume"`
}

// Weights combines the three category scores into the overall score. The
// defaults lean slightly toward privacy so the three terms sum to 1.
type Weights struct {
	Reliability float64
	Behavioral  float64
	Privacy     float64
}

func DefaultWeights() Weights {
	return Weights{Reliability: 0.33, Behavioral: 0.33, Privacy: 0.34}
}

// DefaultLatencyBudget normalizes the latency penalty term: average latency
// at or beyond the budget contributes the full penalty.
const DefaultLatencyBudget = 2 * time.Second

// Aggregator computes category and overall risk scores from window
// snapshots. All methods are pure functions of their input: no hidden
// state, identical output for identical snapshots.
type Aggregator struct {
	latencyBudget time.Duration
	weights       Weights
}

func NewAggregator(latencyBudget time.Duration, weights Weights) *Aggregator {
	if latencyBudget <= 0 {
		latencyBudget = DefaultLatencyBudget
	}
	if weights == (Weights{}) {
		weights = DefaultWeights()
	}
	return &Aggregator{latencyBudget: latencyBudget, weights: weights}
}

// Reliability computes error, success, latency, and uptime aggregates. An
// empty snapshot means no evidence of risk: everything is zero.
func (a *Aggregator) Reliability(records []CallRecord) ReliabilityRisk {
	n := len(records)
	if n == 0 {
		return ReliabilityRisk{}
	}

	errors := 0
	latencySum := 0.0
	for _, r := range records {
		if r.Reliability.IsError {
			errors++
		}
		latencySum += r.Reliability.LatencySeconds
	}

	errorRate := float64(errors) / float64(n)
	successRate := 1 - errorRate
	avgLatency := latencySum / float64(n)
	latencyPenalty := clamp01(avgLatency / a.latencyBudget.Seconds())

	score := clamp01(0.5*errorRate + 0.3*latencyPenalty + 0.2*(1-successRate))

	return ReliabilityRisk{
		ErrorRate:         round3(errorRate),
		SuccessRate:       round3(successRate),
		AvgLatencySeconds: round4(avgLatency),
		UptimePercent:     round3(successRate * 100),
		RiskScore:         round3(score),
		RequestVolume:     n,
	}
}

// Behavioral averages the per-call sub-scores and weighs in the issue rate.
func (a *Aggregator) Behavioral(records []CallRecord) BehavioralRisk {
	n := len(records)
	if n == 0 {
		return BehavioralRisk{}
	}

	var hallSum, toxSum, safetySum float64
	issues := 0
	for _, r := range records {
		hallSum += r.Behavioral.HallucinationScore
		toxSum += r.Behavioral.ToxicityScore
		safetySum += r.Behavioral.SafetyViolationScore
		if r.Behavioral.HasBehavioralIssues {
			issues++
		}
	}

	avgHall := hallSum / float64(n)
	avgTox := toxSum / float64(n)
	avgSafety := safetySum / float64(n)
	issueRate := float64(issues) / float64(n)

	// Sub-score blend follows the per-call weighting, with the issue rate
	// keeping occasional severe calls visible after averaging.
	blended := 0.4*avgHall + 0.35*avgTox + 0.25*avgSafety
	score := clamp01(0.8*blended + 0.2*issueRate)

	return BehavioralRisk{
		AvgHallucinationScore:   round3(avgHall),
		AvgToxicityScore:        round3(avgTox),
		AvgSafetyViolationScore: round3(avgSafety),
		IssueRate:               round3(issueRate),
		RiskScore:               round3(score),
	}
}

// Privacy computes detection and violation rates over the snapshot.
func (a *Aggregator) Privacy(records []CallRecord) PrivacyRisk {
	n := len(records)
	if n == 0 {
		return PrivacyRisk{}
	}

	detections := 0
	violations := 0
	sensitiveSum := 0
	for _, r := range records {
		if r.Privacy.PIIDetected {
			detections++
		}
		if r.Privacy.HasPrivacyIssues {
			violations++
		}
		sensitiveSum += r.Privacy.SensitiveTermCount
	}

	detectionRate := float64(detections) / float64(n)
	violationRate := float64(violations) / float64(n)
	score := clamp01(0.6*detectionRate + 0.4*violationRate)

	return PrivacyRisk{
		PIIDetectionRate:      round3(detectionRate),
		AvgSensitiveTermCount: round3(float64(sensitiveSum) / float64(n)),
		ViolationRate:         round3(violationRate),
		RiskScore:             round3(score),
	}
}

// Summarize computes all three categories plus the overall score.
func (a *Aggregator) Summarize(records []CallRecord) Summary {
	rel := a.Reliability(records)
	beh := a.Behavioral(records)
	priv := a.Privacy(records)

	overall := clamp01(
		a.weights.Reliability*rel.RiskScore +
			a.weights.Behavioral*beh.RiskScore +
			a.weights.Privacy*priv.RiskScore,
	)

	return Summary{
		OverallRiskScore: round3(overall),
		Reliability:      rel,
		Behavioral:       beh,
		Privacy:          priv,
		RequestVolume:    len(records),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
