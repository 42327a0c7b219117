package scan

import "strings"

// BehavioralMetadata summarizes the behavioral signals of a single response.
// Scores are in [0,1]; the raw response text is never retained.
type BehavioralMetadata struct {
	HallucinationScore   float64 `json:"hallucination_score"`
	ToxicityScore        float64 `json:"toxicity_score"`
	SafetyViolationScore float64 `json:"safety_violation_score"`
	HasBehavioralIssues  bool    `json:"has_behavioral_issues"`
}

// BehavioralConfig tunes the behavioral heuristics. The zero value is not
// usable; start from DefaultBehavioralConfig.
type BehavioralConfig struct {
	// Hallucination sub-signal weights. They should sum to 1 so the
	// combined score stays in [0,1]; the scanner clamps either way.
	UncertaintyWeight float64
	LengthWeight      float64
	RepetitionWeight  float64

	// IssueThreshold flags a response when any headline score exceeds it.
	IssueThreshold float64

	// Word-count band considered normal. Below MinWords the response looks
	// truncated or evasive, above MaxWords it looks like rambling.
	MinWords int
	MaxWords int

	// RepetitionFloor is the unique-word ratio below which a response is
	// considered degenerate.
	RepetitionFloor float64
}

// DefaultBehavioralConfig returns the documented default tuning.
func DefaultBehavioralConfig() BehavioralConfig {
	return BehavioralConfig{
		UncertaintyWeight: 0.6,
		LengthWeight:      0.2,
		RepetitionWeight:  0.2,
		IssueThreshold:    0.5,
		MinWords:          10,
		MaxWords:          500,
		RepetitionFloor:   0.5,
	}
}

const (
	// Each uncertainty phrase contributes this much to the uncertainty signal.
	uncertaintyStep = 0.3
	// Toxic match count that saturates the toxicity score at 1.0.
	toxicitySaturation = 5.0
	// Unsafe keyword count that saturates the safety score at 1.0.
	safetySaturation = 3.0
	// Repetition is only meaningful once a response has a few words.
	repetitionMinWords = 5
)

// BehavioralScanner scores LLM responses for hallucination, toxicity, and
// safety-violation signals using shared pattern data. Stateless and safe
// for concurrent use.
type BehavioralScanner struct {
	lib *Library
	cfg BehavioralConfig
}

func NewBehavioralScanner(lib *Library, cfg BehavioralConfig) *BehavioralScanner {
	return &BehavioralScanner{lib: lib, cfg: cfg}
}

// Scan computes behavioral metadata for one response. An empty response
// yields the zero record: no evidence, no issues.
func (s *BehavioralScanner) Scan(response string) BehavioralMetadata {
	if strings.TrimSpace(response) == "" {
		return BehavioralMetadata{}
	}

	uncertainty := clamp01(uncertaintyStep * float64(s.lib.CountUncertainty(response)))
	words := strings.Fields(strings.ToLower(response))
	length := s.lengthAnomaly(len(words))
	repetition := s.repetition(words)

	hallucination := clamp01(
		s.cfg.UncertaintyWeight*uncertainty +
			s.cfg.LengthWeight*length +
			s.cfg.RepetitionWeight*repetition,
	)
	toxicity := clamp01(float64(s.lib.CountToxic(response)) / toxicitySaturation)
	safety := clamp01(float64(s.lib.CountUnsafe(response)) / safetySaturation)

	return BehavioralMetadata{
		HallucinationScore:   round3(hallucination),
		ToxicityScore:        round3(toxicity),
		SafetyViolationScore: round3(safety),
		HasBehavioralIssues: hallucination > s.cfg.IssueThreshold ||
			toxicity > s.cfg.IssueThreshold ||
			safety > s.cfg.IssueThreshold,
	}
}

// lengthAnomaly grows linearly with distance from the normal word-count
// band and is 0 inside it.
func (s *BehavioralScanner) lengthAnomaly(wordCount int) float64 {
	switch {
	case wordCount < s.cfg.MinWords:
		return clamp01(float64(s.cfg.MinWords-wordCount) / float64(s.cfg.MinWords))
	case wordCount > s.cfg.MaxWords:
		return clamp01(float64(wordCount-s.cfg.MaxWords) / float64(s.cfg.MaxWords))
	default:
		return 0
	}
}

// repetition scores how far the unique-word ratio falls below the floor.
func (s *BehavioralScanner) repetition(words []string) float64 {
	if len(words) <= repetitionMinWords {
		return 0
	}
	unique := make(map[string]struct{}, len(words))
	for _, w := range words {
		unique[w] = struct{}{}
	}
	ratio := float64(len(unique)) / float64(len(words))
	if ratio >= s.cfg.RepetitionFloor {
		return 0
	}
	return clamp01((s.cfg.RepetitionFloor - ratio) / s.cfg.RepetitionFloor)
}
