package scan

// PrivacyMetadata summarizes the privacy signals of one prompt/response
// pair. It carries category tags and counts only, never matched text.
type PrivacyMetadata struct {
	PIIDetected        bool     `json:"pii_detected"`
	PIITypes           []string `json:"pii_types,omitempty"`
	SensitiveTermCount int      `json:"sensitive_term_count"`
	HasPrivacyIssues   bool     `json:"has_privacy_issues"`
}

// PrivacyConfig tunes the privacy scanner.
type PrivacyConfig struct {
	// SensitiveTermThreshold flags a call when the sensitive-term count
	// exceeds it, even without a PII match.
	SensitiveTermThreshold int
}

func DefaultPrivacyConfig() PrivacyConfig {
	return PrivacyConfig{SensitiveTermThreshold: 3}
}

// PrivacyScanner detects PII patterns and sensitive keywords in prompts and
// responses using shared pattern data. Stateless and safe for concurrent use.
type PrivacyScanner struct {
	lib *Library
	cfg PrivacyConfig
}

func NewPrivacyScanner(lib *Library, cfg PrivacyConfig) *PrivacyScanner {
	return &PrivacyScanner{lib: lib, cfg: cfg}
}

// Scan computes privacy metadata over the prompt and response together.
// Empty inputs yield the zero record.
func (s *PrivacyScanner) Scan(prompt, response string) PrivacyMetadata {
	combined := prompt + " " + response

	types, piiCount := s.lib.MatchPII(combined)
	sensitive := s.lib.CountSensitive(combined)

	return PrivacyMetadata{
		PIIDetected:        piiCount > 0,
		PIITypes:           types,
		SensitiveTermCount: sensitive,
		HasPrivacyIssues:   piiCount > 0 || sensitive > s.cfg.SensitiveTermThreshold,
	}
}
