package scan

import (
	"regexp"
	"strings"
)

// PII category tags reported by the privacy scanner. Only these tags ever
// leave a scan; matched text never does.
const (
	PIIEmail      = "email"
	PIIPhone      = "phone"
	PIISSN        = "ssn"
	PIICreditCard = "credit_card"
	PIIIPAddress  = "ip_address"
	PIIZipCode    = "zip_code"
)

type piiPattern struct {
	category string
	re       *regexp.Regexp
}

// Library holds the compiled match rules shared by all scanners. It is
// immutable after construction and safe for concurrent use.
type Library struct {
	pii         []piiPattern
	sensitive   map[string][]string
	toxic       []*regexp.Regexp
	unsafeWords []string
	uncertainty []string
}

var defaultLibrary = NewLibrary()

// DefaultLibrary returns the process-wide shared library. Compiling the
// rule set once is enough; the library carries no mutable state.
func DefaultLibrary() *Library {
	return defaultLibrary
}

// NewLibrary compiles the built-in detection rules.
func NewLibrary() *Library {
	return &Library{
		pii: []piiPattern{
			{PIIEmail, regexp.MustCompile(`\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}\b`)},
			{PIIPhone, regexp.MustCompile(`\b(?:\+?1[-.]?)?\(?[0-9]{3}\)?[-.]?[0-9]{3}[-.]?[0-9]{4}\b`)},
			{PIISSN, regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)},
			{PIICreditCard, regexp.MustCompile(`\b\d{4}[-\s]?\d{4}[-\s]?\d{4}[-\s]?\d{4}\b`)},
			{PIIIPAddress, regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`)},
			{PIIZipCode, regexp.MustCompile(`\b\d{5}(?:-\d{4})?\b`)},
		},
		sensitive: map[string][]string{
			"health": {
				"medical", "diagnosis", "prescription", "patient", "hospital",
				"disease", "medication", "doctor", "healthcare", "symptoms",
			},
			"financial": {
				"salary", "income", "account number", "routing number", "bank",
				"credit score", "loan", "mortgage", "investment", "portfolio",
			},
			"legal": {
				"lawsuit", "conviction", "arrest", "criminal record", "attorney",
				"settlement", "litigation", "defendant", "plaintiff",
			},
			"personal": {
				"passport", "driver license", "birth certificate", "maiden name",
				"security question", "password", "pin", "mother's maiden name",
			},
		},
		toxic: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(hate|stupid|idiot|kill|die|attack)\b`),
			regexp.MustCompile(`(?i)\b(fuck|shit|damn|hell)\b`),
		},
		unsafeWords: []string{
			"violence", "weapon", "bomb", "suicide", "murder",
			"illegal", "hack", "steal", "fraud", "scam",
		},
		uncertainty: []string{
			"i think", "maybe", "probably", "possibly", "might be",
			"i'm not sure", "unclear", "uncertain", "could be",
		},
	}
}

// MatchPII reports the category tags that matched and the total number of
// matches across all categories. Category order is fixed, so repeated scans
// of the same text yield identical results.
func (l *Library) MatchPII(text string) (categories []string, total int) {
	for _, p := range l.pii {
		n := len(p.re.FindAllStringIndex(text, -1))
		if n > 0 {
			categories = append(categories, p.category)
			total += n
		}
	}
	return categories, total
}

// CountSensitive counts how many sensitive keywords appear in the text,
// summed across all keyword groups. Each keyword counts at most once.
func (l *Library) CountSensitive(text string) int {
	lower := strings.ToLower(text)
	count := 0
	for _, words := range l.sensitive {
		for _, w := range words {
			if strings.Contains(lower, w) {
				count++
			}
		}
	}
	return count
}

// CountToxic counts toxic-language matches in the text.
func (l *Library) CountToxic(text string) int {
	count := 0
	for _, re := range l.toxic {
		count += len(re.FindAllStringIndex(text, -1))
	}
	return count
}

// CountUnsafe counts safety-violation keywords present in the text. Each
// keyword counts at most once.
func (l *Library) CountUnsafe(text string) int {
	lower := strings.ToLower(text)
	count := 0
	for _, w := range l.unsafeWords {
		if strings.Contains(lower, w) {
			count++
		}
	}
	return count
}

// CountUncertainty counts uncertainty phrases present in the text. Each
// phrase counts at most once.
func (l *Library) CountUncertainty(text string) int {
	lower := strings.ToLower(text)
	count := 0
	for _, p := range l.uncertainty {
		if strings.Contains(lower, p) {
			count++
		}
	}
	return count
}
