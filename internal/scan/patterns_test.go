package scan

import "testing"

func TestMatchPIICategories(t *testing.T) {
	lib := NewLibrary()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"email", "reach me at a@b.com", []string{PIIEmail}},
		{"ssn", "My SSN is 123-45-6789", []string{PIISSN}},
		{"phone", "call 555-123-4567 today", []string{PIIPhone}},
		{"credit card", "card 4111-1111-1111-1111 on file", []string{PIICreditCard}},
		{"ip", "server at 10.0.0.1 is down", []string{PIIIPAddress}},
		{"none", "nothing personal here", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, total := lib.MatchPII(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("MatchPII(%q) categories = %v, want %v", tt.text, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("MatchPII(%q) categories = %v, want %v", tt.text, got, tt.want)
				}
			}
			if len(tt.want) > 0 && total == 0 {
				t.Fatalf("MatchPII(%q) total = 0, want > 0", tt.text)
			}
		})
	}
}

func TestMatchPIIIsDeterministic(t *testing.T) {
	lib := NewLibrary()
	text := "email a@b.com, ssn 123-45-6789, ip 10.0.0.1"

	first, firstTotal := lib.MatchPII(text)
	second, secondTotal := lib.MatchPII(text)

	if firstTotal != secondTotal {
		t.Fatalf("totals differ: %d vs %d", firstTotal, secondTotal)
	}
	if len(first) != len(second) {
		t.Fatalf("category counts differ: %v vs %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("category order differs: %v vs %v", first, second)
		}
	}
}

func TestCountSensitiveAcrossGroups(t *testing.T) {
	lib := NewLibrary()

	got := lib.CountSensitive("the patient saw a doctor about a diagnosis")
	if got != 3 {
		t.Fatalf("CountSensitive = %d, want 3", got)
	}
	if n := lib.CountSensitive("plain text with no signals"); n != 0 {
		t.Fatalf("CountSensitive = %d, want 0", n)
	}
}

func TestCountToxicCountsOccurrences(t *testing.T) {
	lib := NewLibrary()

	if got := lib.CountToxic("you stupid stupid person"); got != 2 {
		t.Fatalf("CountToxic = %d, want 2", got)
	}
	if got := lib.CountToxic("a perfectly pleasant sentence"); got != 0 {
		t.Fatalf("CountToxic = %d, want 0", got)
	}
}

func TestCountUncertaintyPhrases(t *testing.T) {
	lib := NewLibrary()

	got := lib.CountUncertainty("I think maybe it's Paris but I'm not sure")
	if got != 3 {
		t.Fatalf("CountUncertainty = %d, want 3", got)
	}
}
