package puzzle

import "testing"

func TestNormalize_Plain(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		caseRule    CaseRule
		allowHyphen bool
		want        string
		wantOK      bool
	}{
		{"lower default", "  Ocean!  ", CaseLower, false, "ocean", true},
		{"upper", "ocean", CaseUpper, false, "OCEAN", true},
		{"title first only", "ocean liner", CaseTitle, false, "Oceanliner", true},
		{"as-is preserves case", "OcEaN", CaseAsIs, false, "OcEaN", true},
		{"strips punctuation", "re-entry!", CaseLower, false, "reentry", true},
		{"keeps hyphen when allowed", "re-entry", CaseLower, true, "re-entry", true},
		{"strips internal spaces", "star fish", CaseLower, false, "starfish", true},
		{"empty default case rule", "Fjord", "", false, "fjord", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(tt.raw, OutputPlain, tt.caseRule, tt.allowHyphen)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Normalize(%q) = (%q, %v), want (%q, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNormalize_JSON(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{"valid answer field", `{"answer": "Ocean"}`, "ocean", true},
		{"extra fields ignored", `{"reasoning": "x", "answer": "glacier"}`, "glacier", true},
		{"missing field", `{"reasoning": "x"}`, "", false},
		{"not json", `ocean`, "", false},
		{"answer not a string", `{"answer": 5}`, "", false},
		{"answer empty string", `{"answer": ""}`, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(tt.raw, OutputJSON, CaseLower, false)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Normalize(%q) = (%q, %v), want (%q, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestFormatOK(t *testing.T) {
	tests := []struct {
		name           string
		normalized     string
		extractedOK    bool
		declaredLength int
		want           bool
	}{
		{"exact length match", "ocean", true, 5, true},
		{"length mismatch", "ocea", true, 5, false},
		{"extraction failed", "ocean", false, 5, false},
		{"unicode rune count not byte count", "café", true, 4, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatOK(tt.normalized, tt.extractedOK, tt.declaredLength); got != tt.want {
				t.Errorf("FormatOK(%q, %v, %d) = %v, want %v", tt.normalized, tt.extractedOK, tt.declaredLength, got, tt.want)
			}
		})
	}
}

func TestIsCorrect(t *testing.T) {
	if !IsCorrect("ocean", "Ocean", CaseLower) {
		t.Error("expected case-insensitive match via shared normalization")
	}
	if IsCorrect("ocean", "glacier", CaseLower) {
		t.Error("expected mismatch")
	}
}
