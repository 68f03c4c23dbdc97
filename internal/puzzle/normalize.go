package puzzle

import (
	"encoding/json"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Normalize reduces raw model output to a comparable string.
//
// For json mode, raw is parsed as a JSON object and the "answer" field is
// extracted; a parse failure, a missing field, a non-string value, or an
// empty string yields ("", false). For plain mode the second return is
// always true — there is no extraction step to fail.
//
// The extracted (or raw, in plain mode) text then has whitespace and Unicode
// punctuation stripped — preserving '-' iff allowHyphen — and the case rule
// applied.
func Normalize(raw string, outputRule OutputRule, caseRule CaseRule, allowHyphen bool) (normalized string, extractedOK bool) {
	text := raw
	extractedOK = true

	if outputRule == OutputJSON {
		var obj map[string]any
		if err := json.Unmarshal([]byte(raw), &obj); err != nil {
			return "", false
		}
		rawAnswer, ok := obj["answer"]
		if !ok {
			return "", false
		}
		s, ok := rawAnswer.(string)
		if !ok || s == "" {
			return "", false
		}
		text = s
	}

	return stripAndCase(text, caseRule, allowHyphen), extractedOK
}

// stripAndCase strips spaces and Unicode punctuation (preserving '-' iff
// allowHyphen) and applies caseRule. An unrecognised or empty caseRule
// defaults to lower, matching the clue-level default in the data model.
func stripAndCase(s string, caseRule CaseRule, allowHyphen bool) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		if unicode.IsPunct(r) {
			if allowHyphen && r == '-' {
				b.WriteRune(r)
			}
			continue
		}
		b.WriteRune(r)
	}
	out := b.String()

	switch caseRule {
	case CaseUpper:
		return strings.ToUpper(out)
	case CaseTitle:
		return titleFirst(out)
	case CaseAsIs:
		return out
	default:
		return strings.ToLower(out)
	}
}

// titleFirst capitalizes only the first code point of s, leaving the rest
// untouched — per spec, title case is not per-word.
func titleFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToTitle(r)) + s[size:]
}

// FormatOK reports whether a normalized attempt output satisfies the format
// contract: for json mode, extraction must have succeeded; in both modes the
// normalized string must have the clue's declared rune length exactly.
func FormatOK(normalized string, extractedOK bool, declaredLength int) bool {
	return extractedOK && utf8.RuneCountInString(normalized) == declaredLength
}

// NormalizeAnswer normalizes a canonical crossword answer the same way a
// model's plain-mode output would be normalized: plain mode, the clue's case
// rule, and allowHyphen always false.
func NormalizeAnswer(answer string, caseRule CaseRule) string {
	norm, _ := Normalize(answer, OutputPlain, caseRule, false)
	return norm
}

// IsCorrect reports whether a model's normalized output matches the
// canonical answer byte-for-byte once the canonical answer is normalized the
// same way. Correct implies FormatOK is the caller's responsibility: callers
// should only treat IsCorrect's result as meaningful when FormatOK is true.
func IsCorrect(normalizedOutput, canonicalAnswer string, caseRule CaseRule) bool {
	return normalizedOutput == NormalizeAnswer(canonicalAnswer, caseRule)
}
