package race

import "strings"

// fallbackLetter pads a short guess so the game keeps moving per §4.5 step
// 1 rather than stalling on a malformed response.
const fallbackLetter = 'a'

// parseGuessWord reduces a model's raw output to a candidate word of
// exactly wordLength letters: trim, lowercase, strip non-alpha, take the
// first wordLength consecutive letters. If fewer than wordLength clean
// letters remain, left-pad with fallbackLetter.
func parseGuessWord(raw string, wordLength int) string {
	var clean strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(raw)) {
		if r >= 'a' && r <= 'z' {
			clean.WriteRune(r)
			if clean.Len() >= wordLength {
				break
			}
		}
	}
	word := clean.String()
	if len(word) >= wordLength {
		return word[:wordLength]
	}
	return strings.Repeat(string(fallbackLetter), wordLength-len(word)) + word
}
