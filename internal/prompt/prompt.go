// Package prompt renders the bit-exact prompt templates the race engine
// sends to model adapters (§6.1). Templates are plain string formatting —
// no templating engine is warranted for three fixed shapes.
package prompt

import (
	"fmt"
	"strings"

	"github.com/MrWong99/wordrace/internal/puzzle"
)

const previousGuessesToken = "{{PREVIOUS_GUESSES}}"

// CrosswordJSON renders the json-mode crossword prompt for a clue of the
// given declared length.
func CrosswordJSON(clueText string, length int) string {
	return fmt.Sprintf(`You are playing Crossword Sprint. Return ONLY valid JSON matching this schema:
{"answer": "<single word, lowercase, no spaces or punctuation>"}

Rules:
- Answer must be exactly %d letters.
- Use lowercase only.
- Do not include spaces, hyphens, periods, quotes, or extra text.
- If multiple candidates, choose the most common crossword answer.
- If unsure, guess the most likely, but still output valid JSON.

Clue: "%s"
Length: %d

Return only: {"answer":"<word>"}`, length, clueText, length)
}

// CrosswordPlain renders the plain-mode crossword prompt.
func CrosswordPlain(clueText string, length int) string {
	return fmt.Sprintf(`Return only the answer word, lowercase, no punctuation, no extra text.

Clue: "%s"
Length: %d`, clueText, length)
}

// ForClue selects the json or plain template based on the round's output
// rule.
func ForClue(clue puzzle.Clue, outputRule puzzle.OutputRule) string {
	if outputRule == puzzle.OutputJSON {
		return CrosswordJSON(clue.Prompt, clue.Length)
	}
	return CrosswordPlain(clue.Prompt, clue.Length)
}

// feedbackGlyph maps a FeedbackMark to the wire glyph used in prior-guess
// history (§6.1).
func feedbackGlyph(m puzzle.FeedbackMark) string {
	switch m {
	case puzzle.MarkCorrect:
		return "\U0001F7E9" // 🟩
	case puzzle.MarkPresent:
		return "\U0001F7E8" // 🟨
	default:
		return "⬜" // ⬜
	}
}

// renderHistory formats prior guesses as "Guess k: WORD <glyphs>" lines.
func renderHistory(guesses []puzzle.WordleGuess) string {
	if len(guesses) == 0 {
		return "No guesses yet."
	}
	var b strings.Builder
	for i, g := range guesses {
		var glyphs strings.Builder
		for _, m := range g.Feedback {
			glyphs.WriteString(feedbackGlyph(m))
		}
		fmt.Fprintf(&b, "Guess %d: %s %s\n", i+1, strings.ToUpper(g.Word), glyphs.String())
	}
	return strings.TrimRight(b.String(), "\n")
}

// WordleDefault renders the default Wordle guess prompt: rules, the guess
// history so far, and a request for the next 5-letter word. The target word
// is never included.
func WordleDefault(guesses []puzzle.WordleGuess, wordLength int) string {
	history := renderHistory(guesses)
	return fmt.Sprintf(`You are playing Wordle. Guess the secret %[1]d-letter word.

Rules:
- Respond with exactly one %[1]d-letter lowercase word, nothing else.
- Do not repeat a word you have already guessed.
- Feedback glyphs: %s correct letter and position, %s correct letter wrong position, %s letter not in word.

Previous guesses:
%s

Give your next guess now.`, wordLength, feedbackGlyph(puzzle.MarkCorrect), feedbackGlyph(puzzle.MarkPresent), feedbackGlyph(puzzle.MarkAbsent), history)
}

// ForWordleGuess renders the prompt for a model's next Wordle guess, using
// the model's custom template if set. A custom template containing the
// literal token {{PREVIOUS_GUESSES}} has it replaced with the rendered
// history; otherwise the history is appended after the template verbatim.
func ForWordleGuess(customTemplate string, guesses []puzzle.WordleGuess, wordLength int) string {
	if customTemplate == "" {
		return WordleDefault(guesses, wordLength)
	}

	history := renderHistory(guesses)
	if strings.Contains(customTemplate, previousGuessesToken) {
		return strings.ReplaceAll(customTemplate, previousGuessesToken, history)
	}
	return customTemplate + "\n\n" + history
}
