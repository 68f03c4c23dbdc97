package prompt

import (
	"strings"
	"testing"

	"github.com/MrWong99/wordrace/internal/puzzle"
)

func TestCrosswordJSON_IncludesClueAndLength(t *testing.T) {
	got := CrosswordJSON("Capital of France", 5)
	if !strings.Contains(got, `Clue: "Capital of France"`) {
		t.Error("expected clue text in prompt")
	}
	if !strings.Contains(got, "Length: 5") {
		t.Error("expected length in prompt")
	}
	if !strings.Contains(got, `{"answer":"<word>"}`) {
		t.Error("expected JSON schema hint in prompt")
	}
}

func TestCrosswordPlain_IncludesClueAndLength(t *testing.T) {
	got := CrosswordPlain("Capital of France", 5)
	if !strings.Contains(got, `Clue: "Capital of France"`) || !strings.Contains(got, "Length: 5") {
		t.Error("expected clue and length in plain prompt")
	}
	if strings.Contains(got, "JSON") {
		t.Error("plain prompt should not mention JSON")
	}
}

func TestForClue_SelectsByOutputRule(t *testing.T) {
	clue := puzzle.Clue{Prompt: "x", Length: 3}
	if got := ForClue(clue, puzzle.OutputJSON); !strings.Contains(got, "JSON") {
		t.Errorf("expected JSON template, got %q", got)
	}
	if got := ForClue(clue, puzzle.OutputPlain); strings.Contains(got, "JSON") {
		t.Errorf("expected plain template, got %q", got)
	}
}

func TestWordleDefault_NeverIncludesTargetWord(t *testing.T) {
	guesses := []puzzle.WordleGuess{
		{Word: "slate", Feedback: puzzle.Feedback{puzzle.MarkAbsent, puzzle.MarkAbsent, puzzle.MarkAbsent, puzzle.MarkCorrect, puzzle.MarkPresent}},
	}
	got := WordleDefault(guesses, 5)
	if strings.Contains(got, "crane") {
		t.Error("prompt leaked target word")
	}
	if !strings.Contains(got, "SLATE") {
		t.Error("expected prior guess in history")
	}
}

func TestWordleDefault_NoGuessesYet(t *testing.T) {
	got := WordleDefault(nil, 5)
	if !strings.Contains(got, "No guesses yet.") {
		t.Error("expected no-history placeholder")
	}
}

func TestForWordleGuess_CustomTemplateWithToken(t *testing.T) {
	guesses := []puzzle.WordleGuess{{Word: "crane"}}
	tmpl := "Custom rules.\n" + previousGuessesToken + "\nGo."
	got := ForWordleGuess(tmpl, guesses, 5)
	if !strings.Contains(got, "CRANE") {
		t.Error("expected interpolated history")
	}
	if strings.Contains(got, previousGuessesToken) {
		t.Error("token should have been replaced")
	}
}

func TestForWordleGuess_CustomTemplateWithoutToken(t *testing.T) {
	guesses := []puzzle.WordleGuess{{Word: "crane"}}
	got := ForWordleGuess("Custom rules, no token.", guesses, 5)
	if !strings.HasPrefix(got, "Custom rules, no token.") {
		t.Error("expected template text first")
	}
	if !strings.Contains(got, "CRANE") {
		t.Error("expected history appended")
	}
}

func TestForWordleGuess_EmptyTemplateUsesDefault(t *testing.T) {
	got := ForWordleGuess("", nil, 5)
	if !strings.Contains(got, "You are playing Wordle") {
		t.Error("expected default template")
	}
}
