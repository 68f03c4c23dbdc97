package event

import "github.com/MrWong99/wordrace/internal/puzzle"

func NewRaceConfig(cfg puzzle.RaceConfig) Event {
	return Event{Kind: KindConfig, Config: &ConfigPayload{Race: &cfg}}
}

func NewWordleConfig(cfg puzzle.WordleConfig, revealTarget bool) Event {
	payload := &ConfigPayload{Wordle: &cfg}
	if revealTarget {
		payload.TargetWord = cfg.Puzzle.TargetWord
	}
	return Event{Kind: KindConfig, Config: payload}
}

func NewRaceState(state puzzle.RaceState) Event {
	return Event{Kind: KindState, State: &StatePayload{Race: &state}}
}

func NewWordleState(state puzzle.WordleState) Event {
	return Event{Kind: KindState, State: &StatePayload{Wordle: &state}}
}

func NewModelStart(modelID string, guessIndex int) Event {
	return Event{Kind: KindModelStart, ModelStart: &ModelStartPayload{ModelID: modelID, GuessIndex: guessIndex}}
}

func NewReasoningDelta(modelID string, guessIndex int, delta string) Event {
	return Event{Kind: KindReasoningDelta, ReasoningDelta: &ReasoningDeltaPayload{
		ModelID: modelID, GuessIndex: guessIndex, Delta: delta,
	}}
}

func NewAttempt(a puzzle.Attempt) Event {
	return Event{Kind: KindAttempt, Attempt: &AttemptPayload{Attempt: a}}
}

func NewClue(clueID string, attempts []puzzle.Attempt) Event {
	return Event{Kind: KindClue, Clue: &CluePayload{ClueID: clueID, Attempts: attempts}}
}

func NewRound(result puzzle.RoundResult) Event {
	return Event{Kind: KindRound, Round: &RoundPayload{RoundResult: result}}
}

func NewGuess(g puzzle.WordleGuess) Event {
	return Event{Kind: KindGuess, Guess: &GuessPayload{Guess: g}}
}

func NewModelComplete(modelID string, state puzzle.WordleGameState) Event {
	return Event{Kind: KindModelComplete, ModelComplete: &ModelCompletePayload{ModelID: modelID, GameState: state}}
}

func NewRaceComplete(result puzzle.RaceResult) Event {
	return Event{Kind: KindComplete, Complete: &CompletePayload{Race: &result}}
}

func NewWordleComplete(result puzzle.WordleRaceResult) Event {
	return Event{Kind: KindComplete, Complete: &CompletePayload{Wordle: &result}}
}

func NewError(message string, details string) Event {
	return Event{Kind: KindError, ErrorPayload: &ErrorPayload{Error: message, Details: details}}
}
