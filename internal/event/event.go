// Package event defines the typed event union the Race Engine emits and the
// single-writer Hub that funnels them to one client session in order.
package event

import "github.com/MrWong99/wordrace/internal/puzzle"

// Kind discriminates an Event's payload, matching the wire "type" field.
type Kind string

const (
	KindConfig          Kind = "config"
	KindState           Kind = "state"
	KindModelStart      Kind = "model_start"
	KindReasoningDelta  Kind = "reasoning_delta"
	KindAttempt         Kind = "attempt"
	KindClue            Kind = "clue"
	KindRound           Kind = "round"
	KindGuess           Kind = "guess"
	KindModelComplete   Kind = "model_complete"
	KindComplete        Kind = "complete"
	KindError           Kind = "error"
)

// ConfigPayload carries the race or Wordle configuration accepted at
// submission time. Exactly one of Race or Wordle is set, matching the
// session's mode. TargetWord is only populated for a Wordle config when the
// caller opted into include_user.
type ConfigPayload struct {
	Race       *puzzle.RaceConfig    `json:"race,omitempty"`
	Wordle     *puzzle.WordleConfig  `json:"wordle,omitempty"`
	TargetWord string                `json:"target_word,omitempty"`
}

// StatePayload carries the current progress snapshot. Exactly one of Race or
// Wordle is set, matching the session's mode.
type StatePayload struct {
	Race   *puzzle.RaceState   `json:"race,omitempty"`
	Wordle *puzzle.WordleState `json:"wordle,omitempty"`
}

// ModelStartPayload announces that a model has begun a turn: its
// guess_index'th Wordle guess or, in a crossword race, the clue whose turn
// number across the whole race is guess_index.
type ModelStartPayload struct {
	ModelID    string `json:"model_id"`
	GuessIndex int    `json:"guess_index"`
}

// ReasoningDeltaPayload carries one incremental reasoning chunk for a given
// model's guess. Delta is the suffix since the previous chunk for the same
// (ModelID, GuessIndex) pair; the receiver reconstructs by concatenation.
type ReasoningDeltaPayload struct {
	ModelID    string `json:"model_id"`
	GuessIndex int    `json:"guess_index"`
	Delta      string `json:"delta"`
}

// AttemptPayload carries one crossword attempt as it completes.
type AttemptPayload struct {
	Attempt puzzle.Attempt `json:"attempt"`
}

// CluePayload carries every model's scored attempt for one clue, all
// together so observers see a consistent snapshot.
type CluePayload struct {
	ClueID   string           `json:"clue_id"`
	Attempts []puzzle.Attempt `json:"attempts"`
}

// RoundPayload carries one round's full results after it completes.
type RoundPayload struct {
	RoundResult puzzle.RoundResult `json:"round_result"`
}

// GuessPayload carries one Wordle guess as it completes.
type GuessPayload struct {
	Guess puzzle.WordleGuess `json:"guess"`
}

// ModelCompletePayload announces that a model's Wordle game has ended.
type ModelCompletePayload struct {
	ModelID   string                 `json:"model_id"`
	GameState puzzle.WordleGameState `json:"game_state"`
}

// CompletePayload carries the final outcome. Exactly one of Race or Wordle
// is set, matching the session's mode.
type CompletePayload struct {
	Race   *puzzle.RaceResult       `json:"race,omitempty"`
	Wordle *puzzle.WordleRaceResult `json:"wordle,omitempty"`
}

// ErrorPayload carries a terminal session-level fault.
type ErrorPayload struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Event is the envelope delivered over the stream. Exactly one payload
// field is set, matching Kind.
type Event struct {
	Kind Kind `json:"type"`

	Config         *ConfigPayload         `json:"config,omitempty"`
	State          *StatePayload          `json:"state,omitempty"`
	ModelStart     *ModelStartPayload     `json:"model_start,omitempty"`
	ReasoningDelta *ReasoningDeltaPayload `json:"reasoning_delta,omitempty"`
	Attempt        *AttemptPayload        `json:"attempt,omitempty"`
	Clue           *CluePayload           `json:"clue,omitempty"`
	Round          *RoundPayload          `json:"round,omitempty"`
	Guess          *GuessPayload          `json:"guess,omitempty"`
	ModelComplete  *ModelCompletePayload  `json:"model_complete,omitempty"`
	Complete       *CompletePayload       `json:"complete,omitempty"`

	// *ErrorPayload is embedded rather than nested so the wire shape matches
	// §6.3 exactly: {type, error, details} with error/details at the top
	// level, not under an "error" object.
	*ErrorPayload `json:",omitempty"`
}

// Terminal reports whether kind ends the stream.
func (k Kind) Terminal() bool {
	return k == KindComplete || k == KindError
}
