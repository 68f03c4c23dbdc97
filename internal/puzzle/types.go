// Package puzzle holds the data model, string normalization, scoring, and
// Wordle feedback algorithms shared by both race modes. Everything in this
// package is pure and non-blocking — no I/O, no goroutines.
package puzzle

import (
	"encoding/json"
	"time"
)

// CaseRule controls how normalized text is cased.
type CaseRule string

const (
	CaseLower CaseRule = "lower"
	CaseUpper CaseRule = "upper"
	CaseTitle CaseRule = "title"
	CaseAsIs  CaseRule = "as-is"
)

// OutputRule controls how raw model output is parsed before normalization.
type OutputRule string

const (
	OutputPlain OutputRule = "plain"
	OutputJSON  OutputRule = "json"
)

// ThinkingLevel is the reasoning effort requested of a model that supports it.
type ThinkingLevel string

const (
	ThinkingLow    ThinkingLevel = "low"
	ThinkingMedium ThinkingLevel = "medium"
	ThinkingHigh   ThinkingLevel = "high"
)

// ThinkingMode is a tri-state knob: off, or on at a given level.
type ThinkingMode struct {
	Enabled bool          `json:"enabled"`
	Level   ThinkingLevel `json:"level,omitempty"`
}

// ModelSpec describes what to invoke: a stable id, a human name, an opaque
// endpoint reference consumed only by the adapter layer, and a set of knobs.
// Omitted knobs (nil Temperature/TopP, zero ThinkingMode) mean "adapter default".
type ModelSpec struct {
	ID                   string
	Name                 string
	EndpointRef          string
	Temperature          *float64
	TopP                 *float64
	Thinking             ThinkingMode
	CustomPromptTemplate string
}

// modelSpecWire is the §3 wire shape for a ModelSpec: thinking_enabled and
// thinking_level sit flat alongside the other knobs rather than nested under
// a "thinking" object.
type modelSpecWire struct {
	ID                   string        `json:"id"`
	Name                 string        `json:"name,omitempty"`
	EndpointRef          string        `json:"endpoint_ref"`
	Temperature          *float64      `json:"temperature,omitempty"`
	TopP                 *float64      `json:"top_p,omitempty"`
	ThinkingEnabled      bool          `json:"thinking_enabled"`
	ThinkingLevel        ThinkingLevel `json:"thinking_level,omitempty"`
	CustomPromptTemplate string        `json:"custom_prompt_template,omitempty"`
}

func (m ModelSpec) MarshalJSON() ([]byte, error) {
	return json.Marshal(modelSpecWire{
		ID:                   m.ID,
		Name:                 m.Name,
		EndpointRef:          m.EndpointRef,
		Temperature:          m.Temperature,
		TopP:                 m.TopP,
		ThinkingEnabled:      m.Thinking.Enabled,
		ThinkingLevel:        m.Thinking.Level,
		CustomPromptTemplate: m.CustomPromptTemplate,
	})
}

func (m *ModelSpec) UnmarshalJSON(data []byte) error {
	var w modelSpecWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*m = ModelSpec{
		ID:                   w.ID,
		Name:                 w.Name,
		EndpointRef:          w.EndpointRef,
		Temperature:          w.Temperature,
		TopP:                 w.TopP,
		Thinking:             ThinkingMode{Enabled: w.ThinkingEnabled, Level: w.ThinkingLevel},
		CustomPromptTemplate: w.CustomPromptTemplate,
	}
	return nil
}

// Clue is a single crossword question with its canonical answer.
type Clue struct {
	ClueID      string   `json:"clue_id"`
	Prompt      string   `json:"prompt"`
	Answer      string   `json:"answer"`
	Length      int      `json:"length"`
	AllowHyphen bool     `json:"allow_hyphen"`
	CaseRule    CaseRule `json:"case_rule"`
}

// Round is an ordered group of clues sharing scoring and output rules.
type Round struct {
	RoundID     string     `json:"round_id"`
	Clues       []Clue     `json:"clues"`
	OutputRule  OutputRule `json:"output_rule"`
	MaxTokens   int        `json:"max_tokens"`
	TimeLimitMs int        `json:"time_limit_ms"`
}

// WordlePuzzle is the Wordle game definition. WordLength and MaxGuesses are
// fixed by the rules of the game (5 and 6 respectively) but are carried as
// fields rather than constants so callers and tests can assert on them.
type WordlePuzzle struct {
	TargetWord string `json:"target_word"`
	WordLength int    `json:"word_length"`
	MaxGuesses int    `json:"max_guesses"`
}

// NewWordlePuzzle constructs a [WordlePuzzle] with the canonical 5/6 sizing.
func NewWordlePuzzle(targetWord string) WordlePuzzle {
	return WordlePuzzle{TargetWord: targetWord, WordLength: 5, MaxGuesses: 6}
}

// ErrorKind classifies why an Attempt did not produce a clean result. The
// zero value (empty string) means no error occurred.
type ErrorKind string

const (
	ErrorTimeout        ErrorKind = "timeout"
	ErrorAdapterFailure ErrorKind = "adapter_failure"
	ErrorCancelled      ErrorKind = "cancelled"
	ErrorFatal          ErrorKind = "fatal"
)

// AttemptError carries the kind and a human-readable message for a failed Attempt.
type AttemptError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// TokenUsage is the prompt/completion/total token triple reported by an adapter.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Attempt is the full record of one model's one response to one prompt.
//
// Invariant: TRequest <= TFirst (if set) <= TLast. If Error is set then
// FormatOK and Correct are both false and ClueScore is 0.
type Attempt struct {
	AttemptID string `json:"attempt_id"`
	RaceID    string `json:"race_id"`
	RoundID   string `json:"round_id,omitempty"`
	ClueID    string `json:"clue_id,omitempty"`
	ModelID   string `json:"model_id"`

	TRequest time.Time  `json:"t_request"`
	TFirst   *time.Time `json:"t_first,omitempty"`
	TLast    time.Time  `json:"t_last"`

	E2EMs  int64  `json:"e2e_ms"`
	TTFTMs *int64 `json:"ttft_ms,omitempty"`

	Output     string  `json:"output"`
	Normalized string  `json:"normalized"`
	FormatOK   bool    `json:"format_ok"`
	Correct    bool    `json:"correct"`
	ClueScore  float64 `json:"clue_score"`

	TokenUsage *TokenUsage   `json:"token_usage,omitempty"`
	Error      *AttemptError `json:"error,omitempty"`
}

// FeedbackMark is the per-letter Wordle verdict.
type FeedbackMark string

const (
	MarkCorrect FeedbackMark = "correct"
	MarkPresent FeedbackMark = "present"
	MarkAbsent  FeedbackMark = "absent"
)

// Feedback is the fixed-length-5 verdict vector for one guess.
type Feedback [5]FeedbackMark

// WordleGuess specializes Attempt with the parsed five-letter word, its
// feedback vector, and its 0-indexed position in the game.
type WordleGuess struct {
	Attempt    Attempt  `json:"attempt"`
	Word       string   `json:"word"`
	Feedback   Feedback `json:"feedback"`
	GuessIndex int      `json:"guess_index"`
}

// WordleGameState is the per-model mutable game record. At most MaxGuesses
// entries are ever appended; Solved and Failed are mutually exclusive and,
// once either becomes true, the game is frozen.
type WordleGameState struct {
	ModelID       string        `json:"model_id"`
	Guesses       []WordleGuess `json:"guesses"`
	Solved        bool          `json:"solved"`
	Failed        bool          `json:"failed"`
	DidNotFinish  bool          `json:"did_not_finish"`
	SolvedAtGuess int           `json:"solved_at_guess,omitempty"`
	TimeToSolveMs int64         `json:"time_to_solve_ms,omitempty"`
}

// ModelScore is the per-model crossword aggregate across all clues.
type ModelScore struct {
	ModelID       string   `json:"model_id"`
	TotalCorrect  int      `json:"total_correct"`
	TotalAttempts int      `json:"total_attempts"`
	AccuracyPct   float64  `json:"accuracy_pct"`
	AvgScore      float64  `json:"avg_score"`
	MedianE2EMs   float64  `json:"median_e2e_ms"`
	MedianTTFTMs  *float64 `json:"median_ttft_ms,omitempty"`
	E2EVariance   float64  `json:"e2e_variance"`
	Rank          int      `json:"rank"`
}

// WordleModelResult is the per-model Wordle outcome used for final ranking.
type WordleModelResult struct {
	ModelID        string   `json:"model_id"`
	Solved         bool     `json:"solved"`
	GuessCount     int      `json:"guess_count"`
	TimeToSolveMs  *int64   `json:"time_to_solve_ms,omitempty"`
	ClosenessScore int      `json:"closeness_score,omitempty"`
	CorrectLetters int      `json:"correct_letters,omitempty"`
	PresentLetters int      `json:"present_letters,omitempty"`
	TotalTokens    *int     `json:"total_tokens,omitempty"`
	TotalCost      *float64 `json:"total_cost,omitempty"`
	DidNotFinish   bool     `json:"did_not_finish"`
	Rank           int      `json:"rank"`
}

// RaceStatus is the public lifecycle status of a race.
type RaceStatus string

const (
	StatusPending   RaceStatus = "pending"
	StatusRunning   RaceStatus = "running"
	StatusCompleted RaceStatus = "completed"
	StatusError     RaceStatus = "error"
)

// RaceState is the public progress view of a running race.
//
// Invariant: ProgressPct = round(100*CompletedClues/TotalClues); Status is
// monotonic along pending -> running -> (completed|error).
type RaceState struct {
	Status         RaceStatus `json:"status"`
	StartedAt      *time.Time `json:"started_at,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	CompletedClues int        `json:"completed_clues"`
	TotalClues     int        `json:"total_clues"`
	ProgressPct    int        `json:"progress_pct"`
	CurrentRoundID string     `json:"current_round_id,omitempty"`
	CurrentClueID  string     `json:"current_clue_id,omitempty"`
}

// RaceConfig is the crossword race submission: an id, an optional caller
// name, the ordered rounds to run, the model roster, and the time the
// request was accepted.
type RaceConfig struct {
	RaceID    string      `json:"id"`
	Name      string      `json:"name,omitempty"`
	Models    []ModelSpec `json:"models"`
	Rounds    []Round     `json:"rounds"`
	CreatedAt time.Time   `json:"created_at"`
}

// ClueResult bundles one clue's scored attempts, as emitted in a clue event
// and folded into a round's results.
type ClueResult struct {
	ClueID   string    `json:"clue_id"`
	Attempts []Attempt `json:"attempts"`
}

// RoundResult is one round's clue results plus each model's average score
// across that round's clues, emitted after the round finishes.
type RoundResult struct {
	RoundID     string             `json:"round_id"`
	ClueResults []ClueResult       `json:"clue_results"`
	ModelScores map[string]float64 `json:"model_scores"`
}

// RaceResult is the final crossword outcome: every round's results plus the
// ranked per-model aggregate scores.
type RaceResult struct {
	RaceID       string       `json:"race_id"`
	RoundResults []RoundResult `json:"round_results"`
	ModelScores  []ModelScore  `json:"model_scores"`
}

// WordleConfig is the Wordle race submission.
type WordleConfig struct {
	RaceID      string
	Name        string
	Models      []ModelSpec
	Puzzle      WordlePuzzle
	IncludeUser bool
	CreatedAt   time.Time
}

// MarshalJSON renders the §6.3 wire shape for a Wordle config event: id,
// name, models, word_length, max_guesses, created_at. TargetWord is
// deliberately never part of this shape — revealing it is gated on
// include_user and handled by the caller (event.ConfigPayload.TargetWord),
// never by the puzzle itself.
func (c WordleConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		RaceID     string      `json:"id"`
		Name       string      `json:"name,omitempty"`
		Models     []ModelSpec `json:"models"`
		WordLength int         `json:"word_length"`
		MaxGuesses int         `json:"max_guesses"`
		CreatedAt  time.Time   `json:"created_at"`
	}{
		RaceID:     c.RaceID,
		Name:       c.Name,
		Models:     c.Models,
		WordLength: c.Puzzle.WordLength,
		MaxGuesses: c.Puzzle.MaxGuesses,
		CreatedAt:  c.CreatedAt,
	})
}

// WordleState is the public progress view of a running Wordle race, keyed
// by model id.
type WordleState struct {
	Status      RaceStatus                 `json:"status"`
	StartedAt   *time.Time                 `json:"started_at,omitempty"`
	CompletedAt *time.Time                 `json:"completed_at,omitempty"`
	WordLength  int                        `json:"word_length"`
	MaxGuesses  int                        `json:"max_guesses"`
	ModelStates map[string]WordleGameState `json:"model_states"`
}

// WordleRaceResult is the final Wordle outcome: the ranked per-model
// results and the winning model id, if any model solved the puzzle.
type WordleRaceResult struct {
	RaceID  string              `json:"race_id"`
	Results []WordleModelResult `json:"results"`
	Winner  *string             `json:"winner"`
}
