// Package race implements the Race Engine (C5): the crossword and Wordle
// execution loops that fan out Attempt Runner invocations across a model
// roster and publish typed progress events as they go.
package race

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/MrWong99/wordrace/internal/adapter"
	"github.com/MrWong99/wordrace/internal/attempt"
	"github.com/MrWong99/wordrace/internal/event"
	"github.com/MrWong99/wordrace/internal/observe"
	"github.com/MrWong99/wordrace/internal/prompt"
	"github.com/MrWong99/wordrace/internal/puzzle"
)

// CrosswordEngine drives one crossword race from submission to completion,
// publishing events to hub as it goes. A CrosswordEngine is single-use:
// create one per race and call Run once.
type CrosswordEngine struct {
	cfg              puzzle.RaceConfig
	adapters         map[string]adapter.StreamingAdapter
	hub              *event.Hub
	bonusThresholdMs int64

	mu    sync.Mutex
	state puzzle.RaceState
}

// NewCrosswordEngine builds a CrosswordEngine for cfg. adapters must have an
// entry for every model in cfg.Models, keyed by ModelID.
func NewCrosswordEngine(cfg puzzle.RaceConfig, adapters map[string]adapter.StreamingAdapter, hub *event.Hub, bonusThresholdMs int64) *CrosswordEngine {
	total := 0
	for _, r := range cfg.Rounds {
		total += len(r.Clues)
	}
	return &CrosswordEngine{
		cfg:              cfg,
		adapters:         adapters,
		hub:              hub,
		bonusThresholdMs: bonusThresholdMs,
		state:            puzzle.RaceState{Status: puzzle.StatusPending, TotalClues: total},
	}
}

// State returns a snapshot of the race's current progress.
func (e *CrosswordEngine) State() puzzle.RaceState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Run executes the race to completion or until ctx is cancelled. It
// publishes a terminal complete event before returning, unless ctx was
// cancelled before any attempt completed, in which case it closes the
// stream without a terminal event. Run never publishes an error event.
func (e *CrosswordEngine) Run(ctx context.Context) {
	ctx, span := observe.StartSpan(ctx, "race.crossword.run")
	defer span.End()

	now := time.Now()
	e.mu.Lock()
	e.state.Status = puzzle.StatusRunning
	e.state.StartedAt = &now
	e.mu.Unlock()

	e.hub.Publish(event.NewRaceConfig(e.cfg))
	e.hub.Publish(event.NewRaceState(e.State()))

	modelAttempts := make(map[string][]*puzzle.Attempt, len(e.cfg.Models))
	var roundResults []puzzle.RoundResult
	turn := 0

cancellableRounds:
	for _, round := range e.cfg.Rounds {
		clueResults := make([]puzzle.ClueResult, 0, len(round.Clues))
		roundScoreSums := make(map[string]float64, len(e.cfg.Models))
		roundScoreCounts := make(map[string]int, len(e.cfg.Models))

		for _, clue := range round.Clues {
			if ctx.Err() != nil {
				// Client disconnect or engine-level shutdown mid-race: stop
				// issuing new clues, but fall through to finalize whatever
				// rounds/clues already completed rather than treating
				// cancellation as a fatal error.
				break cancellableRounds
			}

			attempts := e.runClue(ctx, round, clue, turn)
			turn++

			attemptPtrs := make([]*puzzle.Attempt, len(attempts))
			for i := range attempts {
				attemptPtrs[i] = &attempts[i]
			}
			puzzle.ScoreClue(attemptPtrs, e.bonusThresholdMs)

			for i := range attempts {
				a := &attempts[i]
				modelAttempts[a.ModelID] = append(modelAttempts[a.ModelID], a)
				roundScoreSums[a.ModelID] += a.ClueScore
				roundScoreCounts[a.ModelID]++
			}

			e.hub.Publish(event.NewClue(clue.ClueID, attempts))
			e.bumpProgress(round.RoundID, clue.ClueID)
			e.hub.Publish(event.NewRaceState(e.State()))

			clueResults = append(clueResults, puzzle.ClueResult{ClueID: clue.ClueID, Attempts: attempts})
		}

		modelScores := make(map[string]float64, len(roundScoreSums))
		for modelID, sum := range roundScoreSums {
			modelScores[modelID] = sum / float64(roundScoreCounts[modelID])
		}
		rr := puzzle.RoundResult{RoundID: round.RoundID, ClueResults: clueResults, ModelScores: modelScores}
		roundResults = append(roundResults, rr)
		e.hub.Publish(event.NewRound(rr))
	}

	if ctx.Err() != nil && len(modelAttempts) == 0 {
		// Cancelled before a single attempt completed: close without a
		// terminal event, per the "closed silently" branch of the
		// cancellation policy.
		e.hub.Close()
		return
	}

	scores := make([]puzzle.ModelScore, 0, len(e.cfg.Models))
	for _, m := range e.cfg.Models {
		attempts := make([]*puzzle.Attempt, len(modelAttempts[m.ID]))
		copy(attempts, modelAttempts[m.ID])
		scores = append(scores, puzzle.AggregateModelScore(m.ID, attempts))
	}
	ranked := puzzle.RankModelScores(scores)

	e.complete()
	e.hub.Publish(event.NewRaceComplete(puzzle.RaceResult{
		RaceID:       e.cfg.RaceID,
		RoundResults: roundResults,
		ModelScores:  ranked,
	}))
}

// runClue fans one clue out to every model in parallel and waits for all to
// finish. turn identifies this clue's position across the whole race, reused
// as the generic "guess_index" in model_start/reasoning_delta events so
// reasoning from different clues never gets diffed against each other.
func (e *CrosswordEngine) runClue(ctx context.Context, round puzzle.Round, clue puzzle.Clue, turn int) []puzzle.Attempt {
	promptText := prompt.ForClue(clue, round.OutputRule)
	attempts := make([]puzzle.Attempt, len(e.cfg.Models))

	eg, egCtx := errgroup.WithContext(ctx)
	for i, m := range e.cfg.Models {
		i, m := i, m
		eg.Go(func() error {
			e.hub.Publish(event.NewModelStart(m.ID, turn))
			spec := attempt.Spec{
				RaceID:          e.cfg.RaceID,
				RoundID:         round.RoundID,
				ClueID:          clue.ClueID,
				Model:           m,
				Prompt:          promptText,
				MaxOutputTokens: round.MaxTokens,
				TimeoutMs:       round.TimeLimitMs,
				OutputRule:      round.OutputRule,
				CaseRule:        clue.CaseRule,
				AllowHyphen:     clue.AllowHyphen,
				DeclaredLength:  clue.Length,
				CanonicalAnswer: clue.Answer,
			}
			listener := &reasoningForwarder{hub: e.hub, modelID: m.ID, guessIndex: turn}
			a := attempt.Run(egCtx, e.adapters[m.ID], spec, listener)
			a.AttemptID = uuid.NewString()
			attempts[i] = *a
			return nil
		})
	}
	_ = eg.Wait() // Attempt Runner never returns an error from its goroutine

	return attempts
}

func (e *CrosswordEngine) bumpProgress(roundID, clueID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.CompletedClues++
	e.state.CurrentRoundID = roundID
	e.state.CurrentClueID = clueID
	if e.state.TotalClues > 0 {
		e.state.ProgressPct = int(math.Round(100 * float64(e.state.CompletedClues) / float64(e.state.TotalClues)))
	}
}

func (e *CrosswordEngine) complete() {
	now := time.Now()
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.Status = puzzle.StatusCompleted
	e.state.CompletedAt = &now
}

// Fail transitions the race to the error status and publishes a terminal
// error event, for invariant-level faults outside the normal
// attempt-failure paths. Run neither calls it nor recovers panics; plain
// client-disconnect cancellation is handled inside Run by finalizing with
// whatever partial results exist.
func (e *CrosswordEngine) Fail(err error) {
	now := time.Now()
	e.mu.Lock()
	e.state.Status = puzzle.StatusError
	e.state.CompletedAt = &now
	e.mu.Unlock()
	e.hub.Publish(event.NewError("race failed", err.Error()))
}

// reasoningForwarder adapts attempt.Listener to publish reasoning_delta
// events; partial text deltas are not part of the wire contract and are
// dropped.
type reasoningForwarder struct {
	hub        *event.Hub
	modelID    string
	guessIndex int
}

func (f *reasoningForwarder) OnReasoningDelta(text string) {
	f.hub.Publish(event.NewReasoningDelta(f.modelID, f.guessIndex, text))
}

func (f *reasoningForwarder) OnTextDelta(string) {}

var _ attempt.Listener = (*reasoningForwarder)(nil)
