package race

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrWong99/wordrace/internal/adapter"
	"github.com/MrWong99/wordrace/internal/attempt"
	"github.com/MrWong99/wordrace/internal/event"
	"github.com/MrWong99/wordrace/internal/observe"
	"github.com/MrWong99/wordrace/internal/prompt"
	"github.com/MrWong99/wordrace/internal/puzzle"
)

// WordleEngine drives one Wordle race: every model plays an independent
// 6-turn game in parallel against the same target word. A WordleEngine is
// single-use: create one per race and call Run once.
type WordleEngine struct {
	cfg       puzzle.WordleConfig
	adapters  map[string]adapter.StreamingAdapter
	hub       *event.Hub
	timeoutMs int
	maxTokens int

	mu          sync.Mutex
	status      puzzle.RaceStatus
	startedAt   *time.Time
	completedAt *time.Time
	states      map[string]puzzle.WordleGameState

	endEarly chan struct{}
	endOnce  sync.Once
}

// NewWordleEngine builds a WordleEngine for cfg. adapters must have an entry
// for every model in cfg.Models, keyed by ModelID.
func NewWordleEngine(cfg puzzle.WordleConfig, adapters map[string]adapter.StreamingAdapter, hub *event.Hub, timeoutMs, maxTokens int) *WordleEngine {
	states := make(map[string]puzzle.WordleGameState, len(cfg.Models))
	for _, m := range cfg.Models {
		states[m.ID] = puzzle.WordleGameState{ModelID: m.ID}
	}
	return &WordleEngine{
		cfg:       cfg,
		adapters:  adapters,
		hub:       hub,
		timeoutMs: timeoutMs,
		maxTokens: maxTokens,
		status:    puzzle.StatusPending,
		states:    states,
		endEarly:  make(chan struct{}),
	}
}

// EndEarly cancels all in-flight adapter invocations and causes Run to
// finalize results from whatever has been recorded so far. Safe to call
// more than once and safe for concurrent use.
func (e *WordleEngine) EndEarly() {
	e.endOnce.Do(func() { close(e.endEarly) })
}

// State returns a snapshot of the race's current progress.
func (e *WordleEngine) State() puzzle.WordleState {
	e.mu.Lock()
	defer e.mu.Unlock()
	states := make(map[string]puzzle.WordleGameState, len(e.states))
	for k, v := range e.states {
		states[k] = v
	}
	return puzzle.WordleState{
		Status:      e.status,
		StartedAt:   e.startedAt,
		CompletedAt: e.completedAt,
		WordLength:  e.cfg.Puzzle.WordLength,
		MaxGuesses:  e.cfg.Puzzle.MaxGuesses,
		ModelStates: states,
	}
}

// Run executes the race to completion, via EndEarly, or until ctx is
// cancelled. It always publishes a terminal complete event before
// returning, unless no model completed even one guess, in which case the
// stream is closed silently.
func (e *WordleEngine) Run(ctx context.Context) {
	ctx, span := observe.StartSpan(ctx, "race.wordle.run")
	defer span.End()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-e.endEarly:
			cancel()
		case <-runCtx.Done():
		}
	}()

	now := time.Now()
	e.mu.Lock()
	e.status = puzzle.StatusRunning
	e.startedAt = &now
	e.mu.Unlock()

	e.hub.Publish(event.NewWordleConfig(e.cfg, e.cfg.IncludeUser))
	e.hub.Publish(event.NewWordleState(e.State()))

	var wg sync.WaitGroup
	for _, m := range e.cfg.Models {
		m := m
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.runModelGame(runCtx, m)
		}()
	}
	wg.Wait()

	anyGuesses := false
	for _, st := range e.states {
		if len(st.Guesses) > 0 {
			anyGuesses = true
			break
		}
	}
	if !anyGuesses {
		e.hub.Close()
		return
	}

	results := make([]puzzle.WordleModelResult, 0, len(e.cfg.Models))
	for _, m := range e.cfg.Models {
		st := e.states[m.ID]
		results = append(results, modelResultFromState(st))
	}
	ranked := puzzle.RankWordleResults(results)

	var winner *string
	if len(ranked) > 0 && ranked[0].Solved {
		id := ranked[0].ModelID
		winner = &id
	}

	now = time.Now()
	e.mu.Lock()
	e.status = puzzle.StatusCompleted
	e.completedAt = &now
	e.mu.Unlock()

	e.hub.Publish(event.NewWordleComplete(puzzle.WordleRaceResult{
		RaceID:  e.cfg.RaceID,
		Results: ranked,
		Winner:  winner,
	}))
}

// modelResultFromState reduces one model's final game state to its ranking
// input. A model still running when the race ended (did_not_finish) is
// treated as unsolved with whatever closeness its last guess, if any,
// established.
func modelResultFromState(st puzzle.WordleGameState) puzzle.WordleModelResult {
	r := puzzle.WordleModelResult{
		ModelID:      st.ModelID,
		Solved:       st.Solved,
		GuessCount:   len(st.Guesses),
		DidNotFinish: st.DidNotFinish,
	}
	if st.Solved {
		t := st.TimeToSolveMs
		r.TimeToSolveMs = &t
		return r
	}
	if len(st.Guesses) > 0 {
		last := st.Guesses[len(st.Guesses)-1]
		correct, present := puzzle.CountMarks(last.Feedback)
		r.CorrectLetters = correct
		r.PresentLetters = present
		r.ClosenessScore = puzzle.ClosenessScore(last.Feedback)
	}
	return r
}

// runModelGame plays one model's independent game to solved, failed, or
// ctx cancellation, publishing guess/state/model_complete events as it goes.
func (e *WordleEngine) runModelGame(ctx context.Context, model puzzle.ModelSpec) {
	state := puzzle.WordleGameState{ModelID: model.ID}
	var cumulativeE2EMs int64

	for i := 0; i < e.cfg.Puzzle.MaxGuesses; i++ {
		if ctx.Err() != nil {
			state.DidNotFinish = true
			break
		}

		e.hub.Publish(event.NewModelStart(model.ID, i))

		promptText := prompt.ForWordleGuess(model.CustomPromptTemplate, state.Guesses, e.cfg.Puzzle.WordLength)
		spec := attempt.Spec{
			RaceID:          e.cfg.RaceID,
			ClueID:          fmt.Sprintf("guess-%d", i),
			Model:           model,
			Prompt:          promptText,
			MaxOutputTokens: e.maxTokens,
			TimeoutMs:       e.timeoutMs,
			OutputRule:      puzzle.OutputPlain,
			CaseRule:        puzzle.CaseLower,
			DeclaredLength:  e.cfg.Puzzle.WordLength,
		}
		listener := &reasoningForwarder{hub: e.hub, modelID: model.ID, guessIndex: i}
		a := attempt.Run(ctx, e.adapters[model.ID], spec, listener)
		a.AttemptID = uuid.NewString()
		cumulativeE2EMs += a.E2EMs

		word := parseGuessWord(a.Output, e.cfg.Puzzle.WordLength)
		feedback := puzzle.ComputeFeedback(puzzle.WordToBytes(word), puzzle.WordToBytes(e.cfg.Puzzle.TargetWord))

		guess := puzzle.WordleGuess{Attempt: *a, Word: word, Feedback: feedback, GuessIndex: i}
		state.Guesses = append(state.Guesses, guess)

		if word == e.cfg.Puzzle.TargetWord {
			state.Solved = true
			state.SolvedAtGuess = i + 1
			state.TimeToSolveMs = cumulativeE2EMs
		} else if i == e.cfg.Puzzle.MaxGuesses-1 {
			state.Failed = true
		}

		e.setState(state)
		e.hub.Publish(event.NewGuess(guess))
		e.hub.Publish(event.NewWordleState(e.State()))

		if state.Solved || state.Failed {
			break
		}
	}

	e.setState(state)
	e.hub.Publish(event.NewModelComplete(model.ID, state))
}

func (e *WordleEngine) setState(st puzzle.WordleGameState) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.states[st.ModelID] = st
}
