package race

import (
	"context"
	"testing"

	"github.com/MrWong99/wordrace/internal/adapter"
	"github.com/MrWong99/wordrace/internal/adapter/mock"
	"github.com/MrWong99/wordrace/internal/event"
	"github.com/MrWong99/wordrace/internal/puzzle"
)

func wordleConfig() puzzle.WordleConfig {
	return puzzle.WordleConfig{
		RaceID: "race-1",
		Models: []puzzle.ModelSpec{{ID: "sharp"}, {ID: "slow"}},
		Puzzle: puzzle.NewWordlePuzzle("crane"),
	}
}

func TestWordleEngine_ModelSolvesImmediately(t *testing.T) {
	adapters := map[string]adapter.StreamingAdapter{
		"sharp": &mock.Adapter{Deltas: []adapter.Delta{{Kind: adapter.DeltaText, Text: "crane"}}},
		"slow":  &repeatingGuesser{word: "slate"},
	}

	cfg := wordleConfig()
	hub := event.NewHub(128)
	eng := NewWordleEngine(cfg, adapters, hub, 0, 10)

	go eng.Run(context.Background())
	events := drainEvents(t, hub)

	var complete *event.CompletePayload
	guessCount := map[string]int{}
	for _, ev := range events {
		if ev.Kind == event.KindGuess {
			guessCount[ev.Guess.Guess.Attempt.ModelID]++
		}
		if ev.Kind == event.KindComplete {
			complete = ev.Complete
		}
	}

	if complete == nil || complete.Wordle == nil {
		t.Fatal("expected a wordle complete event")
	}
	if complete.Wordle.Winner == nil || *complete.Wordle.Winner != "sharp" {
		t.Errorf("winner = %v, want sharp", complete.Wordle.Winner)
	}
	if guessCount["sharp"] != 1 {
		t.Errorf("sharp made %d guesses, want 1", guessCount["sharp"])
	}
	if guessCount["slow"] != 6 {
		t.Errorf("slow made %d guesses, want 6 (exhausted max guesses)", guessCount["slow"])
	}

	var sharpResult, slowResult *puzzle.WordleModelResult
	for i := range complete.Wordle.Results {
		r := &complete.Wordle.Results[i]
		if r.ModelID == "sharp" {
			sharpResult = r
		}
		if r.ModelID == "slow" {
			slowResult = r
		}
	}
	if sharpResult == nil || !sharpResult.Solved {
		t.Errorf("sharp result = %+v, want solved", sharpResult)
	}
	if slowResult == nil || slowResult.Solved {
		t.Errorf("slow result = %+v, want unsolved", slowResult)
	}
	if sharpResult.Rank != 1 {
		t.Errorf("sharp rank = %d, want 1", sharpResult.Rank)
	}
}

func TestWordleEngine_EndEarlyMarksDidNotFinish(t *testing.T) {
	started := make(chan struct{})
	blocked := make(chan struct{})
	adapters := map[string]adapter.StreamingAdapter{
		"sharp": &mock.Adapter{
			Deltas: []adapter.Delta{{Kind: adapter.DeltaText, Text: "plane"}},
			SendDelay: func(i int) <-chan struct{} {
				close(started)
				return blocked
			},
		},
	}

	cfg := wordleConfig()
	cfg.Models = []puzzle.ModelSpec{{ID: "sharp"}}
	hub := event.NewHub(32)
	eng := NewWordleEngine(cfg, adapters, hub, 0, 10)

	done := make(chan struct{})
	go func() {
		eng.Run(context.Background())
		close(done)
	}()

	<-started
	eng.EndEarly()
	<-done

	state := eng.State().ModelStates["sharp"]
	if !state.DidNotFinish {
		t.Errorf("state = %+v, want DidNotFinish true", state)
	}
}

// repeatingGuesser always answers the same wrong word, used to drive a
// model through all 6 guesses without solving.
type repeatingGuesser struct{ word string }

func (r *repeatingGuesser) Stream(ctx context.Context, req adapter.Request) (<-chan adapter.Delta, error) {
	ch := make(chan adapter.Delta, 1)
	ch <- adapter.Delta{Kind: adapter.DeltaText, Text: r.word}
	close(ch)
	return ch, nil
}
