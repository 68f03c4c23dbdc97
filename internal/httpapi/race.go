package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/MrWong99/wordrace/internal/event"
	"github.com/MrWong99/wordrace/internal/observe"
	"github.com/MrWong99/wordrace/internal/puzzle"
	"github.com/MrWong99/wordrace/internal/race"
)

type errRequired string

func (e errRequired) Error() string { return string(e) }

var errEmptyRounds = errRequired("rounds must not be empty")

func (s *Server) handleRaceStream(w http.ResponseWriter, r *http.Request) {
	var req raceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequest(w, err)
		return
	}

	modelReqs, err := parseModels(req.Models)
	if err != nil {
		writeInvalidRequest(w, err)
		return
	}
	specs, adapters, err := resolveModels(s.registry, modelReqs, s.race.PublicMaxModels)
	if err != nil {
		writeInvalidRequest(w, err)
		return
	}
	rounds, err := buildRounds(req.Rounds, s.race.DefaultMaxTokensCrossword, s.race.DefaultTimeoutMsCrossword)
	if err != nil {
		writeInvalidRequest(w, err)
		return
	}
	if len(rounds) == 0 {
		writeInvalidRequest(w, errEmptyRounds)
		return
	}

	flusher, ok := writeSSEHeaders(w)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	cfg := puzzle.RaceConfig{
		RaceID:    newID(),
		Name:      req.Name,
		Models:    specs,
		Rounds:    rounds,
		CreatedAt: time.Now(),
	}
	logRequest(r, cfg.RaceID, len(specs))
	observe.DefaultMetrics().ActiveRaces.Add(r.Context(), 1)
	defer observe.DefaultMetrics().ActiveRaces.Add(r.Context(), -1)

	hub := event.NewHub(eventBufferSize)
	eng := race.NewCrosswordEngine(cfg, adapters, hub, s.race.SpeedBonusThresholdMs)

	go eng.Run(r.Context())
	pumpEvents(w, flusher, hub, r.Context().Done())
}

func buildRounds(reqs []roundRequest, defaultMaxTokens, defaultTimeoutMs int) ([]puzzle.Round, error) {
	rounds := make([]puzzle.Round, 0, len(reqs))
	for i, rr := range reqs {
		roundID := rr.RoundID
		if roundID == "" {
			roundID = newID()
		}
		outputRule := puzzle.OutputRule(rr.OutputRule)
		if outputRule == "" {
			outputRule = puzzle.OutputJSON
		}
		mt := rr.MaxTokens
		if mt == 0 {
			mt = defaultMaxTokens
		}
		tl := rr.TimeLimitMs
		if tl == 0 {
			tl = defaultTimeoutMs
		}

		clues := make([]puzzle.Clue, 0, len(rr.Clues))
		for j, cr := range rr.Clues {
			if cr.Prompt == "" || cr.Answer == "" || cr.Length == 0 {
				return nil, errRequired("rounds[" + strconv.Itoa(i) + "].clues[" + strconv.Itoa(j) + "]: prompt, answer, and length are required")
			}
			clueID := cr.ClueID
			if clueID == "" {
				clueID = newID()
			}
			caseRule := puzzle.CaseRule(cr.CaseRule)
			if caseRule == "" {
				caseRule = puzzle.CaseLower
			}
			clues = append(clues, puzzle.Clue{
				ClueID: clueID, Prompt: cr.Prompt, Answer: cr.Answer, Length: cr.Length,
				AllowHyphen: cr.AllowHyphen, CaseRule: caseRule,
			})
		}

		rounds = append(rounds, puzzle.Round{
			RoundID: roundID, Clues: clues, OutputRule: outputRule, MaxTokens: mt, TimeLimitMs: tl,
		})
	}
	return rounds, nil
}
