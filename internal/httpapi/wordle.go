package httpapi

import (
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"github.com/MrWong99/wordrace/internal/event"
	"github.com/MrWong99/wordrace/internal/observe"
	"github.com/MrWong99/wordrace/internal/puzzle"
	"github.com/MrWong99/wordrace/internal/race"
)

func (s *Server) handleWordleStream(w http.ResponseWriter, r *http.Request) {
	var req wordleRequest
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

	target := strings.ToLower(strings.TrimSpace(req.TargetWord))
	if target == "" {
		target, err = s.randomWord()
		if err != nil {
			writeInvalidRequest(w, err)
			return
		}
	} else if len(target) != 5 || strings.Trim(target, "abcdefghijklmnopqrstuvwxyz") != "" {
		writeInvalidRequest(w, errRequired("target_word must be exactly 5 letters"))
		return
	}

	flusher, ok := writeSSEHeaders(w)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	cfg := puzzle.WordleConfig{
		RaceID:      newID(),
		Name:        req.Name,
		Models:      specs,
		Puzzle:      puzzle.NewWordlePuzzle(target),
		IncludeUser: req.IncludeUser,
		CreatedAt:   time.Now(),
	}
	logRequest(r, cfg.RaceID, len(specs))
	observe.DefaultMetrics().ActiveRaces.Add(r.Context(), 1)
	defer observe.DefaultMetrics().ActiveRaces.Add(r.Context(), -1)

	hub := event.NewHub(eventBufferSize)
	eng := race.NewWordleEngine(cfg, adapters, hub, s.race.DefaultTimeoutMsWordle, s.race.DefaultMaxTokensWordle)

	go eng.Run(r.Context())
	pumpEvents(w, flusher, hub, r.Context().Done())
}

func (s *Server) randomWord() (string, error) {
	if len(s.wordlist) == 0 {
		return "", errRequired("no target_word supplied and the server has no default wordlist configured")
	}
	return s.wordlist[rand.IntN(len(s.wordlist))], nil
}
