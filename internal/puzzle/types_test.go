package puzzle

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestAttempt_MarshalJSON_UsesSnakeCaseKeys(t *testing.T) {
	a := Attempt{
		AttemptID:  "a1",
		RaceID:     "r1",
		ClueID:     "c1",
		ModelID:    "m1",
		TRequest:   time.Unix(0, 0),
		TLast:      time.Unix(1, 0),
		E2EMs:      1200,
		Output:     "raw",
		Normalized: "norm",
		FormatOK:   true,
		Correct:    true,
		ClueScore:  91.5,
	}
	b, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for _, key := range []string{
		`"attempt_id"`, `"race_id"`, `"clue_id"`, `"model_id"`,
		`"t_request"`, `"t_last"`, `"e2e_ms"`, `"format_ok"`,
		`"clue_score"`, `"normalized"`,
	} {
		if !strings.Contains(string(b), key) {
			t.Errorf("marshaled Attempt missing wire key %s: %s", key, b)
		}
	}
	for _, goName := range []string{`"AttemptID"`, `"ClueScore"`, `"FormatOK"`} {
		if strings.Contains(string(b), goName) {
			t.Errorf("marshaled Attempt leaked Go field name %s: %s", goName, b)
		}
	}
}

func TestModelSpec_MarshalJSON_FlattensThinking(t *testing.T) {
	spec := ModelSpec{
		ID:          "m1",
		EndpointRef: "gpt-4o-mini",
		Thinking:    ThinkingMode{Enabled: true, Level: ThinkingHigh},
	}
	b, err := json.Marshal(spec)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for _, key := range []string{`"thinking_enabled":true`, `"thinking_level":"high"`, `"endpoint_ref"`} {
		if !strings.Contains(string(b), key) {
			t.Errorf("marshaled ModelSpec missing %s: %s", key, b)
		}
	}
	if strings.Contains(string(b), `"thinking":`) {
		t.Errorf("marshaled ModelSpec should not nest a thinking object: %s", b)
	}

	var back ModelSpec
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back != spec {
		t.Errorf("round-trip = %+v, want %+v", back, spec)
	}
}

func TestWordleConfig_MarshalJSON_OmitsTargetWord(t *testing.T) {
	cfg := WordleConfig{
		RaceID: "r1",
		Models: []ModelSpec{{ID: "m1", EndpointRef: "gpt-4o-mini"}},
		Puzzle: NewWordlePuzzle("crane"),
	}
	b, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if strings.Contains(string(b), "crane") {
		t.Errorf("WordleConfig must never leak the target word on the wire: %s", b)
	}
	for _, key := range []string{`"word_length":5`, `"max_guesses":6`, `"id":"r1"`} {
		if !strings.Contains(string(b), key) {
			t.Errorf("marshaled WordleConfig missing %s: %s", key, b)
		}
	}
}

func TestRaceConfig_MarshalJSON_UsesSnakeCaseKeys(t *testing.T) {
	cfg := RaceConfig{
		RaceID: "r1",
		Models: []ModelSpec{{ID: "m1"}},
		Rounds: []Round{{RoundID: "rnd1", OutputRule: OutputJSON}},
	}
	b, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for _, key := range []string{`"id":"r1"`, `"rounds"`, `"round_id":"rnd1"`, `"output_rule":"json"`} {
		if !strings.Contains(string(b), key) {
			t.Errorf("marshaled RaceConfig missing %s: %s", key, b)
		}
	}
}
