package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MrWong99/wordrace/internal/config"
)

func testServer() *Server {
	cfg := &config.Config{
		Race: config.RaceConfig{
			DefaultMaxTokensCrossword: 16,
			DefaultTimeoutMsCrossword: 4000,
			DefaultMaxTokensWordle:    10,
			DefaultTimeoutMsWordle:    10000,
			SpeedBonusThresholdMs:     250,
		},
		Models: []config.ModelEntry{
			{ID: "m1", Provider: "openai", EndpointRef: "gpt-4o-mini", APIKey: "test-key"},
		},
		Wordlist: config.WordlistConfig{Words: []string{"crane"}},
	}
	return New(cfg)
}

func TestHandleRaceStream_EmptyModelsRejected(t *testing.T) {
	s := testServer()
	req := httptest.NewRequest(http.MethodPost, "/race/stream", strings.NewReader(`{"models":[],"rounds":[]}`))
	w := httptest.NewRecorder()

	s.handleRaceStream(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestHandleRaceStream_MalformedJSONRejected(t *testing.T) {
	s := testServer()
	req := httptest.NewRequest(http.MethodPost, "/race/stream", strings.NewReader(`not json`))
	w := httptest.NewRecorder()

	s.handleRaceStream(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestHandleRaceStream_EmptyRoundsRejected(t *testing.T) {
	s := testServer()
	body := `{"models":["m1"],"rounds":[]}`
	req := httptest.NewRequest(http.MethodPost, "/race/stream", strings.NewReader(body))
	w := httptest.NewRecorder()

	s.handleRaceStream(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestHandleWordleStream_InvalidTargetWordLengthRejected(t *testing.T) {
	s := testServer()
	body := `{"models":["m1"],"target_word":"ab"}`
	req := httptest.NewRequest(http.MethodPost, "/wordle/stream", strings.NewReader(body))
	w := httptest.NewRecorder()

	s.handleWordleStream(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestHandleWordleStream_UnknownModelRejected(t *testing.T) {
	s := testServer()
	body := `{"models":["ghost"]}`
	req := httptest.NewRequest(http.MethodPost, "/wordle/stream", strings.NewReader(body))
	w := httptest.NewRecorder()

	s.handleWordleStream(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
