package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/MrWong99/wordrace/internal/event"
)

// writeSSEHeaders sets the headers a text/event-stream response requires and
// disables any intermediary buffering, matching the convention every SSE
// producer in the ecosystem uses (proxies otherwise batch small writes).
func writeSSEHeaders(w http.ResponseWriter) (http.Flusher, bool) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	flusher, ok := w.(http.Flusher)
	return flusher, ok
}

// pumpEvents drains h's channel to w as §6.3 frames (`data: <json>\n\n`)
// until the channel closes or the request context is cancelled (client
// disconnect). It returns once the stream has ended either way.
func pumpEvents(w http.ResponseWriter, flusher http.Flusher, h *event.Hub, done <-chan struct{}) {
	for {
		select {
		case ev, ok := <-h.Events():
			if !ok {
				return
			}
			if err := writeFrame(w, ev); err != nil {
				return
			}
			flusher.Flush()
		case <-done:
			return
		}
	}
}

func writeFrame(w http.ResponseWriter, ev event.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if _, err := w.Write([]byte("data: ")); err != nil {
		return err
	}
	if _, err := w.Write(payload); err != nil {
		return err
	}
	_, err = w.Write([]byte("\n\n"))
	return err
}

// writeInvalidRequest responds with a plain JSON error before any race has
// started, per §7: submission validation failures never enter the event
// stream, they short-circuit the HTTP request instead.
func writeInvalidRequest(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_request", "details": err.Error()})
}
