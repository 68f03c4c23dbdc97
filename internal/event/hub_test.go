package event

import (
	"testing"
)

func TestHub_PublishAndDrain(t *testing.T) {
	h := NewHub(4)
	h.Publish(NewModelStart("model-a", 0))
	h.Publish(NewError("boom", ""))

	var got []Event
	for ev := range h.Events() {
		got = append(got, ev)
	}
	if len(got) != 2 {
		t.Fatalf("got %d events, want 2", len(got))
	}
	if got[0].Kind != KindModelStart {
		t.Errorf("first event kind = %q, want %q", got[0].Kind, KindModelStart)
	}
	if got[1].Kind != KindError || got[1].ErrorPayload == nil || got[1].ErrorPayload.Error != "boom" {
		t.Errorf("second event = %+v, want error event with message %q", got[1], "boom")
	}
}

func TestHub_ClosesAfterTerminalEvent(t *testing.T) {
	h := NewHub(4)
	h.Publish(NewModelStart("model-a", 0))
	h.Publish(NewError("boom", ""))

	var count int
	for range h.Events() {
		count++
	}
	if count != 2 {
		t.Errorf("drained %d events, want 2", count)
	}
	if _, ok := <-h.Events(); ok {
		t.Error("expected channel to be closed after terminal event")
	}
}

func TestHub_CloseWithoutTerminalEvent(t *testing.T) {
	h := NewHub(1)
	h.Publish(NewModelStart("model-a", 0))
	h.Close()

	<-h.Events() // the buffered model_start event
	_, ok := <-h.Events()
	if ok {
		t.Error("expected channel closed after explicit Close")
	}
}

func TestSuffixTracker_DiffsIncrementally(t *testing.T) {
	var tr suffixTracker

	first := tr.diff("model-a", 0, "Thinking")
	if first != "Thinking" {
		t.Errorf("first diff = %q, want %q", first, "Thinking")
	}

	second := tr.diff("model-a", 0, "Thinking about letters")
	if second != " about letters" {
		t.Errorf("second diff = %q, want %q", second, " about letters")
	}
}

func TestSuffixTracker_IndependentPerGuessIndex(t *testing.T) {
	var tr suffixTracker
	tr.diff("model-a", 0, "first guess reasoning")
	second := tr.diff("model-a", 1, "second guess reasoning")
	if second != "second guess reasoning" {
		t.Errorf("diff for new guess_index = %q, want full text", second)
	}
}

func TestSuffixTracker_DivergingChunkReturnsWholeText(t *testing.T) {
	var tr suffixTracker
	tr.diff("model-a", 0, "abc")
	got := tr.diff("model-a", 0, "xyz")
	if got != "xyz" {
		t.Errorf("diverging diff = %q, want %q", got, "xyz")
	}
}

func TestHub_ReasoningDeltaEventIsDiffedOnPublish(t *testing.T) {
	h := NewHub(4)
	h.Publish(NewReasoningDelta("model-a", 0, "Thinking"))
	h.Publish(NewReasoningDelta("model-a", 0, "Thinking hard"))
	h.Publish(NewError("done", ""))

	var deltas []string
	for ev := range h.Events() {
		if ev.Kind == KindReasoningDelta {
			deltas = append(deltas, ev.ReasoningDelta.Delta)
		}
	}
	if len(deltas) != 2 || deltas[0] != "Thinking" || deltas[1] != " hard" {
		t.Errorf("deltas = %v, want [\"Thinking\", \" hard\"]", deltas)
	}
}
