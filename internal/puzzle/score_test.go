package puzzle

import "testing"

func TestNearestRankPercentile(t *testing.T) {
	tests := []struct {
		name string
		vals []int64
		p    float64
		want int64
	}{
		{"p95 of 10 sorted ints", []int64{100, 200, 300, 400, 500, 600, 700, 800, 900, 1000}, 0.95, 1000},
		{"single value any p", []int64{42}, 0.5, 42},
		{"p50 of four values", []int64{10, 20, 30, 40}, 0.5, 20},
		{"unsorted input", []int64{300, 100, 200}, 1.0, 300},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NearestRankPercentile(tt.vals, tt.p); got != tt.want {
				t.Errorf("NearestRankPercentile(%v, %v) = %d, want %d", tt.vals, tt.p, got, tt.want)
			}
		})
	}
}

func TestScoreAttempt(t *testing.T) {
	tests := []struct {
		name      string
		formatOK  bool
		correct   bool
		latencyMs int64
		minLatMs  int64
		p95LatMs  int64
		threshold int64
		want      float64
	}{
		{"wrong answer scores zero", true, false, 100, 100, 1000, 250, 0},
		{"malformed scores zero even if correct", false, true, 100, 100, 1000, 250, 0},
		{"fastest of the field gets full speed bonus plus flat bonus", true, true, 100, 100, 1000, 250, 100},
		{"slowest of the field gets base only", true, true, 1000, 100, 1000, 250, 70},
		{"mid latency outside threshold gets partial speed credit", true, true, 550, 100, 1000, 250, 85},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreAttempt(tt.formatOK, tt.correct, tt.latencyMs, tt.minLatMs, tt.p95LatMs, tt.threshold)
			if got != tt.want {
				t.Errorf("ScoreAttempt() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScoreAttempt_DegenerateLatencySpread(t *testing.T) {
	// min == p95 (single attempt, or all attempts tied) must not divide by zero.
	got := ScoreAttempt(true, true, 500, 500, 500, SpeedBonusThresholdDefault)
	if got != 70 {
		t.Errorf("ScoreAttempt() with zero spread = %v, want 70", got)
	}
}

func TestScoreClue_AssignsClueScoreInPlace(t *testing.T) {
	attempts := []*Attempt{
		{ModelID: "a", FormatOK: true, Correct: true, E2EMs: 100},
		{ModelID: "b", FormatOK: true, Correct: true, E2EMs: 500},
		{ModelID: "c", FormatOK: false, Correct: false, E2EMs: 50},
	}
	minLat, p95Lat := ScoreClue(attempts, SpeedBonusThresholdDefault)

	if minLat != 50 {
		t.Errorf("minLat = %d, want 50", minLat)
	}
	if p95Lat != 500 {
		t.Errorf("p95Lat = %d, want 500", p95Lat)
	}
	if attempts[0].ClueScore <= attempts[1].ClueScore {
		t.Errorf("faster correct attempt should outscore slower one: %v vs %v", attempts[0].ClueScore, attempts[1].ClueScore)
	}
	if attempts[2].ClueScore != 0 {
		t.Errorf("malformed attempt score = %v, want 0", attempts[2].ClueScore)
	}
}

func TestAggregateModelScore(t *testing.T) {
	ttft1, ttft2 := int64(50), int64(70)
	attempts := []*Attempt{
		{Correct: true, ClueScore: 90, E2EMs: 100, TTFTMs: &ttft1},
		{Correct: false, ClueScore: 0, E2EMs: 300, TTFTMs: &ttft2},
	}
	ms := AggregateModelScore("model-a", attempts)

	if ms.TotalAttempts != 2 {
		t.Errorf("TotalAttempts = %d, want 2", ms.TotalAttempts)
	}
	if ms.TotalCorrect != 1 {
		t.Errorf("TotalCorrect = %d, want 1", ms.TotalCorrect)
	}
	if ms.AccuracyPct != 50 {
		t.Errorf("AccuracyPct = %v, want 50", ms.AccuracyPct)
	}
	if ms.AvgScore != 45 {
		t.Errorf("AvgScore = %v, want 45", ms.AvgScore)
	}
	if ms.MedianTTFTMs == nil || *ms.MedianTTFTMs != 60 {
		t.Errorf("MedianTTFTMs = %v, want 60", ms.MedianTTFTMs)
	}
}

func TestAggregateModelScore_NoAttempts(t *testing.T) {
	ms := AggregateModelScore("model-a", nil)
	if ms.TotalAttempts != 0 || ms.AvgScore != 0 {
		t.Errorf("AggregateModelScore(nil) = %+v, want zero value", ms)
	}
}
