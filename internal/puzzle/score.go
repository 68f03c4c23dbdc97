package puzzle

import "math"

// NearestRankPercentile returns the ceil(p*n)-th smallest value (1-indexed)
// of latenciesMs, clamped to [1, n]. p is a fraction in (0, 1], e.g. 0.95
// for p95. latenciesMs must be non-empty; callers guarantee this since a
// clue always has at least one attempt.
func NearestRankPercentile(latenciesMs []int64, p float64) int64 {
	sorted := append([]int64(nil), latenciesMs...)
	insertionSortInt64(sorted)

	n := len(sorted)
	rank := int(math.Ceil(p * float64(n)))
	if rank < 1 {
		rank = 1
	}
	if rank > n {
		rank = n
	}
	return sorted[rank-1]
}

// insertionSortInt64 is used instead of sort.Slice for the tiny (typically
// <=8 element) per-clue latency samples the engine computes percentiles
// over; avoids pulling in an interface-based comparator for a handful of ints.
func insertionSortInt64(s []int64) {
	for i := 1; i < len(s); i++ {
		v := s[i]
		j := i - 1
		for j >= 0 && s[j] > v {
			s[j+1] = s[j]
			j--
		}
		s[j+1] = v
	}
}

// SpeedBonusThresholdDefault is the default speed_bonus_threshold_ms (§6.4).
const SpeedBonusThresholdDefault int64 = 250

// ScoreAttempt computes a single attempt's 0-100 clue score given the clue's
// min and p95 latency across all models, and the speed bonus threshold.
//
// A wrong or malformed answer scores 0 regardless of latency. Otherwise the
// accuracy base (70) dominates, a bounded relative speed reward contributes
// up to 30, and a flat +2 rewards latencies under the bonus threshold. The
// total is capped at 100.
func ScoreAttempt(formatOK, correct bool, latencyMs, minLatMs, p95LatMs, bonusThresholdMs int64) float64 {
	if !formatOK || !correct {
		return 0
	}

	denom := p95LatMs - minLatMs
	if denom < 1 {
		denom = 1
	}
	speedNorm := float64(p95LatMs-latencyMs) / float64(denom)
	speedNorm = clamp01(speedNorm)

	score := 70 + 30*speedNorm
	if latencyMs < bonusThresholdMs {
		score += 2
	}
	if score > 100 {
		score = 100
	}
	return score
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ScoreClue computes min/p95 latency across attempts and assigns ClueScore
// to each attempt in place. attempts must all belong to the same clue and
// must be non-empty.
func ScoreClue(attempts []*Attempt, bonusThresholdMs int64) (minLatMs, p95LatMs int64) {
	latencies := make([]int64, len(attempts))
	for i, a := range attempts {
		latencies[i] = a.E2EMs
	}
	minLatMs = latencies[0]
	for _, l := range latencies[1:] {
		if l < minLatMs {
			minLatMs = l
		}
	}
	p95LatMs = NearestRankPercentile(latencies, 0.95)

	for _, a := range attempts {
		a.ClueScore = ScoreAttempt(a.FormatOK, a.Correct, a.E2EMs, minLatMs, p95LatMs, bonusThresholdMs)
	}
	return minLatMs, p95LatMs
}

// median returns the median of a non-empty slice of float64 without
// mutating the input.
func median(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	for i := 1; i < len(sorted); i++ {
		v := sorted[i]
		j := i - 1
		for j >= 0 && sorted[j] > v {
			sorted[j+1] = sorted[j]
			j--
		}
		sorted[j+1] = v
	}
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// variance returns the population variance of values around mean.
func variance(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return sum / float64(len(values))
}

// AggregateModelScore builds a [ModelScore] from one model's attempts across
// every clue it answered in a race.
func AggregateModelScore(modelID string, attempts []*Attempt) ModelScore {
	ms := ModelScore{ModelID: modelID, TotalAttempts: len(attempts)}
	if len(attempts) == 0 {
		return ms
	}

	e2es := make([]float64, len(attempts))
	var ttfts []float64
	var scoreSum float64

	for i, a := range attempts {
		e2es[i] = float64(a.E2EMs)
		if a.Correct {
			ms.TotalCorrect++
		}
		scoreSum += a.ClueScore
		if a.TTFTMs != nil {
			ttfts = append(ttfts, float64(*a.TTFTMs))
		}
	}

	ms.AccuracyPct = 100 * float64(ms.TotalCorrect) / float64(ms.TotalAttempts)
	ms.AvgScore = scoreSum / float64(ms.TotalAttempts)
	ms.MedianE2EMs = median(e2es)

	meanE2E := sum(e2es) / float64(len(e2es))
	ms.E2EVariance = variance(e2es, meanE2E)

	if len(ttfts) > 0 {
		mt := median(ttfts)
		ms.MedianTTFTMs = &mt
	}

	return ms
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}
