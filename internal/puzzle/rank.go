package puzzle

import "sort"

// scoreEpsilon is the tolerance used when comparing avg_score for the
// purposes of ranking tie-break (§4.1, §9).
const scoreEpsilon = 0.01

// RankModelScores sorts a copy of scores by the crossword final-ranking rule
// — avg_score descending (within scoreEpsilon), then more total_correct,
// then lower median_e2e_ms, then lower e2e_variance — and assigns dense
// 1-indexed ranks by sorted position. The sort is stable, so equal-key
// inputs keep their relative input order.
func RankModelScores(scores []ModelScore) []ModelScore {
	ranked := append([]ModelScore(nil), scores...)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if diff := a.AvgScore - b.AvgScore; absF(diff) > scoreEpsilon {
			return a.AvgScore > b.AvgScore
		}
		if a.TotalCorrect != b.TotalCorrect {
			return a.TotalCorrect > b.TotalCorrect
		}
		if a.MedianE2EMs != b.MedianE2EMs {
			return a.MedianE2EMs < b.MedianE2EMs
		}
		return a.E2EVariance < b.E2EVariance
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

// RankWordleResults sorts a copy of results by the Wordle final-ranking rule
// — solved ahead of unsolved; within solved, fewer guesses then faster
// time_to_solve_ms; within unsolved, higher closeness_score then more
// guesses made — and assigns dense 1-indexed ranks by sorted position.
func RankWordleResults(results []WordleModelResult) []WordleModelResult {
	ranked := append([]WordleModelResult(nil), results...)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Solved != b.Solved {
			return a.Solved
		}
		if a.Solved {
			if a.GuessCount != b.GuessCount {
				return a.GuessCount < b.GuessCount
			}
			at, bt := timeOrMax(a.TimeToSolveMs), timeOrMax(b.TimeToSolveMs)
			return at < bt
		}
		if a.ClosenessScore != b.ClosenessScore {
			return a.ClosenessScore > b.ClosenessScore
		}
		return a.GuessCount > b.GuessCount
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

func timeOrMax(t *int64) int64 {
	if t == nil {
		return int64(^uint64(0) >> 1)
	}
	return *t
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
