package puzzle

// ComputeFeedback scores a five-letter guess against target using the
// standard two-pass duplicate-letter-safe Wordle algorithm (§4.6): greens
// are claimed first, then yellows are assigned against whatever target
// letter counts remain, so a guess can never earn more yellows for a letter
// than the target actually has left over after green matches.
//
// guess and target must each have length 5; callers validate this before
// calling (the Wordle engine always compares two five-letter normalized
// words).
func ComputeFeedback(guess, target [5]byte) Feedback {
	var fb Feedback
	var remaining [26]int

	for i := 0; i < 5; i++ {
		if guess[i] == target[i] {
			fb[i] = MarkCorrect
		} else {
			remaining[target[i]-'a']++
		}
	}

	for i := 0; i < 5; i++ {
		if fb[i] == MarkCorrect {
			continue
		}
		idx := guess[i] - 'a'
		if remaining[idx] > 0 {
			fb[i] = MarkPresent
			remaining[idx]--
		} else {
			fb[i] = MarkAbsent
		}
	}

	return fb
}

// ClosenessScore weights correct-position letters above present-but-misplaced
// ones, giving a single comparable number for ranking models that never
// solved a Wordle puzzle (§4.1, §9): closeness = 3*count(correct) +
// 1*count(present).
func ClosenessScore(fb Feedback) int {
	var score int
	for _, m := range fb {
		switch m {
		case MarkCorrect:
			score += 3
		case MarkPresent:
			score += 1
		}
	}
	return score
}

// CountMarks tallies how many letters in fb hold each of the two positive
// marks, used to populate [WordleModelResult].CorrectLetters and
// PresentLetters.
func CountMarks(fb Feedback) (correct, present int) {
	for _, m := range fb {
		switch m {
		case MarkCorrect:
			correct++
		case MarkPresent:
			present++
		}
	}
	return correct, present
}

// IsSolved reports whether fb represents a fully correct guess.
func IsSolved(fb Feedback) bool {
	for _, m := range fb {
		if m != MarkCorrect {
			return false
		}
	}
	return true
}

// WordToBytes converts a normalized five-letter lowercase word into the
// fixed-size byte array [ComputeFeedback] operates on. word must already be
// five bytes of 'a'-'z'; callers validate length and alphabet before
// scoring a guess.
func WordToBytes(word string) [5]byte {
	var b [5]byte
	copy(b[:], word)
	return b
}
