package puzzle

import "testing"

func TestComputeFeedback(t *testing.T) {
	tests := []struct {
		name   string
		guess  string
		target string
		want   Feedback
	}{
		{
			name:   "exact match all correct",
			guess:  "crane",
			target: "crane",
			want:   Feedback{MarkCorrect, MarkCorrect, MarkCorrect, MarkCorrect, MarkCorrect},
		},
		{
			name:   "no overlap all absent",
			guess:  "fight",
			target: "zebra",
			want:   Feedback{MarkAbsent, MarkAbsent, MarkAbsent, MarkAbsent, MarkAbsent},
		},
		{
			name:   "duplicate guess letter one unmatched target occurrence",
			guess:  "sissy",
			target: "chess",
			// target has 2 's', guess has s at 0,2,3.
			// pass1: only idx3 is correct, leaving one unmatched 's' (idx4). target=c h e s s
			// idx0 s vs c: no match, idx1 i vs h no, idx2 s vs e no, idx3 s vs s YES correct, idx4 y vs s no
			want: Feedback{MarkPresent, MarkAbsent, MarkAbsent, MarkCorrect, MarkAbsent},
		},
		{
			name:   "green consumes the only matching target letter",
			guess:  "allot",
			target: "igloo",
			// target i g l o o, guess a l l o t
			// pass1 correct: idx2 l vs l -> correct, idx3 o vs o -> correct. others: idx0 a vs i no, idx1 l vs g no, idx4 t vs o no
			// remaining counts after removing the correct 'l' and 'o': i:1 g:1 o:1(one o left at idx4)
			// pass2: idx0 a: not in remaining -> absent
			// idx1 l: remaining l=0 -> absent
			// idx4 t: not in remaining -> absent
			want: Feedback{MarkAbsent, MarkAbsent, MarkCorrect, MarkCorrect, MarkAbsent},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeFeedback(WordToBytes(tt.guess), WordToBytes(tt.target))
			if got != tt.want {
				t.Errorf("ComputeFeedback(%q, %q) = %v, want %v", tt.guess, tt.target, got, tt.want)
			}
		})
	}
}

func TestClosenessScore(t *testing.T) {
	tests := []struct {
		name string
		fb   Feedback
		want int
	}{
		{"all correct", Feedback{MarkCorrect, MarkCorrect, MarkCorrect, MarkCorrect, MarkCorrect}, 15},
		{"all absent", Feedback{MarkAbsent, MarkAbsent, MarkAbsent, MarkAbsent, MarkAbsent}, 0},
		{"mixed", Feedback{MarkCorrect, MarkPresent, MarkAbsent, MarkAbsent, MarkPresent}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClosenessScore(tt.fb); got != tt.want {
				t.Errorf("ClosenessScore(%v) = %d, want %d", tt.fb, got, tt.want)
			}
		})
	}
}

func TestCountMarks(t *testing.T) {
	fb := Feedback{MarkCorrect, MarkCorrect, MarkPresent, MarkAbsent, MarkAbsent}
	correct, present := CountMarks(fb)
	if correct != 2 || present != 1 {
		t.Errorf("CountMarks() = (%d, %d), want (2, 1)", correct, present)
	}
}

func TestIsSolved(t *testing.T) {
	solved := Feedback{MarkCorrect, MarkCorrect, MarkCorrect, MarkCorrect, MarkCorrect}
	if !IsSolved(solved) {
		t.Error("expected solved feedback to report solved")
	}
	notSolved := Feedback{MarkCorrect, MarkCorrect, MarkCorrect, MarkCorrect, MarkPresent}
	if IsSolved(notSolved) {
		t.Error("expected one non-correct mark to report not solved")
	}
}
