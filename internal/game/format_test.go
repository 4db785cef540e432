package game

import (
	"testing"

	"paraboloid-guesser/pkg/vmath"
)

func TestFormatCoord(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1.5, "1.5"},
		{-2.125, "-2.125"},
		{3, "3"},
		{0, "0"},
	}
	for _, tt := range tests {
		if got := FormatCoord(tt.in); got != tt.want {
			t.Errorf("FormatCoord(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRoundInfoText(t *testing.T) {
	info := RoundInfo{Round: 2, Rounds: 3, TargetX: -1.25, TargetY: 4}
	if got := info.TargetText(); got != "x = -1.25, y = 4" {
		t.Fatalf("TargetText = %q", got)
	}
	if got := info.Title(); got != "Round 2 of 3" {
		t.Fatalf("Title = %q", got)
	}
}

func TestResultText(t *testing.T) {
	truth := vmath.V3(1, 2, 3)
	guess := vmath.V3(1, 2, 4)
	r := RoundResult{
		Round:  3,
		Rounds: 3,
		Guess:  guess,
		Truth:  truth,
		Score:  ScoreGuess(truth, guess, 5),
		Total:  71.34,
		Final:  true,
	}
	txt := r.Text()
	want := ResultText{
		Title:     "Round 3 of 3",
		Distance:  "Distance: 1.000 units",
		Points:    "31.4 / 33.3",
		Guess:     "x=1.000, y=2.000, z=4.000",
		Truth:     "x=1, y=2, z=3.000000",
		Total:     "Total Score: 71.3 / 100",
		Closeness: "Closeness: 94.23% (distance 1.000)",
		BarFill:   r.Score.Points / 33.3,
		Action:    "Finish",
	}
	if txt != want {
		t.Fatalf("got  %+v\nwant %+v", txt, want)
	}
	r.Final = false
	if r.Text().Action != "Next Round" {
		t.Fatal("non-final rounds lead to the next round")
	}
}
