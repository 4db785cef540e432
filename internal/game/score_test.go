package game

import (
	"math"
	"testing"

	"paraboloid-guesser/pkg/vmath"
)

func TestScoreGuess(t *testing.T) {
	maxDist := MaxDistance(5)
	tests := []struct {
		name      string
		guess     Point3
		wantPts   float64
		wantClose float64
	}{
		{"exact", vmath.V3(1, 2, 3), 33.3, 100},
		{"half of max distance", vmath.V3(1+maxDist/2, 2, 3), 16.65, 50},
		{"max distance", vmath.V3(1, 2, 3+maxDist), 0, 0},
		{"beyond max distance", vmath.V3(1, 2, 3+2*maxDist), 0, 0},
	}
	truth := vmath.V3(1, 2, 3)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ScoreGuess(truth, tt.guess, 5)
			if math.Abs(s.Points-tt.wantPts) > 1e-9 {
				t.Errorf("points = %v, want %v", s.Points, tt.wantPts)
			}
			if math.Abs(s.ClosenessPct-tt.wantClose) > 1e-9 {
				t.Errorf("closeness = %v, want %v", s.ClosenessPct, tt.wantClose)
			}
			if s.MaxDistance != maxDist {
				t.Errorf("max distance = %v", s.MaxDistance)
			}
		})
	}
}

func TestMaxDistance(t *testing.T) {
	if got := MaxDistance(5); math.Abs(got-17.3205080757) > 1e-9 {
		t.Fatalf("MaxDistance(5) = %v", got)
	}
}

func TestScoreDecreasesWithDistance(t *testing.T) {
	prev := math.Inf(1)
	for d := 0.0; d <= 20; d += 0.5 {
		s := ScoreGuess(Point3{}, vmath.V3(d, 0, 0), 5)
		if s.Points > prev {
			t.Fatalf("points increased at distance %v", d)
		}
		if s.Points < 0 || s.ClosenessPct < 0 {
			t.Fatalf("negative score at distance %v: %+v", d, s)
		}
		prev = s.Points
	}
}
