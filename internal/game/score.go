// internal/game/score.go
package game

import (
	"math"

	"paraboloid-guesser/internal/config"
	"paraboloid-guesser/pkg/vmath"
)

// Point3 - точка в координатах области (x, y) и высоты z.
type Point3 = vmath.Vec3

// Score - результат сравнения догадки с правильной точкой.
type Score struct {
	Distance     float64 `json:"distance"`
	MaxDistance  float64 `json:"max_distance"`
	ClosenessPct float64 `json:"closeness_pct"`
	Points       float64 `json:"points"`
}

// MaxDistance - диагональ куба со стороной 2*rangeHalf.
func MaxDistance(rangeHalf float64) float64 {
	return math.Sqrt(3) * 2 * rangeHalf
}

// ScoreGuess считает расстояние, близость в процентах и очки раунда.
func ScoreGuess(truth, guess Point3, rangeHalf float64) Score {
	dist := truth.Distance(guess)
	maxDist := MaxDistance(rangeHalf)
	return Score{
		Distance:     dist,
		MaxDistance:  maxDist,
		ClosenessPct: math.Max(0, 100-(dist/maxDist)*100),
		Points:       math.Max(0, (1-dist/maxDist)*config.MaxRoundScore),
	}
}
