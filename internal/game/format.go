// internal/game/format.go
package game

import (
	"fmt"

	"paraboloid-guesser/internal/config"

	"github.com/shopspring/decimal"
)

// ResultText - готовые строки окна результата раунда.
type ResultText struct {
	Title     string
	Distance  string
	Points    string
	Guess     string
	Truth     string
	Total     string
	Closeness string
	// BarFill - доля заполнения полосы очков, [0, 1].
	BarFill float64
	// Action - подпись кнопки: следующий раунд или итог игры.
	Action string
}

// FormatCoord печатает координату цели без лишних нулей: 1.5, -2.125, 3.
func FormatCoord(v float64) string {
	return decimal.NewFromFloat(v).String()
}

// TargetText - подпись с координатами цели.
func (i RoundInfo) TargetText() string {
	return fmt.Sprintf("x = %s, y = %s", FormatCoord(i.TargetX), FormatCoord(i.TargetY))
}

// Title - "Round N of 3".
func (i RoundInfo) Title() string {
	return fmt.Sprintf("Round %d of %d", i.Round, i.Rounds)
}

// Text форматирует результат для окна.
func (r RoundResult) Text() ResultText {
	action := "Next Round"
	if r.Final {
		action = "Finish"
	}
	return ResultText{
		Title:     fmt.Sprintf("Round %d of %d", r.Round, r.Rounds),
		Distance:  fmt.Sprintf("Distance: %.3f units", r.Score.Distance),
		Points:    fmt.Sprintf("%.1f / %.1f", r.Score.Points, config.MaxRoundScore),
		Guess:     fmt.Sprintf("x=%.3f, y=%.3f, z=%.3f", r.Guess.X, r.Guess.Y, r.Guess.Z),
		Truth:     fmt.Sprintf("x=%s, y=%s, z=%.6f", FormatCoord(r.Truth.X), FormatCoord(r.Truth.Y), r.Truth.Z),
		Total:     fmt.Sprintf("Total Score: %.1f / %d", r.Total, int(config.MaxTotalScore)),
		Closeness: fmt.Sprintf("Closeness: %.2f%% (distance %.3f)", r.Score.ClosenessPct, r.Score.Distance),
		BarFill:   r.Score.Points / config.MaxRoundScore,
		Action:    action,
	}
}
