// internal/game/presenter.go
package game

import (
	"paraboloid-guesser/internal/config"
	"paraboloid-guesser/internal/event"

	"github.com/google/uuid"
)

// RoundInfo - то, что показывается игроку в начале раунда.
type RoundInfo struct {
	Round    int     `json:"round"`
	Rounds   int     `json:"rounds"`
	Equation string  `json:"equation"`
	TargetX  float64 `json:"target_x"`
	TargetY  float64 `json:"target_y"`
	Total    float64 `json:"total"`
}

// RoundResult - итог одной догадки.
type RoundResult struct {
	Round  int     `json:"round"`
	Rounds int     `json:"rounds"`
	Guess  Point3  `json:"guess"`
	Truth  Point3  `json:"truth"`
	Score  Score   `json:"score"`
	Total  float64 `json:"total"`
	Final  bool    `json:"final"`
}

// Presenter - слой интерфейса, которому сессия сообщает о переходах.
type Presenter interface {
	// ShowEquation вызывается до построения поверхности, в том числе неудачного.
	ShowEquation(equation string)
	ShowRound(info RoundInfo)
	ShowResult(result RoundResult)
	ShowInvalidGuess(err error)
	ShowDiagnostic(msg string)
}

// NopPresenter ничего не показывает.
type NopPresenter struct{}

func (NopPresenter) ShowEquation(string)    {}
func (NopPresenter) ShowRound(RoundInfo)    {}
func (NopPresenter) ShowResult(RoundResult) {}
func (NopPresenter) ShowInvalidGuess(error) {}
func (NopPresenter) ShowDiagnostic(string)  {}

// Snapshot - сериализуемое состояние сессии. Скрытая точка не раскрывается,
// пока раунд ждет догадку.
type Snapshot struct {
	GameID   uuid.UUID              `json:"game_id"`
	Phase    string                 `json:"phase"`
	Round    int                    `json:"round"`
	Rounds   int                    `json:"rounds"`
	Equation string                 `json:"equation,omitempty"`
	TargetX  float64                `json:"target_x"`
	TargetY  float64                `json:"target_y"`
	Target   *Point3                `json:"target,omitempty"`
	Scores   [config.Rounds]float64 `json:"scores"`
	Total    float64                `json:"total"`
	Last     *RoundResult           `json:"last,omitempty"`
}

// Snapshot возвращает копию текущего состояния.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		GameID: s.gameID,
		Phase:  s.phase.String(),
		Round:  s.round,
		Rounds: config.Rounds,
		Scores: s.scores,
		Total:  s.total,
	}
	if s.phase == Loading || s.phase == BuildFailed {
		return snap
	}
	snap.Equation = s.coeffs.String()
	snap.TargetX, snap.TargetY = s.target.X, s.target.Y
	if s.phase != AwaitingGuess {
		t := s.target
		snap.Target = &t
	}
	if s.last != nil {
		r := *s.last
		snap.Last = &r
	}
	return snap
}

// dispatch публикует событие со снимком состояния.
func (s *Session) dispatch(t event.EventType, result *RoundResult, err error) {
	if s.events == nil {
		return
	}
	payload := Notification{Snapshot: s.Snapshot()}
	if result != nil {
		r := *result
		payload.Result = &r
	}
	if err != nil {
		payload.Error = err.Error()
	}
	s.events.Dispatch(event.Event{Type: t, Data: payload})
}

// Notification - данные событий сессии.
type Notification struct {
	Snapshot Snapshot     `json:"snapshot"`
	Result   *RoundResult `json:"result,omitempty"`
	Error    string       `json:"error,omitempty"`
}
