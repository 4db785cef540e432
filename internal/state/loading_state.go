// internal/state/loading_state.go
package state

import (
	"paraboloid-guesser/internal/app"
	"paraboloid-guesser/internal/config"
	"paraboloid-guesser/internal/game"
	"paraboloid-guesser/internal/system"
	"paraboloid-guesser/internal/ui"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// LoadingState ждет текстуру; как только сессия начала первый раунд, переходит в игру.
type LoadingState struct {
	sm     *StateMachine
	game   *app.Game
	render *system.RenderSystemRL
	hud    *ui.HUD
	font   rl.Font
}

func NewLoadingState(sm *StateMachine, g *app.Game, render *system.RenderSystemRL, hud *ui.HUD, font rl.Font) *LoadingState {
	return &LoadingState{sm: sm, game: g, render: render, hud: hud, font: font}
}

func (s *LoadingState) Enter() {}

func (s *LoadingState) Update(deltaTime float64) {
	s.game.Update(deltaTime)
	if s.game.Session.Phase() != game.Loading {
		s.sm.SetState(NewPlayState(s.sm, s.game, s.render, s.hud))
	}
}

func (s *LoadingState) Draw() {
	text := "Loading texture..."
	size := float32(config.HUDFontSize * 1.5)
	w := rl.MeasureTextEx(s.font, text, size, 1).X
	pos := rl.NewVector2((float32(rl.GetScreenWidth())-w)/2, float32(rl.GetScreenHeight())/2)
	rl.DrawTextEx(s.font, text, pos, size, 1, rl.RayWhite)
}

func (s *LoadingState) Exit() {}
