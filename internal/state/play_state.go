// internal/state/play_state.go
package state

import (
	"log"

	"paraboloid-guesser/internal/app"
	"paraboloid-guesser/internal/interaction"
	"paraboloid-guesser/internal/system"
	"paraboloid-guesser/internal/ui"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// PlayState - основной экран: 3D-сцена, перетаскивание поверхности, HUD.
type PlayState struct {
	sm     *StateMachine
	game   *app.Game
	render *system.RenderSystemRL
	hud    *ui.HUD
	cursor interaction.Cursor
}

func NewPlayState(sm *StateMachine, g *app.Game, render *system.RenderSystemRL, hud *ui.HUD) *PlayState {
	return &PlayState{sm: sm, game: g, render: render, hud: hud}
}

func (s *PlayState) Enter() {}

func (s *PlayState) Update(deltaTime float64) {
	if rl.IsWindowResized() {
		w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
		s.game.Resize(w, h)
		s.hud.Resize(w, h)
	}

	session := s.game.Session
	phase := session.Phase()
	var err error
	switch s.hud.Update(phase) {
	case ui.ActionSubmit:
		// ошибку ввода уже показал HUD
		_, _ = session.Submit(s.hud.Values())
	case ui.ActionAdvance:
		err = session.Advance()
	case ui.ActionRestart:
		err = session.Restart()
	case ui.ActionRetry:
		err = session.Retry()
	}
	if err != nil {
		log.Printf("WARNING: %v", err)
	}

	s.handlePointer()
	s.game.Update(deltaTime)
}

// handlePointer передает мышь контроллеру, если она не над HUD.
// Начатый жест получает указатель до отпускания, где бы тот ни был.
func (s *PlayState) handlePointer() {
	c := s.game.Controller
	mouse := rl.GetMousePosition()
	x, y := float64(mouse.X), float64(mouse.Y)

	if !c.Busy() && s.hud.Captures(mouse, s.game.Session.Phase()) {
		s.setCursor(interaction.CursorDefault)
		return
	}
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		c.PointerDown(x, y)
	}
	if d := rl.GetMouseDelta(); d.X != 0 || d.Y != 0 {
		c.PointerMove(x, y)
	}
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) || (c.Busy() && !rl.IsMouseButtonDown(rl.MouseLeftButton)) {
		c.PointerUp(x, y)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		c.Wheel(float64(wheel))
	}
	s.setCursor(c.Cursor())
}

func (s *PlayState) setCursor(c interaction.Cursor) {
	if c == s.cursor {
		return
	}
	s.cursor = c
	switch c {
	case interaction.CursorGrab:
		rl.SetMouseCursor(rl.MouseCursorPointingHand)
	case interaction.CursorGrabbing:
		rl.SetMouseCursor(rl.MouseCursorResizeAll)
	default:
		rl.SetMouseCursor(rl.MouseCursorDefault)
	}
}

func (s *PlayState) Draw() {
	rl.BeginMode3D(system.CameraRL(s.game.Camera))
	s.render.Draw(s.game.Composer.Rotation)
	rl.EndMode3D()
	s.hud.Draw(s.game.Session.Phase())
}

func (s *PlayState) Exit() {
	rl.SetMouseCursor(rl.MouseCursorDefault)
}
