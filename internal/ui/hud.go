// internal/ui/hud.go
package ui

import (
	"fmt"
	"time"

	"paraboloid-guesser/internal/config"
	"paraboloid-guesser/internal/game"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const noticeDuration = 3 * time.Second

// Action - что игрок запросил через интерфейс на этом кадре.
type Action int

const (
	ActionNone Action = iota
	ActionSubmit
	ActionAdvance
	ActionRestart
	ActionRetry
)

// HUD - панель ввода, строка диагностики и окно результата. Реализует game.Presenter.
type HUD struct {
	font          rl.Font
	width, height int
	ShowDebug     bool

	equation   string
	target     string
	round      string
	diagnostic string
	notice     string
	noticeAt   time.Time

	result *game.ResultText
	total  float64

	inputs  [3]*TextField
	submit  *Button
	modal   *Button
	restart *Button
	retry   *Button

	lastClick time.Time
}

// NewHUD создает HUD для окна заданного размера.
func NewHUD(font rl.Font, width, height int) *HUD {
	h := &HUD{font: font, ShowDebug: true}
	labels := [3]string{"x", "y", "z"}
	for i := range h.inputs {
		h.inputs[i] = NewTextField(rl.Rectangle{}, labels[i], font)
	}
	h.submit = NewButton(rl.Rectangle{}, "Submit", font)
	h.modal = NewButton(rl.Rectangle{}, "Next Round", font)
	h.restart = NewButton(rl.Rectangle{}, "Play Again", font)
	h.retry = NewButton(rl.Rectangle{}, "Retry", font)
	h.Resize(width, height)
	return h
}

// Resize пересчитывает раскладку.
func (h *HUD) Resize(width, height int) {
	h.width = max(width, config.MinViewport)
	h.height = max(height, config.MinViewport)

	p := float32(config.HUDPadding)
	rowY := p + 3*(config.HUDFontSize+6)
	x := p + 24
	for _, f := range h.inputs {
		f.Rect = rl.NewRectangle(x, rowY, config.InputWidth, config.InputHeight)
		x += config.InputWidth + 34
	}
	h.submit.Rect = rl.NewRectangle(x-10, rowY-2, config.ButtonWidth, config.ButtonHeight)
	h.retry.Rect = h.submit.Rect

	mx, my := h.modalOrigin()
	btn := rl.NewRectangle(mx+(config.ModalWidth-config.ButtonWidth)/2, my+config.ModalHeight-config.ButtonHeight-p,
		config.ButtonWidth, config.ButtonHeight)
	h.modal.Rect = btn
	h.restart.Rect = btn
}

func (h *HUD) modalOrigin() (float32, float32) {
	return float32(h.width-config.ModalWidth) / 2, float32(h.height-config.ModalHeight) / 2
}

// ShowEquation реализует game.Presenter.
func (h *HUD) ShowEquation(equation string) {
	h.equation = equation
}

// ShowRound реализует game.Presenter: x и y подставляются из цели, z очищается.
func (h *HUD) ShowRound(info game.RoundInfo) {
	h.result = nil
	h.round = info.Title()
	h.total = info.Total
	h.target = info.TargetText()
	h.inputs[0].Text = game.FormatCoord(info.TargetX)
	h.inputs[1].Text = game.FormatCoord(info.TargetY)
	h.inputs[2].Text = ""
	for i, f := range h.inputs {
		f.Focused = i == 2
	}
}

// ShowResult реализует game.Presenter.
func (h *HUD) ShowResult(result game.RoundResult) {
	txt := result.Text()
	h.result = &txt
	h.total = result.Total
	h.modal.Text = txt.Action
}

// ShowInvalidGuess реализует game.Presenter.
func (h *HUD) ShowInvalidGuess(err error) {
	h.notice = "Please enter numeric x, y, and z values."
	h.noticeAt = time.Now()
}

// ShowDiagnostic реализует game.Presenter.
func (h *HUD) ShowDiagnostic(msg string) {
	h.diagnostic = msg
}

// Values возвращает текст трех полей ввода.
func (h *HUD) Values() (x, y, z string) {
	return h.inputs[0].Text, h.inputs[1].Text, h.inputs[2].Text
}

// Captures сообщает, что указатель над элементами интерфейса и не должен идти в сцену.
func (h *HUD) Captures(mousePos rl.Vector2, phase game.Phase) bool {
	if phase == game.RoundResolved || phase == game.GameOver {
		return true
	}
	return rl.CheckCollisionPointRec(mousePos, h.panelRect())
}

func (h *HUD) panelRect() rl.Rectangle {
	p := float32(config.HUDPadding)
	return rl.NewRectangle(p/2, p/2, 4*(config.InputWidth+34)+config.ButtonWidth, 3*(config.HUDFontSize+6)+config.InputHeight+p*2)
}

// Update обрабатывает ввод и возвращает действие игрока.
func (h *HUD) Update(phase game.Phase) Action {
	mouse := rl.GetMousePosition()
	if rl.IsKeyPressed(rl.KeyF3) {
		h.ShowDebug = !h.ShowDebug
	}

	switch phase {
	case game.AwaitingGuess:
		for _, f := range h.inputs {
			f.Update(mouse)
		}
		if rl.IsKeyPressed(rl.KeyTab) {
			h.cycleFocus()
		}
		if h.clicked(h.submit, mouse) || rl.IsKeyPressed(rl.KeyEnter) {
			return ActionSubmit
		}
	case game.RoundResolved:
		if h.clicked(h.modal, mouse) || rl.IsKeyPressed(rl.KeyEnter) {
			return ActionAdvance
		}
	case game.GameOver:
		if h.clicked(h.restart, mouse) || rl.IsKeyPressed(rl.KeyEnter) {
			return ActionRestart
		}
	case game.BuildFailed:
		if h.clicked(h.retry, mouse) {
			return ActionRetry
		}
	}
	return ActionNone
}

// clicked гасит двойные срабатывания, когда кнопка сразу меняется под курсором.
func (h *HUD) clicked(b *Button, mouse rl.Vector2) bool {
	if !b.IsClicked(mouse) {
		return false
	}
	if time.Since(h.lastClick) < config.ClickCooldownMs*time.Millisecond {
		return false
	}
	h.lastClick = time.Now()
	return true
}

func (h *HUD) cycleFocus() {
	next := 0
	for i, f := range h.inputs {
		if f.Focused {
			next = (i + 1) % len(h.inputs)
		}
		f.Focused = false
	}
	h.inputs[next].Focused = true
}

// Draw рисует HUD поверх 3D-сцены.
func (h *HUD) Draw(phase game.Phase) {
	mouse := rl.GetMousePosition()
	p := float32(config.HUDPadding)
	light := rlColor(config.TextLightColor)
	dim := rlColor(config.TextDimColor)

	rl.DrawRectangleRec(h.panelRect(), rlColor(config.PanelColor))
	line := func(i int, text string, c rl.Color) {
		rl.DrawTextEx(h.font, text, rl.NewVector2(p, p+float32(i)*(config.HUDFontSize+6)), config.HUDFontSize, 1, c)
	}

	switch phase {
	case game.Loading:
		line(0, "Loading texture...", light)
	default:
		line(0, h.equation, light)
		line(1, h.target, dim)
		line(2, fmt.Sprintf("%s  |  Total: %.1f / %d", h.round, h.total, int(config.MaxTotalScore)), dim)
	}

	if phase == game.BuildFailed {
		h.retry.Draw(mouse)
	} else {
		for _, f := range h.inputs {
			f.Draw()
		}
		h.submit.Draw(mouse)
	}

	if h.notice != "" && time.Since(h.noticeAt) < noticeDuration {
		r := h.panelRect()
		rl.DrawTextEx(h.font, h.notice, rl.NewVector2(p, r.Y+r.Height+4), config.HUDFontSize, 1, rlColor(config.ErrorTextColor))
	}
	if h.ShowDebug && h.diagnostic != "" {
		rl.DrawTextEx(h.font, h.diagnostic, rl.NewVector2(p, float32(h.height)-p-config.HUDFontSize), config.HUDFontSize*0.8, 1, dim)
	}

	switch {
	case phase == game.RoundResolved && h.result != nil:
		h.drawResult(mouse)
	case phase == game.GameOver:
		h.drawGameOver(mouse)
	}
}

func (h *HUD) drawResult(mouse rl.Vector2) {
	r := h.result
	rl.DrawRectangle(0, 0, int32(h.width), int32(h.height), rlColor(config.OverlayColor))
	mx, my := h.modalOrigin()
	rl.DrawRectangleRec(rl.NewRectangle(mx, my, config.ModalWidth, config.ModalHeight), rlColor(config.PanelColor))

	p := float32(config.HUDPadding)
	y := my + p
	text := func(s string, size float32, c rl.Color) {
		w := rl.MeasureTextEx(h.font, s, size, 1).X
		rl.DrawTextEx(h.font, s, rl.NewVector2(mx+(config.ModalWidth-w)/2, y), size, 1, c)
		y += size + 8
	}
	light := rlColor(config.TextLightColor)
	dim := rlColor(config.TextDimColor)

	text(r.Title, config.HUDFontSize*1.4, light)
	text(r.Distance, config.HUDFontSize, light)

	bar := rl.NewRectangle(mx+2*p, y, config.ModalWidth-4*p, config.ScoreBarHeight)
	rl.DrawRectangleRec(bar, rlColor(config.ScoreBarBgColor))
	fill := bar
	fill.Width = bar.Width * float32(max(0, min(1, r.BarFill)))
	rl.DrawRectangleRec(fill, rlColor(config.ScoreBarColor))
	y += config.ScoreBarHeight + 8

	text(r.Points, config.HUDFontSize, light)
	text("Your guess: "+r.Guess, config.HUDFontSize*0.8, rlColor(config.GuessMarkerColor))
	text("True point: "+r.Truth, config.HUDFontSize*0.8, rlColor(config.TrueMarkerColor))
	text(r.Closeness, config.HUDFontSize*0.8, dim)
	text(r.Total, config.HUDFontSize, light)

	h.modal.Draw(mouse)
}

func (h *HUD) drawGameOver(mouse rl.Vector2) {
	rl.DrawRectangle(0, 0, int32(h.width), int32(h.height), rlColor(config.OverlayColor))
	mx, my := h.modalOrigin()
	rl.DrawRectangleRec(rl.NewRectangle(mx, my, config.ModalWidth, config.ModalHeight), rlColor(config.PanelColor))

	title := "Game Over"
	total := fmt.Sprintf("Total Score: %.1f / %d", h.total, int(config.MaxTotalScore))
	for i, s := range []string{title, total} {
		size := float32(config.HUDFontSize * 1.4)
		if i > 0 {
			size = config.HUDFontSize
		}
		w := rl.MeasureTextEx(h.font, s, size, 1).X
		rl.DrawTextEx(h.font, s, rl.NewVector2(mx+(config.ModalWidth-w)/2, my+config.ModalHeight/3+float32(i)*40), size, 1, rlColor(config.TextLightColor))
	}
	h.restart.Draw(mouse)
}
