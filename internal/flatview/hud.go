// internal/flatview/hud.go
package flatview

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"paraboloid-guesser/internal/config"
	"paraboloid-guesser/internal/game"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

const (
	lineHeight     = 18
	fieldWidth     = 90
	fieldHeight    = 22
	maxFieldLen    = 16
	noticeDuration = 3 * time.Second
)

// Action - запрос игрока на этом кадре.
type Action int

const (
	ActionNone Action = iota
	ActionSubmit
	ActionAdvance
	ActionRestart
	ActionRetry
)

// Button - кликабельная кнопка.
type Button struct {
	Rect image.Rectangle
	Text string
}

func (b *Button) contains(x, y int) bool {
	return image.Pt(x, y).In(b.Rect)
}

// field - поле ввода одной координаты.
type field struct {
	Rect    image.Rectangle
	Label   string
	Text    string
	Focused bool
}

// HUD - интерфейс плоского вида. Реализует game.Presenter.
type HUD struct {
	face          font.Face
	width, height int
	ShowDebug     bool

	equation   string
	target     string
	round      string
	diagnostic string
	notice     string
	noticeAt   time.Time
	result     *game.ResultText
	total      float64

	fields [3]*field
	submit Button
	modal  Button
	chars  []rune
}

// NewHUD создает HUD со шрифтом basicfont.
func NewHUD(width, height int) *HUD {
	h := &HUD{face: basicfont.Face7x13, ShowDebug: true}
	for i, l := range [3]string{"x", "y", "z"} {
		h.fields[i] = &field{Label: l}
	}
	h.Resize(width, height)
	return h
}

// Resize пересчитывает раскладку.
func (h *HUD) Resize(width, height int) {
	h.width, h.height = width, height
	x, y := config.HUDPadding+14, config.HUDPadding+3*lineHeight+4
	for _, f := range h.fields {
		f.Rect = image.Rect(x, y, x+fieldWidth, y+fieldHeight)
		x += fieldWidth + 24
	}
	h.submit.Rect = image.Rect(x, y, x+config.ButtonWidth-30, y+fieldHeight)
	mx, my := (width-config.ModalWidth)/2, (height-config.ModalHeight)/2
	bx := mx + (config.ModalWidth-config.ButtonWidth)/2
	by := my + config.ModalHeight - config.ButtonHeight - config.HUDPadding
	h.modal.Rect = image.Rect(bx, by, bx+config.ButtonWidth, by+config.ButtonHeight)
}

// ShowEquation реализует game.Presenter.
func (h *HUD) ShowEquation(equation string) { h.equation = equation }

// ShowRound реализует game.Presenter.
func (h *HUD) ShowRound(info game.RoundInfo) {
	h.result = nil
	h.round = info.Title()
	h.total = info.Total
	h.target = info.TargetText()
	h.fields[0].Text = game.FormatCoord(info.TargetX)
	h.fields[1].Text = game.FormatCoord(info.TargetY)
	h.fields[2].Text = ""
	for i, f := range h.fields {
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
func (h *HUD) ShowDiagnostic(msg string) { h.diagnostic = msg }

// Values возвращает текст полей ввода.
func (h *HUD) Values() (x, y, z string) {
	return h.fields[0].Text, h.fields[1].Text, h.fields[2].Text
}

// Captures - указатель над HUD или открыто модальное окно.
func (h *HUD) Captures(x, y int, phase game.Phase) bool {
	if phase == game.RoundResolved || phase == game.GameOver {
		return true
	}
	return image.Pt(x, y).In(h.panelRect())
}

func (h *HUD) panelRect() image.Rectangle {
	return image.Rect(0, 0, h.submit.Rect.Max.X+config.HUDPadding, h.submit.Rect.Max.Y+config.HUDPadding)
}

// Update обрабатывает клавиатуру и клики.
func (h *HUD) Update(phase game.Phase) Action {
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		h.ShowDebug = !h.ShowDebug
	}
	enter := inpututil.IsKeyJustPressed(ebiten.KeyEnter)
	click := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	mx, my := ebiten.CursorPosition()

	switch phase {
	case game.AwaitingGuess:
		if click {
			for _, f := range h.fields {
				f.Focused = image.Pt(mx, my).In(f.Rect)
			}
		}
		h.typeInto()
		if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
			h.cycleFocus()
		}
		if enter || (click && h.submit.contains(mx, my)) {
			return ActionSubmit
		}
	case game.RoundResolved:
		if enter || (click && h.modal.contains(mx, my)) {
			return ActionAdvance
		}
	case game.GameOver:
		if enter || (click && h.modal.contains(mx, my)) {
			return ActionRestart
		}
	case game.BuildFailed:
		if click && h.submit.contains(mx, my) {
			return ActionRetry
		}
	}
	return ActionNone
}

func (h *HUD) typeInto() {
	var f *field
	for _, x := range h.fields {
		if x.Focused {
			f = x
		}
	}
	if f == nil {
		return
	}
	h.chars = ebiten.AppendInputChars(h.chars[:0])
	for _, r := range h.chars {
		if numericRune(r) && len(f.Text) < maxFieldLen {
			f.Text += string(r)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && len(f.Text) > 0 {
		f.Text = f.Text[:len(f.Text)-1]
	}
}

func (h *HUD) cycleFocus() {
	next := 0
	for i, f := range h.fields {
		if f.Focused {
			next = (i + 1) % len(h.fields)
		}
		f.Focused = false
	}
	h.fields[next].Focused = true
}

// Draw рисует HUD поверх сцены.
func (h *HUD) Draw(screen *ebiten.Image, phase game.Phase) {
	panel := h.panelRect()
	fillRect(screen, panel, config.PanelColor)

	p := config.HUDPadding
	line := func(i int, s string, c color.Color) {
		text.Draw(screen, s, h.face, p, p+lineHeight*(i+1)-4, c)
	}
	if phase == game.Loading {
		line(0, "Loading texture...", config.TextLightColor)
	} else {
		line(0, h.equation, config.TextLightColor)
		line(1, h.target, config.TextDimColor)
		line(2, fmt.Sprintf("%s  |  Total: %.1f / %d", h.round, h.total, int(config.MaxTotalScore)), config.TextDimColor)
	}

	if phase == game.BuildFailed {
		h.drawButton(screen, Button{Rect: h.submit.Rect, Text: "Retry"})
	} else {
		for _, f := range h.fields {
			h.drawField(screen, f)
		}
		h.drawButton(screen, Button{Rect: h.submit.Rect, Text: "Submit"})
	}

	if h.notice != "" && time.Since(h.noticeAt) < noticeDuration {
		text.Draw(screen, h.notice, h.face, p, panel.Max.Y+lineHeight, config.ErrorTextColor)
	}
	if h.ShowDebug && h.diagnostic != "" {
		ebitenutil.DebugPrintAt(screen, h.diagnostic, p, h.height-p-lineHeight)
	}

	switch {
	case phase == game.RoundResolved && h.result != nil:
		h.drawResult(screen)
	case phase == game.GameOver:
		h.drawGameOver(screen)
	}
}

func (h *HUD) drawField(screen *ebiten.Image, f *field) {
	fillRect(screen, f.Rect, config.InputColor)
	border := config.TextDimColor
	if f.Focused {
		border = config.TextLightColor
	}
	vector.StrokeRect(screen, float32(f.Rect.Min.X), float32(f.Rect.Min.Y), float32(f.Rect.Dx()), float32(f.Rect.Dy()), 1, border, false)
	text.Draw(screen, f.Label, h.face, f.Rect.Min.X-12, f.Rect.Min.Y+15, config.TextDimColor)
	s := f.Text
	if f.Focused && time.Now().UnixMilli()/500%2 == 0 {
		s += "|"
	}
	text.Draw(screen, s, h.face, f.Rect.Min.X+5, f.Rect.Min.Y+15, config.TextLightColor)
}

func (h *HUD) drawButton(screen *ebiten.Image, b Button) {
	c := config.ButtonColor
	if image.Pt(ebiten.CursorPosition()).In(b.Rect) {
		c = config.ButtonHoverColor
	}
	fillRect(screen, b.Rect, c)
	bounds := text.BoundString(h.face, b.Text)
	x := b.Rect.Min.X + (b.Rect.Dx()-bounds.Dx())/2
	y := b.Rect.Min.Y + (b.Rect.Dy()+bounds.Dy())/2
	text.Draw(screen, b.Text, h.face, x, y, color.White)
}

func (h *HUD) modalRect() image.Rectangle {
	mx, my := (h.width-config.ModalWidth)/2, (h.height-config.ModalHeight)/2
	return image.Rect(mx, my, mx+config.ModalWidth, my+config.ModalHeight)
}

func (h *HUD) centered(screen *ebiten.Image, s string, y int, c color.Color) {
	m := h.modalRect()
	w := text.BoundString(h.face, s).Dx()
	text.Draw(screen, s, h.face, m.Min.X+(m.Dx()-w)/2, y, c)
}

func (h *HUD) drawResult(screen *ebiten.Image) {
	r := h.result
	fillRect(screen, image.Rect(0, 0, h.width, h.height), config.OverlayColor)
	m := h.modalRect()
	fillRect(screen, m, config.PanelColor)

	y := m.Min.Y + config.HUDPadding + lineHeight
	next := func(s string, c color.Color) {
		h.centered(screen, s, y, c)
		y += lineHeight + 6
	}
	next(r.Title, config.TextLightColor)
	next(r.Distance, config.TextLightColor)

	bar := image.Rect(m.Min.X+2*config.HUDPadding, y-lineHeight/2, m.Max.X-2*config.HUDPadding, y-lineHeight/2+config.ScoreBarHeight)
	fillRect(screen, bar, config.ScoreBarBgColor)
	fill := bar
	fill.Max.X = bar.Min.X + int(float64(bar.Dx())*max(0, min(1, r.BarFill)))
	fillRect(screen, fill, config.ScoreBarColor)
	y += config.ScoreBarHeight + 6

	next(r.Points, config.TextLightColor)
	next("Your guess: "+r.Guess, config.GuessMarkerColor)
	next("True point: "+r.Truth, config.TrueMarkerColor)
	next(r.Closeness, config.TextDimColor)
	next(r.Total, config.TextLightColor)

	h.drawButton(screen, h.modal)
}

func (h *HUD) drawGameOver(screen *ebiten.Image) {
	fillRect(screen, image.Rect(0, 0, h.width, h.height), config.OverlayColor)
	m := h.modalRect()
	fillRect(screen, m, config.PanelColor)
	h.centered(screen, "Game Over", m.Min.Y+m.Dy()/3, config.TextLightColor)
	h.centered(screen, fmt.Sprintf("Total Score: %.1f / %d", h.total, int(config.MaxTotalScore)), m.Min.Y+m.Dy()/3+40, config.TextLightColor)
	h.drawButton(screen, Button{Rect: h.modal.Rect, Text: "Play Again"})
}

func fillRect(screen *ebiten.Image, r image.Rectangle, c color.Color) {
	vector.DrawFilledRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), c, false)
}

func numericRune(r rune) bool {
	return (r >= '0' && r <= '9') || r == '-' || r == '+' || r == '.' || r == 'e' || r == 'E'
}
