// internal/ui/button.go
package ui

import (
	"paraboloid-guesser/internal/config"
	"paraboloid-guesser/pkg/render"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Button - кнопка HUD: Submit, Retry, кнопка модального окна.
// Текст можно менять на лету ("Next Round" / "Finish").
type Button struct {
	Rect rl.Rectangle
	Text string
	Font rl.Font
}

func NewButton(rect rl.Rectangle, text string, font rl.Font) *Button {
	return &Button{Rect: rect, Text: text, Font: font}
}

// Hovered - указатель над кнопкой.
func (b *Button) Hovered(mousePos rl.Vector2) bool {
	return rl.CheckCollisionPointRec(mousePos, b.Rect)
}

// IsClicked - нажатие левой кнопки мыши на этом кадре внутри кнопки.
func (b *Button) IsClicked(mousePos rl.Vector2) bool {
	return b.Hovered(mousePos) && rl.IsMouseButtonPressed(rl.MouseLeftButton)
}

func (b *Button) Draw(mousePos rl.Vector2) {
	bg := config.ButtonColor
	if b.Hovered(mousePos) {
		bg = config.ButtonHoverColor
	}
	rl.DrawRectangleRec(b.Rect, rlColor(bg))
	rl.DrawRectangleLinesEx(b.Rect, 2, rlColor(render.DarkenColor(bg)))

	size := rl.MeasureTextEx(b.Font, b.Text, config.HUDFontSize, 1)
	pos := rl.NewVector2(b.Rect.X+(b.Rect.Width-size.X)/2, b.Rect.Y+(b.Rect.Height-size.Y)/2)
	rl.DrawTextEx(b.Font, b.Text, pos, config.HUDFontSize, 1, rlColor(config.BackgroundColor))
}
