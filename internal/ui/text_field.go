// internal/ui/text_field.go
package ui

import (
	"image/color"
	"strings"

	"paraboloid-guesser/internal/config"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const maxFieldLen = 16

// TextField - однострочное поле ввода числа.
type TextField struct {
	Rect    rl.Rectangle
	Label   string
	Text    string
	Focused bool
	Font    rl.Font
}

// NewTextField создает поле с подписью слева.
func NewTextField(rect rl.Rectangle, label string, font rl.Font) *TextField {
	return &TextField{Rect: rect, Label: label, Font: font}
}

// Update обрабатывает фокус по клику и ввод символов.
func (f *TextField) Update(mousePos rl.Vector2) {
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		f.Focused = rl.CheckCollisionPointRec(mousePos, f.Rect)
	}
	if !f.Focused {
		return
	}
	for ch := rl.GetCharPressed(); ch > 0; ch = rl.GetCharPressed() {
		r := rune(ch)
		if numericRune(r) && len(f.Text) < maxFieldLen {
			f.Text += string(r)
		}
	}
	if rl.IsKeyPressed(rl.KeyBackspace) && len(f.Text) > 0 {
		f.Text = f.Text[:len(f.Text)-1]
	}
}

// Draw отрисовывает подпись, рамку и текст с курсором.
func (f *TextField) Draw() {
	labelSize := rl.MeasureTextEx(f.Font, f.Label, config.HUDFontSize, 1)
	rl.DrawTextEx(f.Font, f.Label,
		rl.NewVector2(f.Rect.X-labelSize.X-6, f.Rect.Y+(f.Rect.Height-labelSize.Y)/2),
		config.HUDFontSize, 1, rlColor(config.TextLightColor))

	rl.DrawRectangleRec(f.Rect, rlColor(config.InputColor))
	border := rl.DarkGray
	if f.Focused {
		border = rlColor(config.TrueMarkerColor)
	}
	rl.DrawRectangleLinesEx(f.Rect, 2, border)

	shown := f.Text
	if f.Focused && (int(rl.GetTime()*2)%2 == 0) {
		shown += "_"
	}
	textSize := rl.MeasureTextEx(f.Font, shown, config.HUDFontSize, 1)
	rl.DrawTextEx(f.Font, shown,
		rl.NewVector2(f.Rect.X+6, f.Rect.Y+(f.Rect.Height-textSize.Y)/2),
		config.HUDFontSize, 1, rlColor(config.TextLightColor))
}

func numericRune(r rune) bool {
	return (r >= '0' && r <= '9') || strings.ContainsRune(".-+eE", r)
}

func rlColor(c color.RGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}
