// pkg/render/color.go
package render

import (
	"image/color"
	"math"

	"paraboloid-guesser/pkg/vmath"
)

// Light is one directional light plus a flat ambient term.
type Light struct {
	Direction vmath.Vec3 // points from the surface towards the light
	Intensity float64
	Ambient   float64
}

// NewLight normalizes the direction.
func NewLight(dir vmath.Vec3, intensity, ambient float64) Light {
	return Light{Direction: dir.Normalize(), Intensity: intensity, Ambient: ambient}
}

// Factor returns the Lambert brightness for a unit normal, clamped to [0, 1].
func (l Light) Factor(normal vmath.Vec3) float64 {
	diffuse := math.Max(0, normal.Dot(l.Direction))
	return math.Min(1, l.Ambient+l.Intensity*diffuse)
}

// Shade scales the color channels by f, keeping alpha.
func Shade(c color.RGBA, f float64) color.RGBA {
	f = math.Max(0, math.Min(1, f))
	return color.RGBA{
		R: uint8(math.Round(float64(c.R) * f)),
		G: uint8(math.Round(float64(c.G) * f)),
		B: uint8(math.Round(float64(c.B) * f)),
		A: c.A,
	}
}

// DarkenColor reduces the brightness of a color.
func DarkenColor(c color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * 0.5),
		G: uint8(float64(c.G) * 0.5),
		B: uint8(float64(c.B) * 0.5),
		A: c.A,
	}
}

// Floats returns the color as premultiplied-free float channels in [0, 1].
func Floats(c color.RGBA) (r, g, b, a float32) {
	return float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255
}
