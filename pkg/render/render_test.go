package render

import (
	"image/color"
	"math"
	"testing"

	"paraboloid-guesser/pkg/mesh"
	"paraboloid-guesser/pkg/surface"
	"paraboloid-guesser/pkg/vmath"
)

func TestLightFactor(t *testing.T) {
	l := NewLight(vmath.V3(0, 0, 2), 0.9, 0.3)
	tests := []struct {
		name   string
		normal vmath.Vec3
		want   float64
	}{
		{"facing the light", vmath.V3(0, 0, 1), 1},
		{"grazing", vmath.V3(1, 0, 0), 0.3},
		{"facing away", vmath.V3(0, 0, -1), 0.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.Factor(tt.normal); math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("Factor = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShade(t *testing.T) {
	c := color.RGBA{200, 100, 50, 255}
	if got := Shade(c, 0.5); got != (color.RGBA{100, 50, 25, 255}) {
		t.Fatalf("Shade = %v", got)
	}
	if got := Shade(c, 2); got != c {
		t.Fatalf("Shade must clamp, got %v", got)
	}
	if got := DarkenColor(c); got != (color.RGBA{100, 50, 25, 255}) {
		t.Fatalf("DarkenColor = %v", got)
	}
}

// orthoZ looks straight down the -z axis; depth grows as z decreases.
type orthoZ struct{ scale float64 }

func (o orthoZ) Project(p vmath.Vec3) (float64, float64, float64, bool) {
	return p.X / o.scale, p.Y / o.scale, 100 - p.Z, true
}

func TestPaintSortsFarToNear(t *testing.T) {
	m, err := mesh.Build(surface.Coefficients{A: 1, B: 1}, 5, 8)
	if err != nil {
		t.Fatal(err)
	}
	p := NewPainter(400, 400, NewLight(vmath.V3(0, 0, 1), 0.9, 0.3))
	batches := p.Paint(m, vmath.Euler{}, orthoZ{scale: 10}, vmath.V3(0, 0, 100))
	if len(batches) != 1 {
		t.Fatalf("batches = %d", len(batches))
	}
	b := batches[0]
	if len(b.Indices) != m.TriangleCount()*3 || len(b.Vertices) != len(b.Indices) {
		t.Fatalf("got %d indices, %d vertices", len(b.Indices), len(b.Vertices))
	}
	for i := 1; i < len(p.tris); i++ {
		if p.tris[i].depth > p.tris[i-1].depth {
			t.Fatalf("triangle %d is farther than the one before it", i)
		}
	}
	for _, v := range b.Vertices {
		if v.DstX < 0 || v.DstX > 400 || v.DstY < 0 || v.DstY > 400 {
			t.Fatalf("vertex outside viewport: %+v", v)
		}
	}

	// буферы переиспользуются между кадрами
	again := p.Paint(m, vmath.Euler{}, orthoZ{scale: 10}, vmath.V3(0, 0, 100))
	if len(again[0].Vertices) != len(b.Vertices) {
		t.Fatal("second frame produced a different vertex count")
	}
}

func TestPaintSplitsLargeMeshes(t *testing.T) {
	m, err := mesh.Build(surface.Coefficients{}, 5, 160)
	if err != nil {
		t.Fatal(err)
	}
	p := NewPainter(100, 100, NewLight(vmath.V3(0, 0, 1), 1, 0))
	batches := p.Paint(m, vmath.Euler{}, orthoZ{scale: 10}, vmath.V3(0, 0, 100))
	total := 0
	for _, b := range batches {
		if len(b.Vertices) > 65535 {
			t.Fatalf("batch with %d vertices", len(b.Vertices))
		}
		total += len(b.Indices) / 3
	}
	if total != m.TriangleCount() || len(batches) < 2 {
		t.Fatalf("%d triangles in %d batches, want %d", total, len(batches), m.TriangleCount())
	}
}

func TestPaintNilMesh(t *testing.T) {
	p := NewPainter(10, 10, Light{})
	if got := p.Paint(nil, vmath.Euler{}, orthoZ{scale: 1}, vmath.Vec3{}); got != nil {
		t.Fatalf("got %v", got)
	}
}
