// pkg/render/painter.go
package render

import (
	"image/color"
	"sort"

	"paraboloid-guesser/pkg/mesh"
	"paraboloid-guesser/pkg/vmath"
)

// MaxBatchTriangles keeps every batch addressable by 16-bit indices.
const MaxBatchTriangles = 65535 / 3

// Projector maps a scene point to normalized device coordinates.
type Projector interface {
	Project(p vmath.Vec3) (ndcX, ndcY, depth float64, ok bool)
}

// Vertex is a screen-space vertex with source-image coordinates and a color.
type Vertex struct {
	DstX, DstY float32
	SrcX, SrcY float32
	R, G, B, A float32
}

// Batch is a triangle list ready for a single DrawTriangles call.
type Batch struct {
	Vertices []Vertex
	Indices  []uint16
}

type projected struct {
	tri   int
	depth float64
	pts   [3]vmath.Vec2
	shade float64
}

// Painter draws a mesh with the painter's algorithm: triangles are projected,
// flat shaded and emitted far to near. Buffers are reused between frames.
type Painter struct {
	Width, Height int
	Light         Light
	Base          color.RGBA

	// Source image size used to map UVs; 1x1 for an untextured fill image.
	TexWidth, TexHeight float32

	tris    []projected
	batches []Batch
}

// NewPainter creates a painter for a viewport.
func NewPainter(width, height int, light Light) *Painter {
	return &Painter{
		Width:     width,
		Height:    height,
		Light:     light,
		Base:      color.RGBA{255, 255, 255, 255},
		TexWidth:  1,
		TexHeight: 1,
	}
}

// ToPixel converts NDC to window pixels.
func (p *Painter) ToPixel(ndcX, ndcY float64) vmath.Vec2 {
	return vmath.Vec2{
		X: (ndcX + 1) / 2 * float64(p.Width),
		Y: (1 - ndcY) / 2 * float64(p.Height),
	}
}

// Paint projects m under the container rotation and returns far-to-near batches.
// Triangles with a vertex behind the camera are skipped.
func (p *Painter) Paint(m *mesh.Mesh, rot vmath.Euler, proj Projector, eye vmath.Vec3) []Batch {
	p.tris = p.tris[:0]
	if m == nil {
		return nil
	}
	mat := rot.Matrix()
	for i := 0; i < m.TriangleCount(); i++ {
		a, b, c := m.Triangle(i)
		world := [3]vmath.Vec3{mat.Apply(a), mat.Apply(b), mat.Apply(c)}
		t := projected{tri: i}
		visible := true
		for k, w := range world {
			x, y, d, ok := proj.Project(w)
			if !ok {
				visible = false
				break
			}
			t.pts[k] = p.ToPixel(x, y)
			t.depth += d
		}
		if !visible {
			continue
		}
		n := world[1].Sub(world[0]).Cross(world[2].Sub(world[0])).Normalize()
		// двусторонняя поверхность: нормаль всегда к зрителю
		if n.Dot(eye.Sub(world[0])) < 0 {
			n = n.Scale(-1)
		}
		t.shade = p.Light.Factor(n)
		p.tris = append(p.tris, t)
	}
	sort.Slice(p.tris, func(i, j int) bool { return p.tris[i].depth > p.tris[j].depth })
	return p.fill(m)
}

func (p *Painter) fill(m *mesh.Mesh) []Batch {
	need := (len(p.tris) + MaxBatchTriangles - 1) / MaxBatchTriangles
	for len(p.batches) < need {
		p.batches = append(p.batches, Batch{})
	}
	out := p.batches[:need]
	for bi := range out {
		out[bi].Vertices = out[bi].Vertices[:0]
		out[bi].Indices = out[bi].Indices[:0]
	}
	for i, t := range p.tris {
		b := &out[i/MaxBatchTriangles]
		col := Shade(p.Base, t.shade)
		r, g, bl, a := Floats(col)
		for k := 0; k < 3; k++ {
			uv := m.UVs[m.Indices[t.tri*3+k]]
			b.Indices = append(b.Indices, uint16(len(b.Vertices)))
			b.Vertices = append(b.Vertices, Vertex{
				DstX: float32(t.pts[k].X),
				DstY: float32(t.pts[k].Y),
				SrcX: float32(uv.X) * p.TexWidth,
				SrcY: float32(1-uv.Y) * p.TexHeight,
				R:    r,
				G:    g,
				B:    bl,
				A:    a,
			})
		}
	}
	return out
}
