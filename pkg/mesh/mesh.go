// Package mesh turns a surface.Coefficients into renderable, hit-testable triangle data.
package mesh

import (
	"errors"
	"fmt"
	"math"

	"paraboloid-guesser/pkg/surface"
	"paraboloid-guesser/pkg/vmath"
)

// ErrDegenerate is returned when the displaced grid cannot be turned into a valid mesh.
var ErrDegenerate = errors.New("degenerate surface geometry")

// MaxResolution keeps the vertex count addressable by 16-bit indices.
const MaxResolution = 255

// Mesh is a displaced square grid. Vertex i of row r, column c sits at index r*(Resolution+1)+c;
// row 0 is y = +HalfWidth, column 0 is x = -HalfWidth.
type Mesh struct {
	Resolution int
	HalfWidth  float64
	Positions  []vmath.Vec3
	Normals    []vmath.Vec3
	UVs        []vmath.Vec2
	Indices    []uint16
	Bounds     vmath.Box
}

// Hit describes the nearest intersection of a ray with the mesh.
type Hit struct {
	T        float64
	Point    vmath.Vec3
	Triangle int
}

// Build evaluates the surface over [-halfWidth, halfWidth]² on a (resolution+1)² vertex grid.
// Either a complete mesh or an error is returned, never a partially filled one.
func Build(c surface.Coefficients, halfWidth float64, resolution int) (*Mesh, error) {
	if resolution < 1 || resolution > MaxResolution {
		return nil, fmt.Errorf("%w: resolution %d outside [1, %d]", ErrDegenerate, resolution, MaxResolution)
	}
	if !(halfWidth > 0) || math.IsInf(halfWidth, 0) {
		return nil, fmt.Errorf("%w: half width %v", ErrDegenerate, halfWidth)
	}

	stride := resolution + 1
	count := stride * stride
	m := &Mesh{
		Resolution: resolution,
		HalfWidth:  halfWidth,
		Positions:  make([]vmath.Vec3, count),
		Normals:    make([]vmath.Vec3, count),
		UVs:        make([]vmath.Vec2, count),
		Indices:    make([]uint16, 0, resolution*resolution*6),
		Bounds:     vmath.EmptyBox(),
	}

	span := 2 * halfWidth
	res := float64(resolution)
	for row := 0; row < stride; row++ {
		y := halfWidth - span*float64(row)/res
		for col := 0; col < stride; col++ {
			x := -halfWidth + span*float64(col)/res
			z := surface.Evaluate(x, y, c)
			p := vmath.V3(x, y, z)
			if !p.IsFinite() {
				return nil, fmt.Errorf("%w: non-finite height at (%.3f, %.3f)", ErrDegenerate, x, y)
			}
			i := row*stride + col
			m.Positions[i] = p
			m.UVs[i] = polarUV(x, y, halfWidth)
			m.Bounds = m.Bounds.Extend(p)
		}
	}

	for row := 0; row < resolution; row++ {
		for col := 0; col < resolution; col++ {
			a := uint16(row*stride + col)
			b := uint16((row+1)*stride + col)
			cc := uint16((row+1)*stride + col + 1)
			d := uint16(row*stride + col + 1)
			m.Indices = append(m.Indices, a, b, d, b, cc, d)
		}
	}

	if err := m.computeNormals(); err != nil {
		return nil, err
	}
	return m, nil
}

// polarUV wraps the texture around the domain origin: U follows the angle, V the radius.
func polarUV(x, y, halfWidth float64) vmath.Vec2 {
	theta := math.Atan2(y, x)
	radius := math.Sqrt(x*x+y*y) / halfWidth
	return vmath.Vec2{
		X: (theta + math.Pi) / (2 * math.Pi),
		Y: math.Min(1, radius),
	}
}

// computeNormals accumulates area-weighted face normals of the displaced triangles.
func (m *Mesh) computeNormals() error {
	for t := 0; t < len(m.Indices); t += 3 {
		ia, ib, ic := m.Indices[t], m.Indices[t+1], m.Indices[t+2]
		a, b, c := m.Positions[ia], m.Positions[ib], m.Positions[ic]
		n := b.Sub(a).Cross(c.Sub(a))
		m.Normals[ia] = m.Normals[ia].Add(n)
		m.Normals[ib] = m.Normals[ib].Add(n)
		m.Normals[ic] = m.Normals[ic].Add(n)
	}
	for i, n := range m.Normals {
		l := n.Len()
		if l == 0 || !n.IsFinite() || math.IsInf(l, 0) {
			return fmt.Errorf("%w: normal at vertex %d", ErrDegenerate, i)
		}
		m.Normals[i] = n.Scale(1 / l)
	}
	return nil
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the corners of triangle i.
func (m *Mesh) Triangle(i int) (a, b, c vmath.Vec3) {
	return m.Positions[m.Indices[3*i]], m.Positions[m.Indices[3*i+1]], m.Positions[m.Indices[3*i+2]]
}

// Intersect returns the nearest hit of r with the mesh, in the mesh's own frame.
func (m *Mesh) Intersect(r vmath.Ray) (Hit, bool) {
	if m == nil || !m.Bounds.IntersectRay(r) {
		return Hit{}, false
	}
	best := Hit{T: math.Inf(1), Triangle: -1}
	for i := 0; i < m.TriangleCount(); i++ {
		a, b, c := m.Triangle(i)
		if t, ok := vmath.IntersectTriangle(r, a, b, c); ok && t < best.T {
			best.T = t
			best.Triangle = i
		}
	}
	if best.Triangle < 0 {
		return Hit{}, false
	}
	best.Point = r.At(best.T)
	return best, true
}
