// Package vmath adapts mathgl (mgl64) to the value types used by the surface, camera and scene code,
// and adds the ray, box and triangle tests mathgl does not provide.
package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is a point or direction in scene space.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// V3 builds a Vec3.
func V3(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

// Vec converts a to the mathgl representation.
func (a Vec3) Vec() mgl64.Vec3 {
	return mgl64.Vec3{a.X, a.Y, a.Z}
}

// FromVec converts a mathgl vector back to a Vec3.
func FromVec(v mgl64.Vec3) Vec3 {
	return Vec3{v[0], v[1], v[2]}
}

// Add returns a + b.
func (a Vec3) Add(b Vec3) Vec3 {
	return FromVec(a.Vec().Add(b.Vec()))
}

// Sub returns a - b.
func (a Vec3) Sub(b Vec3) Vec3 {
	return FromVec(a.Vec().Sub(b.Vec()))
}

// Scale returns a * s.
func (a Vec3) Scale(s float64) Vec3 {
	return FromVec(a.Vec().Mul(s))
}

// Dot returns the dot product a · b.
func (a Vec3) Dot(b Vec3) float64 {
	return a.Vec().Dot(b.Vec())
}

// Cross returns the cross product a × b.
func (a Vec3) Cross(b Vec3) Vec3 {
	return FromVec(a.Vec().Cross(b.Vec()))
}

// Len returns the Euclidean length.
func (a Vec3) Len() float64 {
	return a.Vec().Len()
}

// Distance returns |a - b|.
func (a Vec3) Distance(b Vec3) float64 {
	return a.Sub(b).Len()
}

// Normalize returns a unit vector in the direction of a.
// The zero vector is returned unchanged.
func (a Vec3) Normalize() Vec3 {
	if a.Len() == 0 {
		return a
	}
	return FromVec(a.Vec().Normalize())
}

// Lerp interpolates between a and b.
func (a Vec3) Lerp(b Vec3, t float64) Vec3 {
	return a.Add(b.Sub(a).Scale(t))
}

// IsFinite reports whether no component is NaN or infinite.
func (a Vec3) IsFinite() bool {
	return isFinite(a.X) && isFinite(a.Y) && isFinite(a.Z)
}

// MaxComponent returns the largest of X, Y and Z.
func (a Vec3) MaxComponent() float64 {
	return math.Max(a.X, math.Max(a.Y, a.Z))
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Vec2 is a point in texture or pointer space.
type Vec2 struct {
	X, Y float64
}
