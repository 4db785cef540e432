package vmath

import "github.com/go-gl/mathgl/mgl64"

// Mat3 is a 3x3 rotation matrix stored column-major, as mathgl does.
type Mat3 mgl64.Mat3

// Identity3 returns the identity matrix.
func Identity3() Mat3 {
	return Mat3(mgl64.Ident3())
}

// RotationX rotates around the X axis by angle radians.
func RotationX(angle float64) Mat3 {
	return Mat3(mgl64.Rotate3DX(angle))
}

// RotationY rotates around the Y axis by angle radians.
func RotationY(angle float64) Mat3 {
	return Mat3(mgl64.Rotate3DY(angle))
}

// Mul returns m * n.
func (m Mat3) Mul(n Mat3) Mat3 {
	return Mat3(mgl64.Mat3(m).Mul3(mgl64.Mat3(n)))
}

// Transpose returns the transpose, which is also the inverse of a rotation.
func (m Mat3) Transpose() Mat3 {
	return Mat3(mgl64.Mat3(m).Transpose())
}

// Apply returns m * v.
func (m Mat3) Apply(v Vec3) Vec3 {
	return FromVec(mgl64.Mat3(m).Mul3x1(v.Vec()))
}

// Euler is a pitch/yaw pair applied in X-then-Y order (R = Rx * Ry).
type Euler struct {
	X, Y float64
}

// Matrix returns the rotation matrix for e.
func (e Euler) Matrix() Mat3 {
	return RotationX(e.X).Mul(RotationY(e.Y))
}

// ToLocal maps a world-space ray into the rotated frame.
func (e Euler) ToLocal(r Ray) Ray {
	inv := e.Matrix().Transpose()
	return Ray{Origin: inv.Apply(r.Origin), Dir: inv.Apply(r.Dir)}
}

// ToWorld maps a point from the rotated frame into world space.
func (e Euler) ToWorld(p Vec3) Vec3 {
	return e.Matrix().Apply(p)
}
