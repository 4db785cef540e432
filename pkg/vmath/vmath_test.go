package vmath

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func vecApprox(a, b Vec3) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y) && approx(a.Z, b.Z)
}

func TestNormalize(t *testing.T) {
	n := V3(1, 1, 1).Normalize()
	if !approx(n.Len(), 1) {
		t.Fatalf("expected unit length, got %v", n.Len())
	}
	if z := (Vec3{}).Normalize(); z != (Vec3{}) {
		t.Fatalf("zero vector should stay zero, got %v", z)
	}
}

func TestBoxExtendAndCenter(t *testing.T) {
	b := EmptyBox().Extend(V3(-1, -2, -3)).Extend(V3(3, 2, 1))
	if !vecApprox(b.Center(), V3(1, 0, -1)) {
		t.Fatalf("center = %v", b.Center())
	}
	if !vecApprox(b.Size(), V3(4, 4, 4)) {
		t.Fatalf("size = %v", b.Size())
	}
}

func TestBoxIntersectRay(t *testing.T) {
	b := Box{Min: V3(-1, -1, -1), Max: V3(1, 1, 1)}
	tests := []struct {
		name string
		ray  Ray
		want bool
	}{
		{"through center", Ray{V3(0, 0, 5), V3(0, 0, -1)}, true},
		{"pointing away", Ray{V3(0, 0, 5), V3(0, 0, 1)}, false},
		{"parallel outside", Ray{V3(2, 0, 5), V3(0, 0, -1)}, false},
		{"origin inside", Ray{V3(0, 0, 0), V3(1, 0, 0)}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := b.IntersectRay(tc.ray); got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIntersectTriangle(t *testing.T) {
	a, b, c := V3(0, 0, 0), V3(1, 0, 0), V3(0, 1, 0)
	tt, ok := IntersectTriangle(Ray{V3(0.2, 0.2, 3), V3(0, 0, -1)}, a, b, c)
	if !ok || !approx(tt, 3) {
		t.Fatalf("expected hit at t=3, got %v %v", tt, ok)
	}
	// back faces count as hits
	if _, ok := IntersectTriangle(Ray{V3(0.2, 0.2, -3), V3(0, 0, 1)}, a, b, c); !ok {
		t.Fatal("expected back-face hit")
	}
	if _, ok := IntersectTriangle(Ray{V3(0.9, 0.9, 3), V3(0, 0, -1)}, a, b, c); ok {
		t.Fatal("expected miss outside the triangle")
	}
}

func TestEulerRoundTrip(t *testing.T) {
	e := Euler{X: 0.7, Y: -1.3}
	p := V3(1, 2, 3)
	world := e.ToWorld(p)
	back := e.ToLocal(Ray{Origin: world, Dir: V3(0, 0, 1)}).Origin
	if !vecApprox(back, p) {
		t.Fatalf("round trip mismatch: %v vs %v", back, p)
	}
	if !approx(world.Len(), p.Len()) {
		t.Fatal("rotation must preserve length")
	}
}

func TestRotationYQuarterTurn(t *testing.T) {
	got := RotationY(math.Pi / 2).Apply(V3(1, 0, 0))
	if !vecApprox(got, V3(0, 0, -1)) {
		t.Fatalf("got %v", got)
	}
}

func TestEulerAppliesYawBeforePitch(t *testing.T) {
	got := Euler{X: math.Pi / 2, Y: math.Pi / 2}.ToWorld(V3(1, 0, 0))
	if !vecApprox(got, V3(0, 1, 0)) {
		t.Fatalf("got %v", got)
	}
}

func TestVecConversion(t *testing.T) {
	a, b := V3(1, 2, 3), V3(-4, 0.5, 2)
	if got := FromVec(a.Vec()); got != a {
		t.Fatalf("round trip %v", got)
	}
	if !vecApprox(a.Cross(b), V3(2.5, -14, 8.5)) {
		t.Fatalf("cross %v", a.Cross(b))
	}
	if !approx(a.Dot(b), 3) {
		t.Fatalf("dot %v", a.Dot(b))
	}
}
