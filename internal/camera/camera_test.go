package camera

import (
	"math"
	"testing"

	"paraboloid-guesser/internal/config"
	"paraboloid-guesser/pkg/vmath"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func nearVec(a, b vmath.Vec3) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z)
}

func TestFramePose(t *testing.T) {
	box := vmath.Box{Min: vmath.V3(-5, -5, -2), Max: vmath.V3(5, 5, 48)}
	pose := FramePose(box)

	center := vmath.V3(0, 0, 23)
	if !nearVec(pose.Target, center) {
		t.Fatalf("target %v, want %v", pose.Target, center)
	}
	wantDist := 50 * config.FitDistanceFactor
	if d := pose.Position.Distance(center); !near(d, wantDist) {
		t.Fatalf("distance %v, want %v", d, wantDist)
	}
	off := pose.Position.Sub(center)
	if !near(off.X, off.Y) || !near(off.Y, off.Z) {
		t.Fatalf("camera not on the (1,1,1) diagonal: %v", off)
	}
}

func TestFramerResetsOrbitTarget(t *testing.T) {
	cam := New(800, 600)
	orbit := NewOrbit()
	orbit.Rotate(0.3, 0.1)
	f := NewFramer(cam, orbit)

	box := vmath.Box{Min: vmath.V3(-1, -1, -1), Max: vmath.V3(3, 1, 1)}
	pose := f.Frame(box)
	if cam.Pose != pose {
		t.Fatal("camera pose not applied")
	}
	if !nearVec(orbit.Target, vmath.V3(1, 0, 0)) {
		t.Fatalf("orbit target %v", orbit.Target)
	}
	before := cam.Position
	orbit.Update(cam)
	if !nearVec(before, cam.Position) {
		t.Fatalf("reset orbit should not move the camera: %v -> %v", before, cam.Position)
	}
}

func TestRayThroughCenterHitsTarget(t *testing.T) {
	cam := New(800, 600)
	cam.Pose = FramePose(vmath.Box{Min: vmath.V3(-5, -5, -1), Max: vmath.V3(5, 5, 1)})
	r := cam.Ray(0, 0)
	want := cam.Target.Sub(cam.Position).Normalize()
	if !nearVec(r.Dir, want) {
		t.Fatalf("center ray %v, want %v", r.Dir, want)
	}
}

func TestProjectInvertsRay(t *testing.T) {
	cam := New(1200, 900)
	cam.Pose = Pose{Position: vmath.V3(0, 0, 10), Up: vmath.V3(0, 1, 0)}
	for _, ndc := range [][2]float64{{0.5, -0.25}, {-0.9, 0.9}, {0, 0}} {
		p := cam.Ray(ndc[0], ndc[1]).At(7)
		x, y, _, ok := cam.Project(p)
		if !ok || !near(x, ndc[0]) || !near(y, ndc[1]) {
			t.Fatalf("project(ray(%v)) = %v,%v ok=%v", ndc, x, y, ok)
		}
	}
	if _, _, _, ok := cam.Project(vmath.V3(0, 0, 20)); ok {
		t.Fatal("point behind the camera must not project")
	}
}

func TestPointerToNDC(t *testing.T) {
	x, y := PointerToNDC(0, 0, 800, 600)
	if x != -1 || y != 1 {
		t.Fatalf("top-left = %v,%v", x, y)
	}
	x, y = PointerToNDC(400, 300, 800, 600)
	if x != 0 || y != 0 {
		t.Fatalf("center = %v,%v", x, y)
	}
}

func TestResizeClampsToMinimum(t *testing.T) {
	cam := New(50, 1000)
	if !near(cam.Aspect, float64(config.MinViewport)/1000) {
		t.Fatalf("aspect %v", cam.Aspect)
	}
}

func TestOrbitDampingAndSuspend(t *testing.T) {
	cam := New(800, 600)
	cam.Pose = Pose{Position: vmath.V3(0, 0, 10), Up: vmath.V3(0, 1, 0)}
	orbit := NewOrbit()

	orbit.SetEnabled(false)
	orbit.Rotate(0.5, 0)
	orbit.Zoom(3)
	orbit.Update(cam)
	if !nearVec(cam.Position, vmath.V3(0, 0, 10)) {
		t.Fatalf("disabled orbit moved the camera to %v", cam.Position)
	}

	orbit.SetEnabled(true)
	orbit.Rotate(0.1, 0)
	orbit.Update(cam)
	first := cam.Position
	orbit.Update(cam)
	second := cam.Position
	if nearVec(first, vmath.V3(0, 0, 10)) || nearVec(first, second) {
		t.Fatal("damped rotation should keep moving over several frames")
	}
	if d := cam.Position.Len(); !near(d, 10) {
		t.Fatalf("rotation changed the radius to %v", d)
	}

	orbit.Zoom(1)
	orbit.Update(cam)
	if d := cam.Position.Len(); !near(d, 10*config.OrbitZoomStep) {
		t.Fatalf("zoom radius %v", d)
	}
}
