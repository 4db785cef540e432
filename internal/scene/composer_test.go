package scene_test

import (
	"errors"
	"math"
	"testing"

	"paraboloid-guesser/internal/camera"
	"paraboloid-guesser/internal/scene"
	"paraboloid-guesser/internal/scene/scenetest"
	"paraboloid-guesser/pkg/mesh"
	"paraboloid-guesser/pkg/surface"
	"paraboloid-guesser/pkg/vmath"
)

func newComposer(b *scenetest.Backend) (*scene.Composer, *camera.Camera) {
	cam := camera.New(800, 600)
	framer := camera.NewFramer(cam, camera.NewOrbit())
	return scene.NewComposer(b, framer, 5, 16, nil), cam
}

func TestStartRoundAttachesAndFrames(t *testing.T) {
	b := scenetest.New()
	c, cam := newComposer(b)

	m, err := c.StartRound(surface.Coefficients{A: 1, B: 1})
	if err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	if c.CurrentMesh() != m {
		t.Fatal("current mesh is not the one just built")
	}
	if got := len(b.Live(scenetest.KindSurface)); got != 1 {
		t.Fatalf("live surfaces = %d", got)
	}
	if got := len(b.Live(scenetest.KindGrid)); got != 1 {
		t.Fatalf("live grids = %d", got)
	}
	if cam.Target != m.Bounds.Center() {
		t.Fatalf("camera target %v, want bounds center %v", cam.Target, m.Bounds.Center())
	}
}

func TestRepeatedRoundsDoNotLeak(t *testing.T) {
	b := scenetest.New()
	c, _ := newComposer(b)

	for i := 0; i < 7; i++ {
		if _, err := c.StartRound(surface.Coefficients{A: 0.1 * float64(i), B: -0.2, K: 1}); err != nil {
			t.Fatal(err)
		}
		c.PlaceMarker(vmath.V3(1, 1, 1), scene.RoleTrue)
		c.PlaceMarker(vmath.V3(2, 2, 2), scene.RoleGuess)
		c.PlaceMarker(vmath.V3(3, 3, 3), scene.RoleGuess)
		c.DrawConnector(vmath.V3(1, 1, 1), vmath.V3(3, 3, 3))
		c.DrawConnector(vmath.V3(1, 1, 1), vmath.V3(2, 2, 2))

		if n := len(b.Live(scenetest.KindSurface)); n != 1 {
			t.Fatalf("round %d: %d live surfaces", i, n)
		}
		if n := b.LiveMarkers(scene.RoleTrue); n != 1 {
			t.Fatalf("round %d: %d true markers", i, n)
		}
		if n := b.LiveMarkers(scene.RoleGuess); n != 1 {
			t.Fatalf("round %d: %d guess markers", i, n)
		}
		if n := len(b.Live(scenetest.KindConnector)); n != 1 {
			t.Fatalf("round %d: %d connectors", i, n)
		}
	}
	if len(b.Live(scenetest.KindGrid)) != 1 {
		t.Fatal("grid must be created once and kept")
	}

	if _, err := c.StartRound(surface.Coefficients{A: 1}); err != nil {
		t.Fatal(err)
	}
	if len(b.Live(scenetest.KindMarker)) != 0 || len(b.Live(scenetest.KindConnector)) != 0 {
		t.Fatal("new round must clear markers and connector")
	}
	if _, ok := c.MarkerPosition(scene.RoleTrue); ok {
		t.Fatal("marker position should be cleared")
	}

	c.Close()
	for _, r := range b.Created {
		if !r.Disposed {
			t.Fatalf("%s still live after Close", r.Kind)
		}
	}
	if b.DoubleDisposals != 0 {
		t.Fatalf("%d double disposals", b.DoubleDisposals)
	}
}

func TestStartRoundFailureAttachesNothing(t *testing.T) {
	b := scenetest.New()
	c, _ := newComposer(b)
	if _, err := c.StartRound(surface.Coefficients{A: 1}); err != nil {
		t.Fatal(err)
	}
	c.PlaceMarker(vmath.V3(0, 0, 0), scene.RoleTrue)

	_, err := c.StartRound(surface.Coefficients{A: math.Inf(1)})
	if !errors.Is(err, mesh.ErrDegenerate) {
		t.Fatalf("expected ErrDegenerate, got %v", err)
	}
	if c.CurrentMesh() != nil {
		t.Fatal("failed round left a mesh attached")
	}
	if len(b.Live(scenetest.KindSurface)) != 0 || len(b.Live(scenetest.KindMarker)) != 0 {
		t.Fatal("previous round resources must be released even when the build fails")
	}

	b.FailUploads = true
	if _, err := c.StartRound(surface.Coefficients{A: 1}); !errors.Is(err, scenetest.ErrUpload) {
		t.Fatalf("expected upload error, got %v", err)
	}
	if c.CurrentMesh() != nil {
		t.Fatal("mesh attached despite upload failure")
	}
}

func TestRotationResetsEachRound(t *testing.T) {
	b := scenetest.New()
	c, _ := newComposer(b)
	if _, err := c.StartRound(surface.Coefficients{}); err != nil {
		t.Fatal(err)
	}
	c.Rotate(0.5, -0.25)
	if c.Rotation != (vmath.Euler{X: 0.5, Y: -0.25}) {
		t.Fatalf("rotation %v", c.Rotation)
	}
	if _, err := c.StartRound(surface.Coefficients{}); err != nil {
		t.Fatal(err)
	}
	if c.Rotation != (vmath.Euler{}) {
		t.Fatalf("rotation not reset: %v", c.Rotation)
	}
}

func TestMarkerPosition(t *testing.T) {
	c, _ := newComposer(scenetest.New())
	p := vmath.V3(1, 2, 3)
	c.PlaceMarker(p, scene.RoleGuess)
	got, ok := c.MarkerPosition(scene.RoleGuess)
	if !ok || got != p {
		t.Fatalf("got %v %v", got, ok)
	}
	if scene.RoleGuess.String() != "guess" || scene.RoleTrue.String() != "true" {
		t.Fatal("role names")
	}
}
