package app

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"paraboloid-guesser/internal/config"
	"paraboloid-guesser/internal/event"
	"paraboloid-guesser/internal/game"
	"paraboloid-guesser/internal/scene/scenetest"
)

type textureRecorder struct {
	images []image.Image
}

func (r *textureRecorder) SetTexture(img image.Image) {
	r.images = append(r.images, img)
}

func testSettings(texture string) config.Settings {
	s := config.DefaultSettings()
	s.Texture = texture
	s.DiagAddr = ""
	s.Resolution = 16
	s.Seed = 7
	return s
}

// runUntilPlaying крутит кадры, пока не начнется первый раунд.
func runUntilPlaying(t *testing.T, g *Game) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for g.Session.Phase() == game.Loading {
		if time.Now().After(deadline) {
			t.Fatal("first round never started")
		}
		g.Update(1.0 / 60)
		time.Sleep(time.Millisecond)
	}
}

func TestTextureReachesBackendBeforeFirstRound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tex.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.White)
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	backend := scenetest.New()
	sink := &textureRecorder{}
	g := NewGame(testSettings(path), backend, sink, nil, log.New(io.Discard, "", 0))

	var statuses []TextureStatus
	var roundsSeenWithTexture []int
	g.EventDispatcher.Subscribe(event.TextureResolved, event.ListenerFunc(func(e event.Event) {
		statuses = append(statuses, e.Data.(TextureStatus))
	}))
	g.EventDispatcher.Subscribe(event.RoundStarted, event.ListenerFunc(func(e event.Event) {
		roundsSeenWithTexture = append(roundsSeenWithTexture, len(sink.images))
	}))

	g.Start(context.Background())
	defer g.Cleanup()
	runUntilPlaying(t, g)

	if len(statuses) != 1 || !statuses[0].Loaded {
		t.Fatalf("texture statuses %+v", statuses)
	}
	if len(roundsSeenWithTexture) != 1 || roundsSeenWithTexture[0] != 1 {
		t.Fatalf("round 1 started before the texture was handed over: %v", roundsSeenWithTexture)
	}
	if len(backend.Live(scenetest.KindSurface)) != 1 {
		t.Fatal("no surface after the first round started")
	}
}

func TestMissingTextureStillPlays(t *testing.T) {
	sink := &textureRecorder{}
	g := NewGame(testSettings(filepath.Join(t.TempDir(), "missing.jpg")), scenetest.New(), sink, nil, log.New(io.Discard, "", 0))
	g.Start(context.Background())
	defer g.Cleanup()
	runUntilPlaying(t, g)

	if g.Session.Phase() != game.AwaitingGuess {
		t.Fatalf("phase %v", g.Session.Phase())
	}
	if len(sink.images) != 0 {
		t.Fatal("sink received an image for a missing file")
	}
}

func TestCleanupReleasesScene(t *testing.T) {
	backend := scenetest.New()
	g := NewGame(testSettings(""), backend, nil, nil, log.New(io.Discard, "", 0))
	g.Start(context.Background())
	runUntilPlaying(t, g)
	if _, err := g.Session.SubmitGuess(g.Session.Target()); err != nil {
		t.Fatal(err)
	}

	g.Resize(50, 50)
	g.Cleanup()
	for _, r := range backend.Created {
		if !r.Disposed {
			t.Fatalf("%s leaked after cleanup", r.Kind)
		}
	}
}
