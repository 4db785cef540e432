// cmd/guesser-ebiten/main.go
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"paraboloid-guesser/internal/app"
	"paraboloid-guesser/internal/config"
	"paraboloid-guesser/internal/flatview"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/profile"
)

func main() {
	configPath := flag.String("config", config.SettingsFile, "Path to HJSON settings file")
	seed := flag.Int64("seed", 0, "PRNG seed (0 = time based)")
	texture := flag.String("texture", "", "Surface texture URL or file path")
	diag := flag.String("diag", "", "Diagnostics listen address, \"off\" to disable")
	profileDir := flag.String("profile", "", "Write a CPU profile into this directory")
	flag.Parse()

	if *profileDir != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*profileDir)).Stop()
	}

	logger := log.New(os.Stderr, "", log.LstdFlags)
	settings, err := config.LoadSettings(*configPath)
	if err != nil {
		logger.Fatalf("Failed to load settings: %v", err)
	}
	if *seed != 0 {
		settings.Seed = *seed
	}
	if *texture != "" {
		settings.Texture = *texture
	}
	switch *diag {
	case "":
	case "off":
		settings.DiagAddr = ""
	default:
		settings.DiagAddr = *diag
	}

	backend := flatview.NewBackend()
	hud := flatview.NewHUD(settings.Width, settings.Height)
	hud.ShowDebug = settings.ShowDebug
	g := app.NewGame(settings, backend, backend, hud, logger)
	g.Start(context.Background())
	defer backend.Cleanup()
	defer g.Cleanup()

	view := flatview.NewView(g, backend, hud, settings.Width, settings.Height)
	ebiten.SetWindowSize(settings.Width, settings.Height)
	ebiten.SetWindowTitle("Paraboloid Guesser")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(config.TargetFPS)
	if err := ebiten.RunGame(view); err != nil {
		log.Fatal(err)
	}
}
