// cmd/guesser/main.go
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"paraboloid-guesser/internal/app"
	"paraboloid-guesser/internal/config"
	"paraboloid-guesser/internal/state"
	"paraboloid-guesser/internal/system"
	"paraboloid-guesser/internal/ui"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pkg/profile"
)

func main() {
	// --- Флаги командной строки ---
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

	// --- Настройки ---
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

	// --- Инициализация Raylib ---
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(settings.Width), int32(settings.Height), "Paraboloid Guesser")
	defer rl.CloseWindow()
	rl.SetWindowMinSize(config.MinViewport, config.MinViewport)
	rl.SetTargetFPS(config.TargetFPS)

	font := rl.GetFontDefault()

	// --- Инициализация игры ---
	renderSystem := system.NewRenderSystemRL()
	hud := ui.NewHUD(font, settings.Width, settings.Height)
	hud.ShowDebug = settings.ShowDebug
	g := app.NewGame(settings, renderSystem, renderSystem, hud, logger)
	g.Start(context.Background())

	sm := state.NewStateMachine()
	sm.SetState(state.NewLoadingState(sm, g, renderSystem, hud, font))

	lastUpdateTime := time.Now()

	// --- Главный цикл игры ---
	for !rl.WindowShouldClose() {
		now := time.Now()
		deltaTime := now.Sub(lastUpdateTime).Seconds()
		if deltaTime > config.MaxDeltaTime {
			deltaTime = config.MaxDeltaTime
		}
		lastUpdateTime = now

		sm.Update(deltaTime)

		// --- Отрисовка ---
		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(config.BackgroundColor.R, config.BackgroundColor.G, config.BackgroundColor.B, 255))
		sm.Draw()
		rl.EndDrawing()
	}

	sm.SetState(nil)
	g.Cleanup()
	renderSystem.Cleanup()
}
