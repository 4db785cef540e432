// internal/config/config.go
package config

import (
	"image/color"
	"math"
)

const (
	ScreenWidth  = 1200
	ScreenHeight = 900
	MinViewport  = 100 // минимальный размер окна при ресайзе
	MaxDeltaTime = 0.06
	TargetFPS    = 60

	DomainRange    = 5.0 // x,y ∈ [-DomainRange, DomainRange]
	MeshResolution = 120 // число ячеек сетки по каждой оси
	Rounds         = 3
	MaxRoundScore  = 33.3
	MaxTotalScore  = 100.0

	CameraFovy        = 45.0
	CameraNear        = 0.1
	CameraFar         = 1000.0
	FitDistanceFactor = 1.8
	DragRotationSpeed = math.Pi // радиан на ширину/высоту окна
	OrbitDamping      = 0.08
	OrbitRotateSpeed  = 2 * math.Pi
	OrbitZoomStep     = 0.95
	OrbitMinDistance  = 1.0
	OrbitMaxDistance  = 500.0

	GridSize      = DomainRange * 6
	GridDivisions = 60

	MarkerTrueRadius  = 0.18
	MarkerGuessRadius = 0.16
	MarkerRings       = 12
	MarkerSlices      = 16

	HUDFontSize     = 20
	HUDPadding      = 12
	InputWidth      = 110
	InputHeight     = 32
	ButtonWidth     = 140
	ButtonHeight    = 36
	ModalWidth      = 460
	ModalHeight     = 330
	ScoreBarHeight  = 18
	ClickCooldownMs = 150

	DefaultTextureURL = "https://threejs.org/examples/textures/land_ocean_ice_cloud_2048.jpg"
	DefaultDiagAddr   = "localhost:6060"
	SettingsFile      = "guesser.hjson"
)

var (
	BackgroundColor  = color.RGBA{7, 18, 36, 255}
	TrueMarkerColor  = color.RGBA{0, 255, 136, 255}
	GuessMarkerColor = color.RGBA{255, 51, 68, 255}
	ConnectorColor   = color.RGBA{255, 255, 0, 255}
	GridCenterColor  = color.RGBA{43, 59, 75, 255}
	GridLineColor    = color.RGBA{22, 32, 42, 255}
	SurfaceColor     = color.RGBA{200, 200, 200, 255}
	TextLightColor   = color.RGBA{240, 240, 240, 255}
	TextDimColor     = color.RGBA{150, 165, 185, 255}
	PanelColor       = color.RGBA{12, 26, 48, 230}
	OverlayColor     = color.RGBA{0, 0, 0, 140}
	ScoreBarColor    = color.RGBA{0, 200, 120, 255}
	ScoreBarBgColor  = color.RGBA{40, 52, 70, 255}
	ErrorTextColor   = color.RGBA{255, 110, 110, 255}
	ButtonColor      = color.RGBA{0, 200, 120, 255}
	ButtonHoverColor = color.RGBA{0, 235, 145, 255}
	InputColor       = color.RGBA{20, 36, 60, 255}

	// Направленный свет + ambient, как в исходной сцене
	LightDirection   = [3]float64{5, 10, 7}
	LightIntensity   = 0.9
	AmbientIntensity = 0.6
)
