// internal/app/game.go
package app

import (
	"context"
	"image"
	"log"
	"time"

	"paraboloid-guesser/internal/assets"
	"paraboloid-guesser/internal/camera"
	"paraboloid-guesser/internal/config"
	"paraboloid-guesser/internal/event"
	"paraboloid-guesser/internal/game"
	"paraboloid-guesser/internal/interaction"
	"paraboloid-guesser/internal/scene"
	"paraboloid-guesser/internal/telemetry"
	"paraboloid-guesser/internal/utils"
)

// TextureSink принимает загруженную текстуру в главном потоке.
type TextureSink interface {
	SetTexture(img image.Image)
}

// TextureStatus - данные события TextureResolved.
type TextureStatus struct {
	Source string `json:"source"`
	Loaded bool   `json:"loaded"`
	Error  string `json:"error,omitempty"`
}

// Game связывает сессию, сцену, камеру, ввод и диагностику. Один экземпляр на окно.
type Game struct {
	Settings        config.Settings
	EventDispatcher *event.Dispatcher
	Rng             *utils.PRNGService
	Camera          *camera.Camera
	Orbit           *camera.Orbit
	Composer        *scene.Composer
	Session         *game.Session
	Controller      *interaction.Controller
	Textures        *assets.TextureLoader
	Diagnostics     *telemetry.Server

	sink         TextureSink
	logger       *log.Logger
	cancel       context.CancelFunc
	textureReady bool
}

// NewGame собирает игру вокруг бэкенда отрисовки и презентера.
// sink может быть nil, если бэкенд не умеет текстуры.
func NewGame(settings config.Settings, backend scene.Backend, sink TextureSink, presenter game.Presenter, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.Default()
	}
	dispatcher := event.NewDispatcher()
	rng := utils.NewPRNGService(settings.Seed)
	cam := camera.New(settings.Width, settings.Height)
	orbit := camera.NewOrbit()
	composer := scene.NewComposer(backend, camera.NewFramer(cam, orbit), settings.Range, settings.Resolution, logger)
	textures := assets.NewTextureLoader(settings.Texture, nil, logger)

	g := &Game{
		Settings:        settings,
		EventDispatcher: dispatcher,
		Rng:             rng,
		Camera:          cam,
		Orbit:           orbit,
		Composer:        composer,
		Textures:        textures,
		Diagnostics:     telemetry.NewServer(logger),
		sink:            sink,
		logger:          logger,
	}
	g.Session = game.NewSession(rng, composer, game.Options{
		Range:     settings.Range,
		Ready:     textures.Ready(),
		Presenter: presenter,
		Events:    dispatcher,
		Logger:    logger,
	})
	g.Controller = interaction.NewController(composer, cam, orbit, settings.Width, settings.Height)
	g.Diagnostics.Attach(dispatcher)
	logger.Printf("Game created: seed %d, range %.1f, resolution %d", rng.Seed(), settings.Range, settings.Resolution)
	return g
}

// Start запускает загрузку текстуры и диагностический сервер.
// Первый раунд начнется в Update, когда текстура будет готова.
// Ошибка диагностического сервера только логируется.
func (g *Game) Start(ctx context.Context) {
	ctx, g.cancel = context.WithCancel(ctx)
	g.Textures.Start(ctx)
	if err := g.Diagnostics.Start(g.Settings.DiagAddr); err != nil {
		g.logger.Printf("WARNING: %v", err)
	}
}

// Update - один кадр логики: текстура, запуск раунда, затухание орбиты.
func (g *Game) Update(deltaTime float64) {
	g.resolveTexture()
	g.Session.Tick()
	g.Orbit.Update(g.Camera)
}

// resolveTexture отдает текстуру бэкенду до того, как сессия построит первую поверхность.
func (g *Game) resolveTexture() {
	if g.textureReady {
		return
	}
	select {
	case <-g.Textures.Ready():
	default:
		return
	}
	g.textureReady = true
	img, err := g.Textures.Result()
	status := TextureStatus{Source: g.Textures.Source(), Loaded: err == nil}
	if err != nil {
		status.Error = err.Error()
	} else if g.sink != nil {
		g.sink.SetTexture(img)
	}
	g.EventDispatcher.Dispatch(event.Event{Type: event.TextureResolved, Data: status})
}

// Resize обновляет камеру и контроллер.
func (g *Game) Resize(width, height int) {
	g.Camera.Resize(width, height)
	g.Controller.Resize(width, height)
}

// Cleanup освобождает сцену и останавливает фоновые горутины.
func (g *Game) Cleanup() {
	if g.cancel != nil {
		g.cancel()
	}
	g.EventDispatcher.Detach(g.Diagnostics)
	g.Composer.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := g.Diagnostics.Shutdown(ctx); err != nil {
		g.logger.Printf("WARNING: diagnostics shutdown: %v", err)
	}
}
