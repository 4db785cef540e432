// internal/flatview/view.go
package flatview

import (
	"image/color"
	"log"
	"math"
	"time"

	"paraboloid-guesser/internal/app"
	"paraboloid-guesser/internal/camera"
	"paraboloid-guesser/internal/config"
	"paraboloid-guesser/internal/game"
	"paraboloid-guesser/internal/interaction"
	"paraboloid-guesser/internal/scene"
	"paraboloid-guesser/pkg/mesh"
	"paraboloid-guesser/pkg/render"
	"paraboloid-guesser/pkg/vmath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// View - ebiten.Game поверх app.Game: программная проекция поверхности и HUD.
type View struct {
	game    *app.Game
	backend *Backend
	hud     *HUD
	painter *render.Painter
	white   *ebiten.Image

	width, height  int
	lastUpdateTime time.Time
	vertices       []ebiten.Vertex
	lastX, lastY   int
	cursor         interaction.Cursor
}

// NewView связывает игру с бэкендом и HUD, созданными для нее.
func NewView(g *app.Game, backend *Backend, hud *HUD, width, height int) *View {
	white := ebiten.NewImage(1, 1)
	white.Fill(color.White)
	light := render.NewLight(
		vmath.V3(config.LightDirection[0], config.LightDirection[1], config.LightDirection[2]),
		config.LightIntensity,
		config.AmbientIntensity*136/255,
	)
	return &View{
		game:           g,
		backend:        backend,
		hud:            hud,
		painter:        render.NewPainter(width, height, light),
		white:          white,
		width:          width,
		height:         height,
		lastUpdateTime: time.Now(),
	}
}

// Update реализует ebiten.Game.
func (v *View) Update() error {
	now := time.Now()
	deltaTime := now.Sub(v.lastUpdateTime).Seconds()
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	v.lastUpdateTime = now

	session := v.game.Session
	var err error
	switch v.hud.Update(session.Phase()) {
	case ActionSubmit:
		_, _ = session.Submit(v.hud.Values())
	case ActionAdvance:
		err = session.Advance()
	case ActionRestart:
		err = session.Restart()
	case ActionRetry:
		err = session.Retry()
	}
	if err != nil {
		log.Printf("WARNING: %v", err)
	}

	if session.Phase() != game.Loading {
		v.handlePointer()
	}
	v.game.Update(deltaTime)
	return nil
}

func (v *View) handlePointer() {
	c := v.game.Controller
	x, y := ebiten.CursorPosition()
	px, py := float64(x), float64(y)

	// начатый жест получает указатель до отпускания
	if !c.Busy() && v.hud.Captures(x, y, v.game.Session.Phase()) {
		v.setCursor(interaction.CursorDefault)
		v.lastX, v.lastY = x, y
		return
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		c.PointerDown(px, py)
	}
	if x != v.lastX || y != v.lastY {
		c.PointerMove(px, py)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) || (c.Busy() && !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)) {
		c.PointerUp(px, py)
	}
	if _, wy := ebiten.Wheel(); wy != 0 {
		c.Wheel(wy)
	}
	v.lastX, v.lastY = x, y
	v.setCursor(c.Cursor())
}

func (v *View) setCursor(c interaction.Cursor) {
	if c == v.cursor {
		return
	}
	v.cursor = c
	switch c {
	case interaction.CursorGrab:
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
	case interaction.CursorGrabbing:
		ebiten.SetCursorShape(ebiten.CursorShapeMove)
	default:
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}
}

// Draw реализует ebiten.Game.
func (v *View) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	rot := v.game.Composer.Rotation
	mat := rot.Matrix()
	cam := v.game.Camera

	for _, it := range v.backend.items {
		for _, l := range it.grid {
			v.line(screen, mat.Apply(l.a), mat.Apply(l.b), 1, config.GridLineColor)
		}
	}
	for _, it := range v.backend.items {
		if it.surface != nil {
			v.drawSurface(screen, it.surface, rot, cam)
		}
	}
	for _, it := range v.backend.items {
		if it.line != nil {
			v.line(screen, mat.Apply(it.line.a), mat.Apply(it.line.b), 2, config.ConnectorColor)
		}
	}
	for _, it := range v.backend.items {
		if it.marker != nil {
			v.drawMarker(screen, it.marker, mat, cam)
		}
	}

	v.hud.Draw(screen, v.game.Session.Phase())
}

func (v *View) drawSurface(screen *ebiten.Image, m *mesh.Mesh, rot vmath.Euler, cam *camera.Camera) {
	src := v.white
	v.painter.Base = config.SurfaceColor
	v.painter.TexWidth, v.painter.TexHeight = 1, 1
	if tex := v.backend.Texture(); tex != nil {
		src = tex
		b := tex.Bounds()
		v.painter.Base = color.RGBA{255, 255, 255, 255}
		v.painter.TexWidth, v.painter.TexHeight = float32(b.Dx()), float32(b.Dy())
	}
	opts := &ebiten.DrawTrianglesOptions{Filter: ebiten.FilterLinear}
	for _, batch := range v.painter.Paint(m, rot, cam, cam.Position) {
		v.vertices = v.vertices[:0]
		for _, pv := range batch.Vertices {
			v.vertices = append(v.vertices, ebiten.Vertex{
				DstX:   pv.DstX,
				DstY:   pv.DstY,
				SrcX:   pv.SrcX,
				SrcY:   pv.SrcY,
				ColorR: pv.R,
				ColorG: pv.G,
				ColorB: pv.B,
				ColorA: pv.A,
			})
		}
		screen.DrawTriangles(v.vertices, batch.Indices, src, opts)
	}
}

func (v *View) drawMarker(screen *ebiten.Image, m *marker, mat vmath.Mat3, cam *camera.Camera) {
	x, y, depth, ok := cam.Project(mat.Apply(m.pos))
	if !ok {
		return
	}
	p := v.painter.ToPixel(x, y)
	// радиус сферы в пикселях на данной глубине
	r := m.radius / (depth * math.Tan(cam.Fovy*math.Pi/360)) * float64(v.height) / 2
	c := config.GuessMarkerColor
	if m.role == scene.RoleTrue {
		c = config.TrueMarkerColor
	}
	vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), float32(max(r, 2)), c, true)
	vector.StrokeCircle(screen, float32(p.X), float32(p.Y), float32(max(r, 2)), 1, render.DarkenColor(c), true)
}

func (v *View) line(screen *ebiten.Image, a, b vmath.Vec3, width float32, c color.Color) {
	cam := v.game.Camera
	ax, ay, _, okA := cam.Project(a)
	bx, by, _, okB := cam.Project(b)
	if !okA || !okB {
		return
	}
	pa, pb := v.painter.ToPixel(ax, ay), v.painter.ToPixel(bx, by)
	vector.StrokeLine(screen, float32(pa.X), float32(pa.Y), float32(pb.X), float32(pb.Y), width, c, true)
}

// Layout реализует ebiten.Game: окно растягивается, сцена следует за ним.
func (v *View) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := max(outsideWidth, config.MinViewport), max(outsideHeight, config.MinViewport)
	if w != v.width || h != v.height {
		v.width, v.height = w, h
		v.painter.Width, v.painter.Height = w, h
		v.game.Resize(w, h)
		v.hud.Resize(w, h)
	}
	return w, h
}
