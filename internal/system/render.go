// internal/system/render.go
package system

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"
	"math"
	"unsafe"

	"paraboloid-guesser/internal/camera"
	"paraboloid-guesser/internal/config"
	"paraboloid-guesser/internal/scene"
	"paraboloid-guesser/pkg/mesh"
	"paraboloid-guesser/pkg/render"
	"paraboloid-guesser/pkg/vmath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type layer int

const (
	layerGrid layer = iota
	layerSurface
	layerMarker
	layerConnector
	layerCount
)

type drawable interface {
	draw()
}

// resource - общий хэндл для всех объектов сцены.
type resource struct {
	rs       *RenderSystemRL
	layer    layer
	item     drawable
	disposed bool
}

func (r *resource) Dispose() {
	if r.disposed {
		return
	}
	r.disposed = true
	r.rs.remove(r)
	if s, ok := r.item.(*surfaceModel); ok {
		rl.UnloadModel(s.model)
	}
}

type surfaceModel struct{ model rl.Model }

func (s *surfaceModel) draw() {
	// поверхность двусторонняя
	rl.DisableBackfaceCulling()
	rl.DrawModel(s.model, rl.Vector3Zero(), 1.0, rl.White)
	rl.EnableBackfaceCulling()
}

type sphere struct {
	pos    rl.Vector3
	radius float32
	color  rl.Color
}

func (s *sphere) draw() {
	rl.DrawSphereEx(s.pos, s.radius, config.MarkerRings, config.MarkerSlices, s.color)
}

type segment struct {
	a, b  rl.Vector3
	color rl.Color
}

func (s *segment) draw() {
	rl.DrawLine3D(s.a, s.b, s.color)
}

type grid struct {
	lines []segment
}

func (g *grid) draw() {
	for i := range g.lines {
		g.lines[i].draw()
	}
}

// RenderSystemRL - бэкенд сцены на Raylib. Все объекты рисуются внутри
// одного контейнера, повернутого на Euler-углы композитора.
type RenderSystemRL struct {
	light      render.Light
	texture    rl.Texture2D
	hasTexture bool
	layers     [layerCount][]*resource
}

// NewRenderSystemRL создает бэкенд. Окно Raylib должно быть уже открыто.
func NewRenderSystemRL() *RenderSystemRL {
	return &RenderSystemRL{
		light: render.NewLight(
			vmath.V3(config.LightDirection[0], config.LightDirection[1], config.LightDirection[2]),
			config.LightIntensity,
			config.AmbientIntensity*136/255,
		),
	}
}

// SetTexture загружает картинку в GPU. Вызывать из главного потока.
// Текстура применяется ко всем следующим поверхностям и к текущей.
func (s *RenderSystemRL) SetTexture(img image.Image) {
	if img == nil {
		return
	}
	if s.hasTexture {
		rl.UnloadTexture(s.texture)
	}
	cpu := rl.NewImageFromImage(img)
	s.texture = rl.LoadTextureFromImage(cpu)
	rl.UnloadImage(cpu)
	if s.texture.ID == 0 {
		s.hasTexture = false
		log.Printf("WARNING: GPU rejected %dx%d texture", img.Bounds().Dx(), img.Bounds().Dy())
		return
	}
	rl.GenTextureMipmaps(&s.texture)
	rl.SetTextureFilter(s.texture, rl.FilterTrilinear)
	s.hasTexture = true
	for _, r := range s.layers[layerSurface] {
		m := r.item.(*surfaceModel)
		rl.SetMaterialTexture(m.model.Materials, rl.MapDiffuse, s.texture)
	}
}

// NewSurface реализует scene.Backend.
func (s *RenderSystemRL) NewSurface(m *mesh.Mesh) (scene.Resource, error) {
	if m == nil || m.VertexCount() == 0 {
		return nil, errors.New("empty surface mesh")
	}
	if !rl.IsWindowReady() {
		return nil, errors.New("raylib window is not initialized")
	}
	base := config.SurfaceColor
	if s.hasTexture {
		base = color.RGBA{255, 255, 255, 255}
	}
	rm := toRaylibMesh(m, s.light, base)
	rl.UploadMesh(&rm, false)
	model := rl.LoadModelFromMesh(rm)
	if model.MeshCount == 0 {
		return nil, fmt.Errorf("upload surface: raylib returned an empty model for %d vertices", m.VertexCount())
	}
	if s.hasTexture {
		rl.SetMaterialTexture(model.Materials, rl.MapDiffuse, s.texture)
	}
	return s.add(layerSurface, &surfaceModel{model: model}), nil
}

// NewMarker реализует scene.Backend.
func (s *RenderSystemRL) NewMarker(p vmath.Vec3, role scene.Role) scene.Resource {
	sp := &sphere{pos: toRL(p), radius: config.MarkerGuessRadius, color: rlColor(config.GuessMarkerColor)}
	if role == scene.RoleTrue {
		sp.radius = config.MarkerTrueRadius
		sp.color = rlColor(config.TrueMarkerColor)
	}
	return s.add(layerMarker, sp)
}

// NewConnector реализует scene.Backend.
func (s *RenderSystemRL) NewConnector(a, b vmath.Vec3) scene.Resource {
	return s.add(layerConnector, &segment{a: toRL(a), b: toRL(b), color: rlColor(config.ConnectorColor)})
}

// NewGrid реализует scene.Backend. Сетка лежит в плоскости XZ контейнера.
func (s *RenderSystemRL) NewGrid(size float64, divisions int) scene.Resource {
	g := &grid{}
	half := float32(size / 2)
	step := float32(size / float64(divisions))
	center := divisions / 2
	for i := 0; i <= divisions; i++ {
		k := -half + float32(i)*step
		c := rlColor(config.GridLineColor)
		if i == center {
			c = rlColor(config.GridCenterColor)
		}
		g.lines = append(g.lines,
			segment{a: rl.NewVector3(-half, 0, k), b: rl.NewVector3(half, 0, k), color: c},
			segment{a: rl.NewVector3(k, 0, -half), b: rl.NewVector3(k, 0, half), color: c},
		)
	}
	return s.add(layerGrid, g)
}

// Draw рисует все живые объекты. Вызывать между BeginMode3D и EndMode3D.
func (s *RenderSystemRL) Draw(rot vmath.Euler) {
	rl.PushMatrix()
	rl.Rotatef(float32(rot.X*180/math.Pi), 1, 0, 0)
	rl.Rotatef(float32(rot.Y*180/math.Pi), 0, 1, 0)
	for _, l := range s.layers {
		for _, r := range l {
			r.item.draw()
		}
	}
	rl.PopMatrix()
}

// Cleanup выгружает текстуру и все оставшиеся модели.
func (s *RenderSystemRL) Cleanup() {
	for _, l := range s.layers {
		for _, r := range append([]*resource(nil), l...) {
			r.Dispose()
		}
	}
	if s.hasTexture {
		rl.UnloadTexture(s.texture)
		s.hasTexture = false
	}
	log.Println("Render resources unloaded.")
}

func (s *RenderSystemRL) add(l layer, item drawable) *resource {
	r := &resource{rs: s, layer: l, item: item}
	s.layers[l] = append(s.layers[l], r)
	return r
}

func (s *RenderSystemRL) remove(r *resource) {
	list := s.layers[r.layer]
	for i, x := range list {
		if x == r {
			s.layers[r.layer] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

// toRaylibMesh копирует меш в память, выделенную Raylib: UnloadModel освобождает ее сам.
// Освещение запекается в цвета вершин, стандартный шейдер Raylib его не считает.
func toRaylibMesh(m *mesh.Mesh, light render.Light, base color.RGBA) rl.Mesh {
	vc := m.VertexCount()
	rm := rl.Mesh{
		VertexCount:   int32(vc),
		TriangleCount: int32(m.TriangleCount()),
	}
	rm.Vertices = (*float32)(rl.MemAlloc(uint32(vc * 3 * 4)))
	rm.Normals = (*float32)(rl.MemAlloc(uint32(vc * 3 * 4)))
	rm.Texcoords = (*float32)(rl.MemAlloc(uint32(vc * 2 * 4)))
	rm.Colors = (*uint8)(rl.MemAlloc(uint32(vc * 4)))
	rm.Indices = (*uint16)(rl.MemAlloc(uint32(len(m.Indices) * 2)))

	vertices := unsafe.Slice(rm.Vertices, vc*3)
	normals := unsafe.Slice(rm.Normals, vc*3)
	texcoords := unsafe.Slice(rm.Texcoords, vc*2)
	colors := unsafe.Slice(rm.Colors, vc*4)
	indices := unsafe.Slice(rm.Indices, len(m.Indices))

	for i, p := range m.Positions {
		n := m.Normals[i]
		vertices[i*3], vertices[i*3+1], vertices[i*3+2] = float32(p.X), float32(p.Y), float32(p.Z)
		normals[i*3], normals[i*3+1], normals[i*3+2] = float32(n.X), float32(n.Y), float32(n.Z)
		// у текстур Raylib начало координат сверху
		texcoords[i*2], texcoords[i*2+1] = float32(m.UVs[i].X), float32(1-m.UVs[i].Y)
		c := render.Shade(base, light.Factor(n))
		colors[i*4], colors[i*4+1], colors[i*4+2], colors[i*4+3] = c.R, c.G, c.B, c.A
	}
	copy(indices, m.Indices)
	return rm
}

// CameraRL переводит камеру сцены в Camera3D.
func CameraRL(c *camera.Camera) rl.Camera3D {
	return rl.Camera3D{
		Position:   toRL(c.Position),
		Target:     toRL(c.Target),
		Up:         toRL(c.Up),
		Fovy:       float32(c.Fovy),
		Projection: rl.CameraPerspective,
	}
}

func toRL(v vmath.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}

func rlColor(c color.RGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}
