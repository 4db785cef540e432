// internal/flatview/backend.go
package flatview

import (
	"image"
	"log"

	"paraboloid-guesser/internal/config"
	"paraboloid-guesser/internal/scene"
	"paraboloid-guesser/pkg/mesh"
	"paraboloid-guesser/pkg/vmath"

	"github.com/hajimehoshi/ebiten/v2"
)

// marker - сфера, которую View рисует кругом в экранных координатах.
type marker struct {
	pos    vmath.Vec3
	radius float64
	role   scene.Role
}

type segment struct{ a, b vmath.Vec3 }

// item - ресурс бэкенда. Dispose убирает его из списков отрисовки.
type item struct {
	b        *Backend
	disposed bool

	surface *mesh.Mesh
	marker  *marker
	line    *segment
	grid    []segment
}

func (it *item) Dispose() {
	if it.disposed {
		return
	}
	it.disposed = true
	it.b.remove(it)
}

// Backend - scene.Backend без GPU-мешей: все рисуется программной проекцией.
type Backend struct {
	items   []*item
	texture *ebiten.Image
}

// NewBackend создает пустой бэкенд.
func NewBackend() *Backend {
	return &Backend{}
}

// SetTexture реализует app.TextureSink.
func (b *Backend) SetTexture(img image.Image) {
	if img == nil {
		return
	}
	if b.texture != nil {
		b.texture.Deallocate()
	}
	b.texture = ebiten.NewImageFromImage(img)
	log.Printf("Texture uploaded: %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
}

// Texture возвращает текстуру поверхности или nil.
func (b *Backend) Texture() *ebiten.Image {
	return b.texture
}

// NewSurface реализует scene.Backend.
func (b *Backend) NewSurface(m *mesh.Mesh) (scene.Resource, error) {
	if m == nil || m.TriangleCount() == 0 {
		return nil, mesh.ErrDegenerate
	}
	return b.add(&item{surface: m}), nil
}

// NewMarker реализует scene.Backend.
func (b *Backend) NewMarker(p vmath.Vec3, role scene.Role) scene.Resource {
	r := config.MarkerGuessRadius
	if role == scene.RoleTrue {
		r = config.MarkerTrueRadius
	}
	return b.add(&item{marker: &marker{pos: p, radius: r, role: role}})
}

// NewConnector реализует scene.Backend.
func (b *Backend) NewConnector(a, c vmath.Vec3) scene.Resource {
	return b.add(&item{line: &segment{a: a, b: c}})
}

// NewGrid реализует scene.Backend. Сетка лежит в плоскости XZ контейнера.
func (b *Backend) NewGrid(size float64, divisions int) scene.Resource {
	half := size / 2
	step := size / float64(divisions)
	var lines []segment
	for i := 0; i <= divisions; i++ {
		k := -half + float64(i)*step
		lines = append(lines,
			segment{a: vmath.V3(-half, 0, k), b: vmath.V3(half, 0, k)},
			segment{a: vmath.V3(k, 0, -half), b: vmath.V3(k, 0, half)},
		)
	}
	return b.add(&item{grid: lines})
}

// Cleanup освобождает текстуру.
func (b *Backend) Cleanup() {
	if b.texture != nil {
		b.texture.Deallocate()
		b.texture = nil
	}
}

func (b *Backend) add(it *item) *item {
	it.b = b
	b.items = append(b.items, it)
	return it
}

func (b *Backend) remove(it *item) {
	for i, x := range b.items {
		if x == it {
			b.items = append(b.items[:i], b.items[i+1:]...)
			return
		}
	}
}
