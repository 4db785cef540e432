// internal/scene/composer.go
package scene

import (
	"fmt"
	"log"

	"paraboloid-guesser/internal/camera"
	"paraboloid-guesser/internal/config"
	"paraboloid-guesser/pkg/mesh"
	"paraboloid-guesser/pkg/surface"
	"paraboloid-guesser/pkg/vmath"
)

// Role - какой маркер: правильная точка или догадка игрока.
type Role int

const (
	RoleTrue Role = iota
	RoleGuess
	roleCount
)

func (r Role) String() string {
	switch r {
	case RoleTrue:
		return "true"
	case RoleGuess:
		return "guess"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// Resource - графический ресурс бэкенда. Dispose освобождает GPU/память.
type Resource interface {
	Dispose()
}

// Backend - возможности слоя отрисовки, которые нужны сцене.
// Все ресурсы живут внутри одного вращаемого контейнера.
type Backend interface {
	NewSurface(m *mesh.Mesh) (Resource, error)
	NewMarker(p vmath.Vec3, role Role) Resource
	NewConnector(a, b vmath.Vec3) Resource
	NewGrid(size float64, divisions int) Resource
}

// Composer - единственный владелец ресурсов раунда. Все изменения сцены идут через него.
type Composer struct {
	backend    Backend
	framer     *camera.Framer
	logger     *log.Logger
	halfWidth  float64
	resolution int

	// Rotation - общий поворот контейнера: поверхность, маркеры, отрезок и сетка.
	Rotation vmath.Euler

	surface    *mesh.Mesh
	surfaceRes Resource
	markers    [roleCount]Resource
	markerPos  [roleCount]*vmath.Vec3
	connector  Resource
	grid       Resource
}

// NewComposer создает композитор. framer может быть nil (например, в тестах).
func NewComposer(backend Backend, framer *camera.Framer, halfWidth float64, resolution int, logger *log.Logger) *Composer {
	if logger == nil {
		logger = log.Default()
	}
	return &Composer{
		backend:    backend,
		framer:     framer,
		logger:     logger,
		halfWidth:  halfWidth,
		resolution: resolution,
	}
}

// StartRound освобождает ресурсы прошлого раунда и строит новую поверхность.
// При ошибке к сцене ничего не прикрепляется.
func (c *Composer) StartRound(coeffs surface.Coefficients) (*mesh.Mesh, error) {
	c.clearRound()
	c.Rotation = vmath.Euler{}

	m, err := mesh.Build(coeffs, c.halfWidth, c.resolution)
	if err != nil {
		return nil, fmt.Errorf("build surface %s: %w", coeffs, err)
	}
	res, err := c.backend.NewSurface(m)
	if err != nil {
		return nil, fmt.Errorf("upload surface: %w", err)
	}
	c.surface = m
	c.surfaceRes = res

	// Сетка создается один раз и живет между раундами
	if c.grid == nil {
		c.grid = c.backend.NewGrid(config.GridSize, config.GridDivisions)
	}
	if c.framer != nil {
		c.framer.Frame(m.Bounds)
	}
	return m, nil
}

// PlaceMarker ставит маркер роли, заменяя предыдущий той же роли.
func (c *Composer) PlaceMarker(p vmath.Vec3, role Role) {
	if role < 0 || role >= roleCount {
		c.logger.Printf("WARNING: unknown marker role %v", role)
		return
	}
	if c.markers[role] != nil {
		c.markers[role].Dispose()
	}
	pos := p
	c.markers[role] = c.backend.NewMarker(p, role)
	c.markerPos[role] = &pos
}

// DrawConnector заменяет отрезок между двумя точками.
func (c *Composer) DrawConnector(a, b vmath.Vec3) {
	if c.connector != nil {
		c.connector.Dispose()
	}
	c.connector = c.backend.NewConnector(a, b)
}

// CurrentMesh - поверхность активного раунда или nil. Хит-тест берет меш только отсюда.
func (c *Composer) CurrentMesh() *mesh.Mesh {
	return c.surface
}

// MarkerPosition возвращает позицию маркера роли, если он есть.
func (c *Composer) MarkerPosition(role Role) (vmath.Vec3, bool) {
	if role < 0 || role >= roleCount || c.markerPos[role] == nil {
		return vmath.Vec3{}, false
	}
	return *c.markerPos[role], true
}

// Rotate добавляет поворот контейнера (pitch, yaw) в радианах.
func (c *Composer) Rotate(dPitch, dYaw float64) {
	c.Rotation.X += dPitch
	c.Rotation.Y += dYaw
}

// ToLocal переводит мировой луч в систему координат контейнера.
func (c *Composer) ToLocal(r vmath.Ray) vmath.Ray {
	return c.Rotation.ToLocal(r)
}

// Close освобождает вообще все, включая сетку.
func (c *Composer) Close() {
	c.clearRound()
	if c.grid != nil {
		c.grid.Dispose()
		c.grid = nil
	}
}

func (c *Composer) clearRound() {
	for role := range c.markers {
		if c.markers[role] != nil {
			c.markers[role].Dispose()
			c.markers[role] = nil
			c.markerPos[role] = nil
		}
	}
	if c.connector != nil {
		c.connector.Dispose()
		c.connector = nil
	}
	if c.surfaceRes != nil {
		c.surfaceRes.Dispose()
		c.surfaceRes = nil
	}
	c.surface = nil
}
