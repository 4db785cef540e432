// internal/interaction/controller.go
package interaction

import (
	"paraboloid-guesser/internal/camera"
	"paraboloid-guesser/internal/config"
	"paraboloid-guesser/pkg/mesh"
	"paraboloid-guesser/pkg/vmath"
)

// State - состояние указателя относительно поверхности.
type State int

const (
	Idle State = iota
	Hovering
	Dragging
)

func (s State) String() string {
	switch s {
	case Hovering:
		return "hovering"
	case Dragging:
		return "dragging"
	default:
		return "idle"
	}
}

// Cursor - подсказка для слоя отображения.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorGrab
	CursorGrabbing
)

// Target - то, что можно вращать и по чему делается хит-тест (scene.Composer).
type Target interface {
	CurrentMesh() *mesh.Mesh
	ToLocal(r vmath.Ray) vmath.Ray
	Rotate(dPitch, dYaw float64)
}

// OrbitControl - орбитальная камера, которая уступает ввод на время перетаскивания.
type OrbitControl interface {
	Enabled() bool
	SetEnabled(enabled bool)
	Rotate(dx, dy float64)
	Zoom(steps float64)
}

// Controller - машина состояний Idle/Hovering/Dragging.
type Controller struct {
	target Target
	cam    *camera.Camera
	orbit  OrbitControl

	width, height int

	state       State
	cursor      Cursor
	last        vmath.Vec2 // последняя позиция указателя в долях окна
	orbitActive bool
}

// NewController создает контроллер. orbit может быть nil.
func NewController(target Target, cam *camera.Camera, orbit OrbitControl, width, height int) *Controller {
	c := &Controller{target: target, cam: cam, orbit: orbit}
	c.Resize(width, height)
	return c
}

// Resize запоминает фактический размер окна в пикселях.
// Ограничение MinViewport касается только соотношения сторон камеры.
func (c *Controller) Resize(width, height int) {
	c.width = max(width, 1)
	c.height = max(height, 1)
}

// State возвращает текущее состояние.
func (c *Controller) State() State {
	return c.state
}

// Cursor возвращает подсказку курсора.
func (c *Controller) Cursor() Cursor {
	return c.cursor
}

// Busy сообщает, что идет жест: перетаскивание поверхности или вращение орбиты.
// Пока жест не завершен, фронтенд должен доставлять указатель контроллеру.
func (c *Controller) Busy() bool {
	return c.state == Dragging || c.orbitActive
}

// HitTest проверяет луч из точки окна против меша текущего раунда.
// Меш всегда берется у Target, поэтому старый меш проверить невозможно.
func (c *Controller) HitTest(px, py float64) (mesh.Hit, bool) {
	m := c.target.CurrentMesh()
	if m == nil {
		return mesh.Hit{}, false
	}
	ndcX, ndcY := camera.PointerToNDC(px, py, c.width, c.height)
	local := c.target.ToLocal(c.cam.Ray(ndcX, ndcY))
	return m.Intersect(local)
}

// PointerDown: попали в поверхность - начинаем вращать ее, иначе отдаем жест орбите.
func (c *Controller) PointerDown(px, py float64) {
	if _, hit := c.HitTest(px, py); hit {
		c.state = Dragging
		c.cursor = CursorGrabbing
		if c.orbit != nil {
			c.orbit.SetEnabled(false)
		}
		c.last = c.normalized(px, py)
		return
	}
	if c.orbit != nil && c.orbit.Enabled() {
		c.orbitActive = true
		c.last = c.normalized(px, py)
	}
}

// PointerMove вращает контейнер при перетаскивании или обновляет hover.
func (c *Controller) PointerMove(px, py float64) {
	p := c.normalized(px, py)
	switch {
	case c.state == Dragging:
		dx, dy := p.X-c.last.X, p.Y-c.last.Y
		// горизонталь -> yaw, вертикаль -> pitch
		c.target.Rotate(dy*config.DragRotationSpeed, dx*config.DragRotationSpeed)
		c.last = p
	case c.orbitActive:
		c.orbit.Rotate(p.X-c.last.X, p.Y-c.last.Y)
		c.last = p
	default:
		c.updateHover(px, py)
	}
}

// PointerUp завершает любой жест, где бы ни был отпущен указатель.
func (c *Controller) PointerUp(px, py float64) {
	if c.state == Dragging {
		c.state = Idle
		if c.orbit != nil {
			c.orbit.SetEnabled(true)
		}
	}
	c.orbitActive = false
	c.updateHover(px, py)
}

// Wheel передает прокрутку в зум орбиты.
func (c *Controller) Wheel(steps float64) {
	if c.orbit != nil && c.state != Dragging {
		c.orbit.Zoom(steps)
	}
}

func (c *Controller) updateHover(px, py float64) {
	if _, hit := c.HitTest(px, py); hit {
		c.state = Hovering
		c.cursor = CursorGrab
		return
	}
	c.state = Idle
	c.cursor = CursorDefault
}

func (c *Controller) normalized(px, py float64) vmath.Vec2 {
	return vmath.Vec2{X: px / float64(c.width), Y: py / float64(c.height)}
}
