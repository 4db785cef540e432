// internal/camera/camera.go
package camera

import (
	"math"

	"paraboloid-guesser/internal/config"
	"paraboloid-guesser/pkg/vmath"

	"github.com/go-gl/mathgl/mgl64"
)

// Pose - положение камеры и точка, на которую она смотрит.
type Pose struct {
	Position vmath.Vec3
	Target   vmath.Vec3
	Up       vmath.Vec3
}

// Camera - перспективная камера сцены. Мутируется только через Framer и Orbit.
type Camera struct {
	Pose
	Fovy   float64 // вертикальный угол обзора в градусах
	Aspect float64
}

// New создает камеру в исходной позиции (12,12,12), как до первого кадрирования.
func New(width, height int) *Camera {
	c := &Camera{
		Pose: Pose{
			Position: vmath.V3(12, 12, 12),
			Up:       vmath.V3(0, 1, 0),
		},
		Fovy: config.CameraFovy,
	}
	c.Resize(width, height)
	return c
}

// Resize обновляет соотношение сторон. Размер не меньше MinViewport.
func (c *Camera) Resize(width, height int) {
	w := math.Max(float64(width), config.MinViewport)
	h := math.Max(float64(height), config.MinViewport)
	c.Aspect = w / h
}

// View возвращает матрицу вида для текущей позы.
func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position.Vec(), c.Target.Vec(), c.Up.Vec())
}

// Projection возвращает перспективную матрицу.
func (c *Camera) Projection() mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(c.Fovy), c.Aspect, config.CameraNear, config.CameraFar)
}

// Ray строит луч в мировых координатах из NDC (x,y ∈ [-1,1], y вверх).
// Точка на дальней плоскости получается обратной матрицей проекции и вида.
func (c *Camera) Ray(ndcX, ndcY float64) vmath.Ray {
	inv := c.Projection().Mul4(c.View()).Inv()
	far := inv.Mul4x1(mgl64.Vec4{ndcX, ndcY, 1, 1})
	p := vmath.FromVec(far.Vec3().Mul(1 / far.W()))
	return vmath.Ray{Origin: c.Position, Dir: p.Sub(c.Position).Normalize()}
}

// Project переводит мировую точку в NDC. ok=false, если точка за камерой.
func (c *Camera) Project(p vmath.Vec3) (ndcX, ndcY, depth float64, ok bool) {
	eye := c.View().Mul4x1(p.Vec().Vec4(1))
	depth = -eye.Z()
	if depth < config.CameraNear {
		return 0, 0, depth, false
	}
	clip := c.Projection().Mul4x1(eye)
	return clip.X() / clip.W(), clip.Y() / clip.W(), depth, true
}

// PointerToNDC переводит пиксели окна в NDC.
func PointerToNDC(px, py float64, width, height int) (float64, float64) {
	return px/float64(width)*2 - 1, -(py/float64(height))*2 + 1
}
