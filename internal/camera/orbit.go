package camera

import (
	"math"

	"paraboloid-guesser/internal/config"
	"paraboloid-guesser/internal/utils"
	"paraboloid-guesser/pkg/vmath"
)

const polarEpsilon = 1e-6

// Orbit - орбитальное управление камерой вокруг Target с затуханием.
// Пока пользователь вращает поверхность, орбита отключена.
type Orbit struct {
	Target  vmath.Vec3
	Damping float64

	enabled    bool
	deltaTheta float64
	deltaPhi   float64
	scale      float64
}

// NewOrbit создает включенную орбиту с затуханием из конфига.
func NewOrbit() *Orbit {
	return &Orbit{
		Damping: config.OrbitDamping,
		enabled: true,
		scale:   1,
	}
}

// Enabled сообщает, принимает ли орбита ввод.
func (o *Orbit) Enabled() bool {
	return o.enabled
}

// SetEnabled включает или приостанавливает обработку ввода.
func (o *Orbit) SetEnabled(enabled bool) {
	o.enabled = enabled
}

// Reset переносит цель и гасит накопленную инерцию.
func (o *Orbit) Reset(target vmath.Vec3) {
	o.Target = target
	o.deltaTheta, o.deltaPhi, o.scale = 0, 0, 1
}

// Rotate добавляет поворот по азимуту (dx) и полярному углу (dy), в долях окна.
func (o *Orbit) Rotate(dx, dy float64) {
	if !o.enabled {
		return
	}
	o.deltaTheta -= dx * config.OrbitRotateSpeed
	o.deltaPhi -= dy * config.OrbitRotateSpeed
}

// Zoom приближает (steps > 0) или отдаляет камеру.
func (o *Orbit) Zoom(steps float64) {
	if !o.enabled || steps == 0 {
		return
	}
	o.scale *= math.Pow(config.OrbitZoomStep, steps)
}

// Update применяет накопленный ввод к камере. Вызывается каждый кадр.
func (o *Orbit) Update(c *Camera) {
	offset := c.Position.Sub(o.Target)
	radius := offset.Len()
	if radius == 0 {
		return
	}
	// сферические координаты относительно оси Y
	theta := math.Atan2(offset.X, offset.Z)
	phi := math.Acos(utils.Clamp(offset.Y/radius, -1, 1))

	if o.Damping > 0 {
		theta += o.deltaTheta * o.Damping
		phi += o.deltaPhi * o.Damping
		o.deltaTheta *= 1 - o.Damping
		o.deltaPhi *= 1 - o.Damping
	} else {
		theta += o.deltaTheta
		phi += o.deltaPhi
		o.deltaTheta, o.deltaPhi = 0, 0
	}
	theta = utils.NormalizeAngle(theta)
	phi = utils.Clamp(phi, polarEpsilon, math.Pi-polarEpsilon)
	radius = utils.Clamp(radius*o.scale, config.OrbitMinDistance, config.OrbitMaxDistance)
	o.scale = 1

	sinPhi := math.Sin(phi)
	c.Position = o.Target.Add(vmath.V3(
		radius*sinPhi*math.Sin(theta),
		radius*math.Cos(phi),
		radius*sinPhi*math.Cos(theta),
	))
	c.Target = o.Target
}
