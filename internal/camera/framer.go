package camera

import (
	"paraboloid-guesser/internal/config"
	"paraboloid-guesser/pkg/vmath"
)

// FramePose ставит камеру на диагональ (1,1,1) от центра бокса на расстоянии
// maxExtent*FitDistanceFactor. Эвристика грубая, но вся поверхность всегда в кадре.
func FramePose(box vmath.Box) Pose {
	center := box.Center()
	maxExtent := box.Size().MaxComponent()
	dir := vmath.V3(1, 1, 1).Normalize()
	return Pose{
		Position: center.Add(dir.Scale(maxExtent * config.FitDistanceFactor)),
		Target:   center,
		Up:       vmath.V3(0, 1, 0),
	}
}

// Framer применяет кадрирование к камере и сбрасывает цель орбиты.
type Framer struct {
	Camera *Camera
	Orbit  *Orbit // может быть nil
}

// NewFramer создает Framer.
func NewFramer(cam *Camera, orbit *Orbit) *Framer {
	return &Framer{Camera: cam, Orbit: orbit}
}

// Frame кадрирует бокс и возвращает новую позу.
func (f *Framer) Frame(box vmath.Box) Pose {
	pose := FramePose(box)
	f.Camera.Pose = pose
	if f.Orbit != nil {
		f.Orbit.Reset(pose.Target)
	}
	return pose
}
