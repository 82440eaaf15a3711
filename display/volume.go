package display

import (
	"math"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// ViewingVolume describes the position, orientation and projection of a
// view into the scene. With an identity direction the volume looks down the
// negative z axis, y is up.
type ViewingVolume interface {
	Position() mgl32.Vec3
	SetPosition(mgl32.Vec3)
	Direction() mgl32.Quat
	SetDirection(mgl32.Quat)

	// Fovy is the vertical field of view in radians.
	Fovy() float32
	SetFovy(float32)
	Aspect() float32
	SetAspect(float32)
	Near() float32
	SetNear(float32)
	Far() float32
	SetFar(float32)

	ViewMatrix() mgl32.Mat4
	ProjectionMatrix() mgl32.Mat4

	// SignalRendering is called by the renderer once per frame before the
	// matrices are read.
	SignalRendering(dt time.Duration)
}

// PerspectiveVolume is the default ViewingVolume.
type PerspectiveVolume struct {
	mu sync.RWMutex

	position  mgl32.Vec3
	direction mgl32.Quat

	fovy, aspect, near, far float32
}

func NewViewingVolume() *PerspectiveVolume {
	return &PerspectiveVolume{
		direction: mgl32.QuatIdent(),

		fovy:   math.Pi / 4,
		aspect: 4.0 / 3.0,
		near:   1,
		far:    3000,
	}
}

func (v *PerspectiveVolume) Position() mgl32.Vec3 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.position
}

func (v *PerspectiveVolume) SetPosition(p mgl32.Vec3) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.position = p
}

func (v *PerspectiveVolume) Direction() mgl32.Quat {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.direction
}

func (v *PerspectiveVolume) SetDirection(q mgl32.Quat) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.direction = q.Normalize()
}

func (v *PerspectiveVolume) Fovy() float32 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.fovy
}

func (v *PerspectiveVolume) SetFovy(f float32) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.fovy = f
}

func (v *PerspectiveVolume) Aspect() float32 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.aspect
}

func (v *PerspectiveVolume) SetAspect(a float32) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.aspect = a
}

func (v *PerspectiveVolume) Near() float32 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.near
}

func (v *PerspectiveVolume) SetNear(n float32) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.near = n
}

func (v *PerspectiveVolume) Far() float32 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.far
}

func (v *PerspectiveVolume) SetFar(f float32) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.far = f
}

func (v *PerspectiveVolume) ViewMatrix() mgl32.Mat4 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return viewMatrix(v.position, v.direction)
}

func (v *PerspectiveVolume) ProjectionMatrix() mgl32.Mat4 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return mgl32.Perspective(v.fovy, v.aspect, v.near, v.far)
}

func (v *PerspectiveVolume) SignalRendering(time.Duration) {}

// viewMatrix is the inverse of the volume's placement in the world.
func viewMatrix(position mgl32.Vec3, direction mgl32.Quat) mgl32.Mat4 {
	return direction.Inverse().Mat4().Mul4(
		mgl32.Translate3D(-position[0], -position[1], -position[2]))
}

// InterpolatedViewingVolume follows a wrapped volume smoothly. Setters move
// the target, getters return the interpolated state.
type InterpolatedViewingVolume struct {
	ViewingVolume

	mu        sync.RWMutex
	position  mgl32.Vec3
	direction mgl32.Quat

	// Speed is the fraction of the remaining distance covered per second.
	Speed float32
}

func NewInterpolatedViewingVolume(target ViewingVolume) *InterpolatedViewingVolume {
	return &InterpolatedViewingVolume{
		ViewingVolume: target,
		position:      target.Position(),
		direction:     target.Direction(),
		Speed:         10,
	}
}

func (v *InterpolatedViewingVolume) Target() ViewingVolume { return v.ViewingVolume }

func (v *InterpolatedViewingVolume) Position() mgl32.Vec3 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.position
}

func (v *InterpolatedViewingVolume) Direction() mgl32.Quat {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.direction
}

// Snap jumps to the target without interpolation.
func (v *InterpolatedViewingVolume) Snap() {
	p, d := v.ViewingVolume.Position(), v.ViewingVolume.Direction()

	v.mu.Lock()
	defer v.mu.Unlock()
	v.position, v.direction = p, d
}

func (v *InterpolatedViewingVolume) SignalRendering(dt time.Duration) {
	v.ViewingVolume.SignalRendering(dt)

	t := float32(dt.Seconds()) * v.Speed
	if t > 1 {
		t = 1
	}
	if t <= 0 {
		return
	}

	p, d := v.ViewingVolume.Position(), v.ViewingVolume.Direction()

	v.mu.Lock()
	defer v.mu.Unlock()
	v.position = v.position.Add(p.Sub(v.position).Mul(t))
	v.direction = mgl32.QuatNlerp(v.direction, d, t)
}

func (v *InterpolatedViewingVolume) ViewMatrix() mgl32.Mat4 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return viewMatrix(v.position, v.direction)
}
