package display

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a ViewingVolume with convenience methods to move and turn it.
type Camera struct {
	ViewingVolume

	up mgl32.Vec3
}

func NewCamera(v ViewingVolume) *Camera {
	if v == nil {
		v = NewViewingVolume()
	}
	return &Camera{
		ViewingVolume: v,
		up:            mgl32.Vec3{0, 1, 0},
	}
}

// Volume returns the wrapped volume.
func (c *Camera) Volume() ViewingVolume { return c.ViewingVolume }

// target is the volume the setters end up in. Relative movements are based
// on it so they accumulate while an interpolation is running.
func (c *Camera) target() ViewingVolume {
	v := c.ViewingVolume
	for {
		t, ok := v.(interface{ Target() ViewingVolume })
		if !ok {
			return v
		}
		v = t.Target()
	}
}

func (c *Camera) SetUp(up mgl32.Vec3) { c.up = up.Normalize() }
func (c *Camera) Up() mgl32.Vec3      { return c.up }

// Move translates the camera along its own axes, -z being forward.
func (c *Camera) Move(d mgl32.Vec3) {
	t := c.target()
	c.SetPosition(t.Position().Add(t.Direction().Rotate(d)))
}

// Rotate turns the camera by angle radians around an axis in camera space.
func (c *Camera) Rotate(angle float32, axis mgl32.Vec3) {
	c.SetDirection(c.target().Direction().Mul(mgl32.QuatRotate(angle, axis.Normalize())))
}

// LookAt points the camera at a position in world space.
func (c *Camera) LookAt(p mgl32.Vec3) {
	dir := p.Sub(c.target().Position())
	if dir.Len() == 0 {
		return
	}
	dir = dir.Normalize()

	rot := mgl32.QuatBetweenVectors(mgl32.Vec3{0, 0, -1}, dir)

	// keep the camera upright unless looking along the up axis
	if right := dir.Cross(c.up); right.Len() > 1e-6 {
		up := right.Cross(dir).Normalize()
		rot = mgl32.QuatBetweenVectors(rot.Rotate(mgl32.Vec3{0, 1, 0}), up).Mul(rot)
	}

	c.SetDirection(rot)
}

// Forward returns the viewing direction in world space.
func (c *Camera) Forward() mgl32.Vec3 {
	return c.Direction().Rotate(mgl32.Vec3{0, 0, -1})
}
