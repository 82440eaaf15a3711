package display

import (
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/der-antikeks/simplesetup/scene"
)

// Plane in hessian normal form, xyz is the normal and w the distance.
type Plane mgl32.Vec4

func (p Plane) Normal() mgl32.Vec3 { return mgl32.Vec3{p[0], p[1], p[2]} }

// Distance returns the signed distance of point to the plane.
func (p Plane) Distance(point mgl32.Vec3) float32 {
	return point.Dot(p.Normal()) + p[3]
}

func (p Plane) normalize() Plane {
	l := p.Normal().Len()
	if l == 0 {
		return p
	}
	return Plane{p[0] / l, p[1] / l, p[2] / l, p[3] / l}
}

// Planes extracts the left, right, bottom, top, near and far planes of a
// combined projection * view matrix. Normals point inwards.
func Planes(m mgl32.Mat4) [6]Plane {
	ps := [6]Plane{
		{m[3] + m[0], m[7] + m[4], m[11] + m[8], m[15] + m[12]},
		{m[3] - m[0], m[7] - m[4], m[11] - m[8], m[15] - m[12]},
		{m[3] + m[1], m[7] + m[5], m[11] + m[9], m[15] + m[13]},
		{m[3] - m[1], m[7] - m[5], m[11] - m[9], m[15] - m[13]},
		{m[3] + m[2], m[7] + m[6], m[11] + m[10], m[15] + m[14]},
		{m[3] - m[2], m[7] - m[6], m[11] - m[10], m[15] - m[14]},
	}

	for i, p := range ps {
		ps[i] = p.normalize()
	}
	return ps
}

var frustumColor = mgl32.Vec4{1, 1, 0, 1}

// Frustum wraps a viewing volume and derives its clipping planes every time
// rendering is signaled.
type Frustum struct {
	ViewingVolume

	mu        sync.RWMutex
	planes    [6]Plane
	corners   [8]mgl32.Vec3
	visualize bool
	node      *scene.LineNode
}

func NewFrustum(v ViewingVolume) *Frustum {
	f := &Frustum{
		ViewingVolume: v,
		node:          scene.NewLineNode(nil, frustumColor),
	}
	f.node.SetName("frustum")
	f.update()
	return f
}

func (f *Frustum) Volume() ViewingVolume { return f.ViewingVolume }

func (f *Frustum) SignalRendering(dt time.Duration) {
	f.ViewingVolume.SignalRendering(dt)
	f.update()
}

func (f *Frustum) update() {
	pv := f.ProjectionMatrix().Mul4(f.ViewMatrix())
	planes := Planes(pv)

	var corners [8]mgl32.Vec3
	inv := pv.Inv()
	for i := range corners {
		ndc := mgl32.Vec3{-1, -1, -1}
		if i&1 != 0 {
			ndc[0] = 1
		}
		if i&2 != 0 {
			ndc[1] = 1
		}
		if i&4 != 0 {
			ndc[2] = 1
		}
		corners[i] = mgl32.TransformCoordinate(ndc, inv)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.planes = planes
	f.corners = corners
	if f.visualize {
		f.node.Lines = edges(corners)
	}
}

// edges connects the corners of the frustum box, indexed by their
// x, y and z bits.
func edges(c [8]mgl32.Vec3) []scene.Line {
	var ls []scene.Line
	for i := 0; i < 8; i++ {
		for _, bit := range []int{1, 2, 4} {
			if i&bit == 0 {
				ls = append(ls, scene.Line{From: c[i], To: c[i|bit]})
			}
		}
	}
	return ls
}

func (f *Frustum) Planes() [6]Plane {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.planes
}

// Corners returns the near plane corners followed by the far plane corners.
func (f *Frustum) Corners() [8]mgl32.Vec3 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.corners
}

func (f *Frustum) ContainsPoint(point mgl32.Vec3) bool {
	for _, p := range f.Planes() {
		if p.Distance(point) <= 0 {
			return false
		}
	}
	return true
}

func (f *Frustum) IntersectsSphere(center mgl32.Vec3, radius float32) bool {
	for _, p := range f.Planes() {
		if p.Distance(center) <= -radius {
			return false
		}
	}
	return true
}

type Intersection int

const (
	Disjoint Intersection = iota
	Intersects
	Contains
)

// ClassifySphere tells whether a sphere is outside, partially inside or
// completely inside the frustum.
func (f *Frustum) ClassifySphere(center mgl32.Vec3, radius float32) Intersection {
	result := Contains
	for _, p := range f.Planes() {
		d := p.Distance(center)
		if d <= -radius {
			return Disjoint
		}
		if d < radius {
			result = Intersects
		}
	}
	return result
}

// VisualizeClipping toggles updating the frustum node with the outline of
// the clipping volume.
func (f *Frustum) VisualizeClipping(enable bool) {
	f.mu.Lock()
	f.visualize = enable
	if !enable {
		f.node.Lines = nil
	}
	f.mu.Unlock()

	if enable {
		f.update()
	}
}

func (f *Frustum) IsVisualizing() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.visualize
}

// FrustumNode returns the line node showing the clipping volume, to be added
// to the scene.
func (f *Frustum) FrustumNode() *scene.LineNode {
	return f.node
}
