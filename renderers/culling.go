package renderers

import (
	"math"
	"sort"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/der-antikeks/simplesetup/display"
	"github.com/der-antikeks/simplesetup/scene"
)

// Culler decides which meshes of a frame are drawn.
type Culler interface {
	// Update is called once per frame after the volume was signaled.
	Update(root scene.Node, volume display.ViewingVolume)
	IsVisible(*scene.MeshNode) bool
}

// SphereClassifier is implemented by volumes that can test bounding
// spheres, like display.Frustum.
type SphereClassifier interface {
	ClassifySphere(center mgl32.Vec3, radius float32) display.Intersection
}

// FrustumCuller tests the bounding sphere of every mesh against the
// frustum. Volumes without clipping planes show everything.
type FrustumCuller struct {
	mu      sync.RWMutex
	visible map[*scene.MeshNode]bool
	all     bool
}

func NewFrustumCuller() *FrustumCuller {
	return &FrustumCuller{all: true}
}

func (c *FrustumCuller) Update(root scene.Node, volume display.ViewingVolume) {
	classifier, ok := volume.(SphereClassifier)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.all = !ok || root == nil
	if c.all {
		c.visible = nil
		return
	}

	c.visible = map[*scene.MeshNode]bool{}
	for _, m := range Meshes(root) {
		center, radius := m.BoundingSphere()
		if classifier.ClassifySphere(center, radius) != display.Disjoint {
			c.visible[m] = true
		}
	}
}

func (c *FrustumCuller) IsVisible(m *scene.MeshNode) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.all || c.visible[m]
}

// Meshes returns all mesh nodes below root in drawing order.
func Meshes(root scene.Node) []*scene.MeshNode {
	var ms []*scene.MeshNode
	if root == nil {
		return ms
	}

	scene.Inspect(root, func(n scene.Node) bool {
		if m, ok := n.(*scene.MeshNode); ok && m.Mesh != nil {
			ms = append(ms, m)
		}
		return true
	})
	return ms
}

// AcceleratedView culls with a bounding sphere tree, so whole groups of
// meshes are accepted or rejected by a single test.
type AcceleratedView struct {
	mu      sync.RWMutex
	tree    *SphereTree
	visible map[*scene.MeshNode]bool
	all     bool
	tests   int
}

func NewAcceleratedView() *AcceleratedView {
	return &AcceleratedView{all: true}
}

func (v *AcceleratedView) Update(root scene.Node, volume display.ViewingVolume) {
	tree := NewSphereTree(Meshes(root))
	classifier, ok := volume.(SphereClassifier)

	v.mu.Lock()
	defer v.mu.Unlock()

	v.tree = tree
	v.all = !ok
	v.visible = nil
	v.tests = 0
	if v.all {
		return
	}

	v.visible = map[*scene.MeshNode]bool{}
	v.tests = tree.Query(classifier, func(m *scene.MeshNode) {
		v.visible[m] = true
	})
}

func (v *AcceleratedView) IsVisible(m *scene.MeshNode) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.all || v.visible[m]
}

// Tests returns the number of sphere tests of the last update.
func (v *AcceleratedView) Tests() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.tests
}

type sphere struct {
	center mgl32.Vec3
	radius float32
}

// merge returns the smallest sphere enclosing a and b.
func (a sphere) merge(b sphere) sphere {
	diff := b.center.Sub(a.center)
	dist := diff.Len()

	if a.radius+b.radius >= dist {
		if a.radius-b.radius >= dist {
			// b inside a
			return a
		}
		if b.radius-a.radius >= dist {
			// a inside b
			return b
		}
	}

	v := diff.Mul(1.0 / dist)
	min := float32(math.Min(float64(-a.radius), float64(dist-b.radius)))
	max := (float32(math.Max(float64(a.radius), float64(dist+b.radius))) - min) * 0.5

	return sphere{
		center: a.center.Add(v.Mul(max + min)),
		radius: max,
	}
}

type sphereNode struct {
	sphere
	children []*sphereNode
	mesh     *scene.MeshNode
}

// SphereTree is a binary bounding volume hierarchy over mesh bounding
// spheres, split at the median of the axis with the largest spread.
type SphereTree struct {
	root *sphereNode
	size int
}

func NewSphereTree(meshes []*scene.MeshNode) *SphereTree {
	leaves := make([]*sphereNode, 0, len(meshes))
	for _, m := range meshes {
		c, r := m.BoundingSphere()
		leaves = append(leaves, &sphereNode{
			sphere: sphere{c, r},
			mesh:   m,
		})
	}

	return &SphereTree{
		root: build(leaves),
		size: len(leaves),
	}
}

func build(ns []*sphereNode) *sphereNode {
	switch len(ns) {
	case 0:
		return nil
	case 1:
		return ns[0]
	}

	min, max := ns[0].center, ns[0].center
	for _, n := range ns[1:] {
		for i := 0; i < 3; i++ {
			if n.center[i] < min[i] {
				min[i] = n.center[i]
			}
			if n.center[i] > max[i] {
				max[i] = n.center[i]
			}
		}
	}

	axis := 0
	spread := max.Sub(min)
	if spread[1] > spread[axis] {
		axis = 1
	}
	if spread[2] > spread[axis] {
		axis = 2
	}

	sort.SliceStable(ns, func(i, j int) bool {
		return ns[i].center[axis] < ns[j].center[axis]
	})

	half := len(ns) / 2
	left, right := build(ns[:half]), build(ns[half:])

	return &sphereNode{
		sphere:   left.sphere.merge(right.sphere),
		children: []*sphereNode{left, right},
	}
}

func (t *SphereTree) Len() int { return t.size }

// Bounds returns the sphere enclosing all meshes.
func (t *SphereTree) Bounds() (center mgl32.Vec3, radius float32) {
	if t.root == nil {
		return mgl32.Vec3{}, 0
	}
	return t.root.center, t.root.radius
}

// Query calls visible for every mesh whose sphere is not disjoint with the
// classifier and returns the number of tests made.
func (t *SphereTree) Query(c SphereClassifier, visible func(*scene.MeshNode)) int {
	if t.root == nil {
		return 0
	}

	tests := 0
	var walk func(n *sphereNode, inside bool)
	walk = func(n *sphereNode, inside bool) {
		if !inside {
			tests++
			switch c.ClassifySphere(n.center, n.radius) {
			case display.Disjoint:
				return
			case display.Contains:
				inside = true
			}
		}

		if n.mesh != nil {
			visible(n.mesh)
			return
		}
		for _, ch := range n.children {
			walk(ch, inside)
		}
	}
	walk(t.root, false)

	return tests
}
