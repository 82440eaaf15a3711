package renderers

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/der-antikeks/simplesetup/display"
	"github.com/der-antikeks/simplesetup/scene"
)

// Drawer is the backend specific part of a rendering view. The view calls
// Begin, then Light for every light, then the transformation, mesh and line
// calls in scene order, and finally End.
type Drawer interface {
	Begin(vp *display.Viewport, volume display.ViewingVolume) error
	Light(index int, n scene.Node, world mgl32.Mat4)
	PushTransformation(m mgl32.Mat4)
	PopTransformation()
	Mesh(n *scene.MeshNode)
	Lines(n *scene.LineNode)
	End() error
}

// MaxLights is the number of lights the fixed function pipeline guarantees.
const MaxLights = 8

// RenderingView draws the scene root of a renderer on its process event,
// skipping meshes the culler rejects.
type RenderingView struct {
	drawer Drawer
	culler Culler

	mu     sync.Mutex
	drawn  int
	culled int
}

func NewRenderingView(d Drawer, c Culler) *RenderingView {
	return &RenderingView{drawer: d, culler: c}
}

func (v *RenderingView) Culler() Culler { return v.culler }

// Stats returns the drawn and culled mesh counts of the last frame.
func (v *RenderingView) Stats() (drawn, culled int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.drawn, v.culled
}

func (v *RenderingView) Handle(arg RenderingEventArg) error {
	r := arg.Renderer
	vp := r.Viewport()
	volume := vp.ViewingVolume()
	root := r.SceneRoot()

	volume.SetAspect(vp.Aspect())
	volume.SignalRendering(arg.Delta)

	if v.culler != nil {
		v.culler.Update(root, volume)
	}

	if err := v.drawer.Begin(vp, volume); err != nil {
		return err
	}

	drawn, culled := 0, 0
	if root != nil {
		v.lights(root)

		w := &drawVisitor{view: v}
		scene.Walk(w, root)
		drawn, culled = w.drawn, w.culled
	}

	v.mu.Lock()
	v.drawn, v.culled = drawn, culled
	v.mu.Unlock()

	return v.drawer.End()
}

func (v *RenderingView) lights(root scene.Node) {
	index := 0
	scene.Inspect(root, func(n scene.Node) bool {
		if index >= MaxLights {
			return false
		}
		switch n.(type) {
		case *scene.DirectionalLightNode, *scene.PointLightNode:
			v.drawer.Light(index, n, scene.WorldMatrix(n))
			index++
		}
		return true
	})
}

type drawVisitor struct {
	view   *RenderingView
	stack  []scene.Node
	drawn  int
	culled int
}

func (w *drawVisitor) Visit(n scene.Node) scene.Visitor {
	d := w.view.drawer

	if n == nil {
		top := w.stack[len(w.stack)-1]
		w.stack = w.stack[:len(w.stack)-1]
		if _, ok := top.(*scene.TransformationNode); ok {
			d.PopTransformation()
		}
		return nil
	}

	switch t := n.(type) {
	case *scene.TransformationNode:
		d.PushTransformation(t.Matrix())

	case *scene.MeshNode:
		if t.Mesh != nil {
			if c := w.view.culler; c != nil && !c.IsVisible(t) {
				w.culled++
			} else {
				d.Mesh(t)
				w.drawn++
			}
		}

	case *scene.LineNode:
		if len(t.Lines) > 0 {
			d.Lines(t)
		}
	}

	w.stack = append(w.stack, n)
	return w
}
