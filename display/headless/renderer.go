package headless

import (
	"errors"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/atomic"

	"github.com/der-antikeks/simplesetup/core"
	"github.com/der-antikeks/simplesetup/display"
	"github.com/der-antikeks/simplesetup/renderers"
	"github.com/der-antikeks/simplesetup/resources"
	"github.com/der-antikeks/simplesetup/scene"
)

var (
	ErrNoImage  = errors.New("texture has no image")
	ErrNoSource = errors.New("shader has no source")
)

type Renderer struct {
	*renderers.Base

	ids      atomic.Uint32
	textures atomic.Int64
	rebinds  atomic.Int64
	shaders  atomic.Int64
	overlays atomic.Int64
}

func NewRenderer(vp *display.Viewport) *Renderer {
	return &Renderer{Base: renderers.NewBase(vp)}
}

func (r *Renderer) Initialize(core.InitializeEventArg) error {
	return r.NotifyInitialize(r)
}

func (r *Renderer) Process(arg core.ProcessEventArg) error {
	return r.NotifyProcess(r, arg.Delta)
}

func (r *Renderer) Deinitialize(core.DeinitializeEventArg) error {
	return r.NotifyDeinitialize(r)
}

func (r *Renderer) LoadTexture(tex resources.Texture) error {
	if tex.Image() == nil {
		return ErrNoImage
	}
	if tex.ID() == 0 {
		tex.SetID(r.ids.Inc())
	}
	tex.SetChanged(false)
	r.textures.Inc()
	return nil
}

func (r *Renderer) RebindTexture(tex resources.Texture) error {
	if tex.ID() == 0 {
		return r.LoadTexture(tex)
	}
	if tex.Image() == nil {
		return ErrNoImage
	}
	tex.SetChanged(false)
	r.rebinds.Inc()
	return nil
}

func (r *Renderer) LoadShader(s resources.Shader) error {
	if s.VertexSource() == "" && s.FragmentSource() == "" {
		return ErrNoSource
	}
	s.SetID(r.ids.Inc())
	r.shaders.Inc()
	return nil
}

func (r *Renderer) DrawOverlay(tex resources.Texture, x, y, w, h int) error {
	if tex.ID() == 0 || tex.Changed() {
		if err := r.RebindTexture(tex); err != nil {
			return err
		}
	}
	r.overlays.Inc()
	return nil
}

// Stats returns the number of texture loads and rebinds, compiled shaders
// and drawn overlays.
func (r *Renderer) Stats() (textures, rebinds, shaders, overlays int64) {
	return r.textures.Load(), r.rebinds.Load(), r.shaders.Load(), r.overlays.Load()
}

// Drawer counts the calls of the rendering view.
type Drawer struct {
	mu     sync.Mutex
	frames int
	lights int
	meshes int
	lines  int
	depth  int
}

func NewDrawer() *Drawer { return &Drawer{} }

func (d *Drawer) Begin(*display.Viewport, display.ViewingVolume) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.frames++
	d.lights, d.meshes, d.lines, d.depth = 0, 0, 0, 0
	return nil
}

func (d *Drawer) Light(int, scene.Node, mgl32.Mat4) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lights++
}

func (d *Drawer) PushTransformation(mgl32.Mat4) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.depth++
}

func (d *Drawer) PopTransformation() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.depth--
}

func (d *Drawer) Mesh(*scene.MeshNode) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.meshes++
}

func (d *Drawer) Lines(*scene.LineNode) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lines++
}

func (d *Drawer) End() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.depth != 0 {
		return errors.New("unbalanced transformation stack")
	}
	return nil
}

// Last returns what was drawn in the last frame.
func (d *Drawer) Last() (lights, meshes, lines int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lights, d.meshes, d.lines
}

func (d *Drawer) Frames() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frames
}
