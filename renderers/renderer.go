// Package renderers holds what all renderer implementations share: the
// rendering phases, texture loading and view frustum culling.
package renderers

import (
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/der-antikeks/simplesetup/core"
	"github.com/der-antikeks/simplesetup/display"
	"github.com/der-antikeks/simplesetup/resources"
	"github.com/der-antikeks/simplesetup/scene"
)

type RenderingEventArg struct {
	Renderer Renderer
	Delta    time.Duration // time since the previous frame
}

type RenderingListener = core.Listener[RenderingEventArg]

// Renderer draws a scene into a viewport. It is attached to all engine
// phases and runs its own rendering phases: initialize once, then
// preprocess, process and postprocess every frame, deinitialize once.
type Renderer interface {
	core.Module
	display.Overlay

	InitializeEvent() *core.Event[RenderingEventArg]
	PreProcessEvent() *core.Event[RenderingEventArg]
	ProcessEvent() *core.Event[RenderingEventArg]
	PostProcessEvent() *core.Event[RenderingEventArg]
	DeinitializeEvent() *core.Event[RenderingEventArg]

	SceneRoot() scene.Node
	SetSceneRoot(scene.Node)
	Viewport() *display.Viewport

	BackgroundColor() mgl32.Vec4
	SetBackgroundColor(mgl32.Vec4)

	// LoadTexture uploads a texture and assigns its id.
	LoadTexture(resources.Texture) error
	// RebindTexture uploads the changed image of a loaded texture.
	RebindTexture(resources.Texture) error
	// LoadShader compiles a shader program and assigns its id.
	LoadShader(resources.Shader) error
}

// Base implements the state and event plumbing of a Renderer. Renderers
// embed it and notify the phases from their module methods.
type Base struct {
	initialize   core.Event[RenderingEventArg]
	preprocess   core.Event[RenderingEventArg]
	process      core.Event[RenderingEventArg]
	postprocess  core.Event[RenderingEventArg]
	deinitialize core.Event[RenderingEventArg]

	mu       sync.RWMutex
	root     scene.Node
	viewport *display.Viewport
	bg       mgl32.Vec4
}

func NewBase(vp *display.Viewport) *Base {
	return &Base{
		viewport: vp,
		bg:       mgl32.Vec4{0, 0, 0, 1},
	}
}

func (b *Base) InitializeEvent() *core.Event[RenderingEventArg]   { return &b.initialize }
func (b *Base) PreProcessEvent() *core.Event[RenderingEventArg]   { return &b.preprocess }
func (b *Base) ProcessEvent() *core.Event[RenderingEventArg]      { return &b.process }
func (b *Base) PostProcessEvent() *core.Event[RenderingEventArg]  { return &b.postprocess }
func (b *Base) DeinitializeEvent() *core.Event[RenderingEventArg] { return &b.deinitialize }

func (b *Base) SceneRoot() scene.Node {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.root
}

func (b *Base) SetSceneRoot(n scene.Node) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.root = n
}

func (b *Base) Viewport() *display.Viewport { return b.viewport }

func (b *Base) BackgroundColor() mgl32.Vec4 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.bg
}

func (b *Base) SetBackgroundColor(c mgl32.Vec4) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.bg = c
}

// NotifyInitialize runs the initialize phase on behalf of self.
func (b *Base) NotifyInitialize(self Renderer) error {
	return b.initialize.Notify(RenderingEventArg{Renderer: self})
}

// NotifyProcess runs the preprocess, process and postprocess phases of one
// frame, stopping at the first error.
func (b *Base) NotifyProcess(self Renderer, dt time.Duration) error {
	arg := RenderingEventArg{Renderer: self, Delta: dt}

	for _, e := range []*core.Event[RenderingEventArg]{&b.preprocess, &b.process, &b.postprocess} {
		if err := e.Notify(arg); err != nil {
			return err
		}
	}
	return nil
}

// NotifyDeinitialize runs the deinitialize phase, every listener is called.
func (b *Base) NotifyDeinitialize(self Renderer) error {
	return b.deinitialize.NotifyAll(RenderingEventArg{Renderer: self})
}

// HUDListener draws the surfaces of h through the renderer of the event.
func HUDListener(h *display.HUD) RenderingListener {
	return core.ListenerFunc[RenderingEventArg](func(arg RenderingEventArg) error {
		return h.Draw(arg.Renderer, arg.Delta)
	})
}
