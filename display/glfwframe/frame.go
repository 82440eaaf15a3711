// Package glfwframe opens the frame with GLFW and feeds its keyboard, mouse
// and joystick events into a devices.Input. Importing it registers the
// backend "glfw", rendering with OpenGL.
package glfwframe

import (
	"fmt"
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/der-antikeks/simplesetup/backend"
	"github.com/der-antikeks/simplesetup/core"
	"github.com/der-antikeks/simplesetup/devices"
	"github.com/der-antikeks/simplesetup/display"
	"github.com/der-antikeks/simplesetup/logging"
	"github.com/der-antikeks/simplesetup/renderers"
	"github.com/der-antikeks/simplesetup/renderers/opengl"
)

const Name = "glfw"

func init() {
	backend.Register(Name, Backend{})
}

type Backend struct{}

func (Backend) NewFrame(opts display.FrameOptions) (display.Frame, error) {
	return NewFrame(opts), nil
}

func (Backend) NewInput(f display.Frame) (devices.Device, error) {
	gf, ok := f.(*Frame)
	if !ok {
		return nil, fmt.Errorf("glfw input needs a glfw frame, got %T", f)
	}
	in := devices.NewInput()
	gf.SetInput(in)
	return in, nil
}

func (Backend) NewRenderer(vp *display.Viewport) (renderers.Renderer, error) {
	return opengl.NewRenderer(vp), nil
}

func (Backend) NewDrawer() renderers.Drawer {
	return opengl.NewDrawer()
}

// Frame is a GLFW window with an OpenGL 2.1 context. It must be driven from
// the main thread.
type Frame struct {
	mu     sync.RWMutex
	opts   display.FrameOptions
	window *glfw.Window
	input  *devices.Input
	err    error

	joysticks map[glfw.Joystick]*joystickState
}

func NewFrame(opts display.FrameOptions) *Frame {
	return &Frame{
		opts:      opts,
		joysticks: map[glfw.Joystick]*joystickState{},
	}
}

// SetInput sets the device receiving the events of the window.
func (f *Frame) SetInput(in *devices.Input) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.input = in
}

func (f *Frame) Initialize(core.InitializeEventArg) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	r, g, b, a := display.ColorBits(f.opts.Depth)
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.RedBits, r)
	glfw.WindowHint(glfw.GreenBits, g)
	glfw.WindowHint(glfw.BlueBits, b)
	glfw.WindowHint(glfw.AlphaBits, a)
	glfw.WindowHint(glfw.DepthBits, 24)

	var monitor *glfw.Monitor
	if f.opts.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
	}

	window, err := glfw.CreateWindow(f.opts.Width, f.opts.Height, f.opts.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("failed to create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	f.opts.Width, f.opts.Height = window.GetFramebufferSize()
	f.window = window
	f.install(window)

	logging.Infof("opened %dx%d window %q", f.opts.Width, f.opts.Height, f.opts.Title)
	return nil
}

func (f *Frame) Process(core.ProcessEventArg) error {
	f.mu.RLock()
	window := f.window
	f.mu.RUnlock()

	if window == nil {
		return nil
	}

	window.SwapBuffers()
	glfw.PollEvents()
	f.pollJoysticks()

	f.mu.Lock()
	defer f.mu.Unlock()
	err := f.err
	f.err = nil
	return err
}

func (f *Frame) Deinitialize(core.DeinitializeEventArg) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.window == nil {
		return nil
	}
	f.window.Destroy()
	f.window = nil
	glfw.Terminate()
	return nil
}

func (f *Frame) Width() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.opts.Width
}

func (f *Frame) Height() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.opts.Height
}

func (f *Frame) Depth() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.opts.Depth
}

func (f *Frame) Title() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.opts.Title
}

func (f *Frame) SetTitle(title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opts.Title = title
	if f.window != nil {
		f.window.SetTitle(title)
	}
}

func (f *Frame) Fullscreen() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.opts.Fullscreen
}

func (f *Frame) ShouldClose() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.window != nil && f.window.ShouldClose()
}

// push records the first error of an input listener, Process returns it.
func (f *Frame) push(err error) {
	if err == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err == nil {
		f.err = err
	}
}

func (f *Frame) device() *devices.Input {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.input
}
