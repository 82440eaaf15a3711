// Package sdlframe opens the frame with SDL2 and translates its event queue
// into a devices.Input. Importing it registers the backend "sdl", rendering
// with OpenGL.
package sdlframe

import (
	"fmt"
	"sync"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/der-antikeks/simplesetup/backend"
	"github.com/der-antikeks/simplesetup/core"
	"github.com/der-antikeks/simplesetup/devices"
	"github.com/der-antikeks/simplesetup/display"
	"github.com/der-antikeks/simplesetup/logging"
	"github.com/der-antikeks/simplesetup/renderers"
	"github.com/der-antikeks/simplesetup/renderers/opengl"
)

const Name = "sdl"

func init() {
	backend.Register(Name, Backend{})
}

type Backend struct{}

func (Backend) NewFrame(opts display.FrameOptions) (display.Frame, error) {
	return NewFrame(opts), nil
}

func (Backend) NewInput(f display.Frame) (devices.Device, error) {
	sf, ok := f.(*Frame)
	if !ok {
		return nil, fmt.Errorf("sdl input needs a sdl frame, got %T", f)
	}
	in := devices.NewInput()
	sf.SetInput(in)
	return in, nil
}

func (Backend) NewRenderer(vp *display.Viewport) (renderers.Renderer, error) {
	return opengl.NewRenderer(vp), nil
}

func (Backend) NewDrawer() renderers.Drawer {
	return opengl.NewDrawer()
}

// Frame is a SDL window with an OpenGL 2.1 context. It must be driven from
// the main thread.
type Frame struct {
	mu      sync.RWMutex
	opts    display.FrameOptions
	window  *sdl.Window
	context sdl.GLContext
	input   *devices.Input
	closed  bool

	joysticks map[sdl.JoystickID]*sdl.Joystick
}

func NewFrame(opts display.FrameOptions) *Frame {
	return &Frame{
		opts:      opts,
		joysticks: map[sdl.JoystickID]*sdl.Joystick{},
	}
}

func (f *Frame) SetInput(in *devices.Input) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.input = in
}

func (f *Frame) Initialize(core.InitializeEventArg) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_JOYSTICK); err != nil {
		return fmt.Errorf("failed to initialize sdl: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	r, g, b, a := display.ColorBits(f.opts.Depth)
	attributes := []struct {
		attr  sdl.GLattr
		value int
	}{
		{sdl.GL_CONTEXT_MAJOR_VERSION, 2},
		{sdl.GL_CONTEXT_MINOR_VERSION, 1},
		{sdl.GL_RED_SIZE, r},
		{sdl.GL_GREEN_SIZE, g},
		{sdl.GL_BLUE_SIZE, b},
		{sdl.GL_ALPHA_SIZE, a},
		{sdl.GL_DEPTH_SIZE, 24},
		{sdl.GL_DOUBLEBUFFER, 1},
	}
	for _, at := range attributes {
		if err := sdl.GLSetAttribute(at.attr, at.value); err != nil {
			sdl.Quit()
			return fmt.Errorf("failed to set gl attribute %d: %w", at.attr, err)
		}
	}

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_SHOWN | sdl.WINDOW_RESIZABLE)
	if f.opts.Fullscreen {
		flags |= uint32(sdl.WINDOW_FULLSCREEN)
	}

	window, err := sdl.CreateWindow(f.opts.Title,
		int32(sdl.WINDOWPOS_CENTERED),
		int32(sdl.WINDOWPOS_CENTERED),
		int32(f.opts.Width), int32(f.opts.Height), flags)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("failed to create window: %w", err)
	}

	context, err := window.GLCreateContext()
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("failed to create gl context: %w", err)
	}
	if err := sdl.GLSetSwapInterval(1); err != nil {
		logging.Warnf("could not enable vsync: %v", err)
	}

	f.window, f.context = window, context
	f.closed = false
	f.openJoysticks()

	logging.Infof("opened %dx%d window %q", f.opts.Width, f.opts.Height, f.opts.Title)
	return nil
}

func (f *Frame) openJoysticks() {
	sdl.JoystickEventState(sdl.ENABLE)
	for i := 0; i < sdl.NumJoysticks(); i++ {
		joy := sdl.JoystickOpen(i)
		if joy == nil {
			continue
		}
		f.joysticks[joy.InstanceID()] = joy
		logging.Infof("joystick %d connected: %s", i, joy.Name())
	}
}

func (f *Frame) Process(core.ProcessEventArg) error {
	f.mu.RLock()
	window := f.window
	f.mu.RUnlock()

	if window == nil {
		return nil
	}
	window.GLSwap()

	var first error
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		if err := f.handle(ev); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (f *Frame) Deinitialize(core.DeinitializeEventArg) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.window == nil {
		return nil
	}

	for id, joy := range f.joysticks {
		joy.Close()
		delete(f.joysticks, id)
	}

	sdl.GLDeleteContext(f.context)
	err := f.window.Destroy()
	f.window = nil
	sdl.Quit()

	return err
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
	return f.closed
}
