// Package headless is a backend without window or graphics context. Frames
// count the engine cycles, the renderer hands out ids without uploading
// anything and the drawer only counts what it is given.
package headless

import (
	"errors"
	"sync"

	"go.uber.org/atomic"

	"github.com/der-antikeks/simplesetup/backend"
	"github.com/der-antikeks/simplesetup/core"
	"github.com/der-antikeks/simplesetup/devices"
	"github.com/der-antikeks/simplesetup/display"
	"github.com/der-antikeks/simplesetup/renderers"
)

const Name = "headless"

func init() {
	backend.Register(Name, Backend{})
}

type Backend struct{}

func (Backend) NewFrame(opts display.FrameOptions) (display.Frame, error) {
	return NewFrame(opts), nil
}

func (Backend) NewInput(display.Frame) (devices.Device, error) {
	return devices.NewInput(), nil
}

func (Backend) NewRenderer(vp *display.Viewport) (renderers.Renderer, error) {
	return NewRenderer(vp), nil
}

func (Backend) NewDrawer() renderers.Drawer {
	return NewDrawer()
}

var ErrNotOpen = errors.New("frame is not open")

type Frame struct {
	mu   sync.RWMutex
	opts display.FrameOptions

	open   atomic.Bool
	closed atomic.Bool
	frames atomic.Int64
}

func NewFrame(opts display.FrameOptions) *Frame {
	return &Frame{opts: opts}
}

func (f *Frame) Initialize(core.InitializeEventArg) error {
	f.open.Store(true)
	return nil
}

func (f *Frame) Process(core.ProcessEventArg) error {
	if !f.open.Load() {
		return ErrNotOpen
	}
	f.frames.Inc()
	return nil
}

func (f *Frame) Deinitialize(core.DeinitializeEventArg) error {
	f.open.Store(false)
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
}

func (f *Frame) Fullscreen() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.opts.Fullscreen
}

// Resize changes the dimension like a window manager would.
func (f *Frame) Resize(w, h int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opts.Width, f.opts.Height = w, h
}

// Close requests the frame to close, as if the user closed the window.
func (f *Frame) Close() { f.closed.Store(true) }

func (f *Frame) ShouldClose() bool { return f.closed.Load() }
func (f *Frame) IsOpen() bool      { return f.open.Load() }

// Frames returns the number of processed frames.
func (f *Frame) Frames() int64 { return f.frames.Load() }
