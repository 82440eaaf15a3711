// Package backend is the registry of platform backends. A backend creates
// the platform dependent parts of a setup: the frame, the input device and
// the renderer with its drawer.
//
// Backends register themselves from an init function, so a program selects
// the available backends by importing them:
//
//	import _ "github.com/der-antikeks/simplesetup/display/glfwframe"
package backend

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/der-antikeks/simplesetup/devices"
	"github.com/der-antikeks/simplesetup/display"
	"github.com/der-antikeks/simplesetup/renderers"
)

var ErrUnknown = errors.New("unknown backend")

type Backend interface {
	NewFrame(opts display.FrameOptions) (display.Frame, error)
	// NewInput returns the input device fed by the events of f.
	NewInput(f display.Frame) (devices.Device, error)
	NewRenderer(vp *display.Viewport) (renderers.Renderer, error)
	NewDrawer() renderers.Drawer
}

var (
	mu       sync.RWMutex
	backends = map[string]Backend{}
)

// Register makes a backend available by name. It panics if called twice
// with the same name or with a nil backend.
func Register(name string, b Backend) {
	mu.Lock()
	defer mu.Unlock()

	if b == nil {
		panic("backend: Register backend is nil")
	}
	if _, dup := backends[name]; dup {
		panic("backend: Register called twice for backend " + name)
	}
	backends[name] = b
}

func Lookup(name string) (Backend, error) {
	mu.RLock()
	b, ok := backends[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknown, name, strings.Join(Names(), ", "))
	}
	return b, nil
}

// Names returns the sorted names of the registered backends.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func unregister(name string) {
	mu.Lock()
	defer mu.Unlock()
	delete(backends, name)
}
