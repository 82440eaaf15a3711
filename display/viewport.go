package display

import (
	"sync"
)

// Viewport is a rectangle of a frame viewed through a viewing volume. Unless
// a dimension is set explicitly it covers the whole frame.
type Viewport struct {
	mu     sync.RWMutex
	frame  Frame
	fixed  bool
	x, y   int
	w, h   int
	volume ViewingVolume
}

func NewViewport(f Frame) *Viewport {
	return &Viewport{
		frame:  f,
		volume: NewViewingVolume(),
	}
}

func (v *Viewport) Frame() Frame { return v.frame }

// Dimension returns the origin and size in pixels, never smaller than 1x1.
func (v *Viewport) Dimension() (x, y, w, h int) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if v.fixed {
		x, y, w, h = v.x, v.y, v.w, v.h
	} else if v.frame != nil {
		w, h = v.frame.Width(), v.frame.Height()
	}

	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return x, y, w, h
}

// SetDimension pins the viewport to a rectangle of the frame.
func (v *Viewport) SetDimension(x, y, w, h int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.fixed = true
	v.x, v.y, v.w, v.h = x, y, w, h
}

func (v *Viewport) Aspect() float32 {
	_, _, w, h := v.Dimension()
	return float32(w) / float32(h)
}

func (v *Viewport) ViewingVolume() ViewingVolume {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.volume
}

func (v *Viewport) SetViewingVolume(vv ViewingVolume) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.volume = vv
}
