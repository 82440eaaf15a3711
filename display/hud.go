package display

import (
	"sync"
	"time"

	"github.com/der-antikeks/simplesetup/resources"
)

// Overlay draws textured rectangles in screen space on top of the scene.
type Overlay interface {
	DrawOverlay(tex resources.Texture, x, y, w, h int) error
}

// Surface is a texture placed on the HUD, in pixels from the top left
// corner of the viewport.
type Surface interface {
	Texture() resources.Texture
	Position() (x, y int)
	Size() (w, h int)
}

// Updater is implemented by surfaces that change over time.
type Updater interface {
	Update(dt time.Duration)
}

// TextureSurface shows a texture at its natural size times scale.
type TextureSurface struct {
	mu    sync.RWMutex
	tex   resources.Texture
	x, y  int
	scale float32
}

func NewTextureSurface(tex resources.Texture) *TextureSurface {
	return &TextureSurface{tex: tex, scale: 1}
}

func (s *TextureSurface) Texture() resources.Texture {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tex
}

func (s *TextureSurface) SetTexture(tex resources.Texture) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tex = tex
}

func (s *TextureSurface) Position() (x, y int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.x, s.y
}

func (s *TextureSurface) SetPosition(x, y int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.x, s.y = x, y
}

func (s *TextureSurface) Scale() float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scale
}

func (s *TextureSurface) SetScale(f float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scale = f
}

func (s *TextureSurface) Size() (w, h int) {
	tex, scale := s.Texture(), s.Scale()
	if tex == nil {
		return 0, 0
	}
	return int(float32(tex.Width()) * scale), int(float32(tex.Height()) * scale)
}

// HUD is an ordered list of surfaces drawn after the scene, first added
// surfaces at the bottom.
type HUD struct {
	mu       sync.RWMutex
	surfaces []Surface
}

func NewHUD() *HUD {
	return &HUD{}
}

func (h *HUD) AddSurface(s Surface) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.surfaces = append(h.surfaces, s)
}

func (h *HUD) RemoveSurface(s Surface) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, c := range h.surfaces {
		if c == s {
			h.surfaces = append(h.surfaces[:i], h.surfaces[i+1:]...)
			return
		}
	}
}

func (h *HUD) Surfaces() []Surface {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ss := make([]Surface, len(h.surfaces))
	copy(ss, h.surfaces)
	return ss
}

// Draw updates and draws all surfaces with a texture.
func (h *HUD) Draw(o Overlay, dt time.Duration) error {
	for _, s := range h.Surfaces() {
		if u, ok := s.(Updater); ok {
			u.Update(dt)
		}

		tex := s.Texture()
		if tex == nil {
			continue
		}

		x, y := s.Position()
		w, hh := s.Size()
		if err := o.DrawOverlay(tex, x, y, w, hh); err != nil {
			return err
		}
	}
	return nil
}
