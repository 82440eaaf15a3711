package resources

import (
	"image"
	"sync"
)

// Resource is anything that is created by a plugin from a file.
type Resource interface {
	Load() error
	Unload()
}

// Texture is a two dimensional image ready to be handed to a renderer.
// ID is the renderer handle, zero until the renderer loaded the texture.
type Texture interface {
	Resource

	Image() *image.RGBA
	Width() int
	Height() int

	ID() uint32
	SetID(uint32)

	// Changed reports whether the image was modified after it was handed to
	// the renderer. The renderer resets the flag after rebinding.
	Changed() bool
	SetChanged(bool)
}

// Shader is a vertex/fragment program pair with its sampler textures.
type Shader interface {
	Resource

	VertexSource() string
	FragmentSource() string
	Textures() map[string]Texture

	ID() uint32
	SetID(uint32)
}

// ImageTexture is an in-memory Texture, also used as the base of file backed
// textures.
type ImageTexture struct {
	mu      sync.RWMutex
	image   *image.RGBA
	id      uint32
	changed bool
}

func NewImageTexture(img *image.RGBA) *ImageTexture {
	return &ImageTexture{image: img}
}

func (t *ImageTexture) Load() error { return nil }

func (t *ImageTexture) Unload() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.image = nil
}

func (t *ImageTexture) Image() *image.RGBA {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.image
}

// SetImage replaces the image and marks the texture as changed.
func (t *ImageTexture) SetImage(img *image.RGBA) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.image = img
	t.changed = true
}

func (t *ImageTexture) Width() int {
	if img := t.Image(); img != nil {
		return img.Bounds().Dx()
	}
	return 0
}

func (t *ImageTexture) Height() int {
	if img := t.Image(); img != nil {
		return img.Bounds().Dy()
	}
	return 0
}

func (t *ImageTexture) ID() uint32 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.id
}

func (t *ImageTexture) SetID(id uint32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.id = id
}

func (t *ImageTexture) Changed() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.changed
}

func (t *ImageTexture) SetChanged(c bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.changed = c
}
