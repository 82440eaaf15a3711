package renderers

import (
	"sync"

	"github.com/hashicorp/go-multierror"

	"github.com/der-antikeks/simplesetup/resources"
	"github.com/der-antikeks/simplesetup/scene"
)

// TextureLoader hands textures to a renderer once and rebinds them when
// their image changed. As a listener on the preprocess event it rebinds
// changed textures before every frame.
type TextureLoader struct {
	r Renderer

	mu     sync.Mutex
	loaded []resources.Texture
	known  map[resources.Texture]bool
}

func NewTextureLoader(r Renderer) *TextureLoader {
	return &TextureLoader{
		r:     r,
		known: map[resources.Texture]bool{},
	}
}

// Load uploads tex unless it already was.
func (l *TextureLoader) Load(tex resources.Texture) error {
	if tex == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.known[tex] && tex.ID() != 0 {
		if tex.Changed() {
			return l.r.RebindTexture(tex)
		}
		return nil
	}

	if err := l.r.LoadTexture(tex); err != nil {
		return err
	}
	if !l.known[tex] {
		l.known[tex] = true
		l.loaded = append(l.loaded, tex)
	}
	return nil
}

// LoadScene loads every texture referenced below root.
func (l *TextureLoader) LoadScene(root scene.Node) error {
	var errs *multierror.Error
	for _, tex := range scene.Textures(root) {
		if err := l.Load(tex); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return errs.ErrorOrNil()
}

// Reload rebinds all loaded textures with a changed image.
func (l *TextureLoader) Reload() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var errs *multierror.Error
	for _, tex := range l.loaded {
		if tex.Changed() && tex.Image() != nil {
			if err := l.r.RebindTexture(tex); err != nil {
				errs = multierror.Append(errs, err)
			}
		}
	}
	return errs.ErrorOrNil()
}

func (l *TextureLoader) Loaded() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.loaded)
}

func (l *TextureLoader) Handle(RenderingEventArg) error {
	return l.Reload()
}
