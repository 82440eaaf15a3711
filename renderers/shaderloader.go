package renderers

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/der-antikeks/simplesetup/core"
	"github.com/der-antikeks/simplesetup/resources"
	"github.com/der-antikeks/simplesetup/scene"
)

// ShaderLoader compiles the shaders of a scene when the engine initializes.
type ShaderLoader struct {
	r    Renderer
	root scene.Node
}

func NewShaderLoader(r Renderer, root scene.Node) *ShaderLoader {
	return &ShaderLoader{r: r, root: root}
}

func (l *ShaderLoader) Root() scene.Node { return l.root }

// Load compiles every shader below the root that has no program yet, and
// hands their sampler textures to the renderer.
func (l *ShaderLoader) Load() error {
	var errs *multierror.Error

	for _, s := range scene.Shaders(l.root) {
		if s.ID() != 0 {
			continue
		}
		if err := l.r.LoadShader(s); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("shader: %w", err))
			continue
		}
		if err := l.loadTextures(s); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return errs.ErrorOrNil()
}

func (l *ShaderLoader) loadTextures(s resources.Shader) error {
	for name, tex := range s.Textures() {
		if tex == nil || tex.ID() != 0 {
			continue
		}
		if err := l.r.LoadTexture(tex); err != nil {
			return fmt.Errorf("sampler %q: %w", name, err)
		}
	}
	return nil
}

func (l *ShaderLoader) Handle(core.InitializeEventArg) error {
	return l.Load()
}
