package geometry

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/der-antikeks/simplesetup/resources"
)

// Material describes the surface of a mesh, following the MTL color model.
type Material struct {
	Name string

	Ambient   mgl32.Vec4
	Diffuse   mgl32.Vec4
	Specular  mgl32.Vec4
	Shininess float32
	Opacity   float32
	Wireframe bool

	Texture resources.Texture
	Shader  resources.Shader
}

func NewMaterial() *Material {
	return &Material{
		Name:      "default",
		Ambient:   mgl32.Vec4{0.2, 0.2, 0.2, 1},
		Diffuse:   mgl32.Vec4{0.8, 0.8, 0.8, 1},
		Specular:  mgl32.Vec4{0, 0, 0, 1},
		Shininess: 0,
		Opacity:   1,
	}
}

func (m *Material) Opaque() bool {
	return m.Opacity >= 1
}

// Textures returns every texture referenced by the material, including the
// sampler textures of its shader.
func (m *Material) Textures() []resources.Texture {
	var ts []resources.Texture
	if m.Texture != nil {
		ts = append(ts, m.Texture)
	}
	if m.Shader != nil {
		for _, t := range m.Shader.Textures() {
			if t != nil {
				ts = append(ts, t)
			}
		}
	}
	return ts
}
