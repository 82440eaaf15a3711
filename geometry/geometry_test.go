package geometry

import (
	"image"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/der-antikeks/simplesetup/resources"
)

func TestMesh_MergeVertices(t *testing.T) {
	m := NewMesh(nil)

	a := Vertex{Position: mgl32.Vec3{0, 0, 0}}
	b := Vertex{Position: mgl32.Vec3{1, 0, 0}}
	c := Vertex{Position: mgl32.Vec3{0, 1, 0}}
	d := Vertex{Position: mgl32.Vec3{1, 1, 0}}

	m.AddFace(a, b, c)
	m.AddFace(b, d, c)
	m.AddFace(a, a, b) // degenerated

	assert.Len(t, m.Vertices, 9)
	assert.Len(t, m.Faces, 3)

	m.MergeVertices()

	assert.Len(t, m.Vertices, 4)
	assert.Equal(t, []Face{{0, 1, 2}, {1, 3, 2}}, m.Faces)
}

func TestBoundary(t *testing.T) {
	b := NewBoundary()
	assert.True(t, b.Empty())

	c, r := b.Sphere()
	assert.Equal(t, mgl32.Vec3{}, c)
	assert.Equal(t, float32(0), r)

	tests := []struct {
		points []mgl32.Vec3
		center mgl32.Vec3
		radius float32
	}{
		{
			[]mgl32.Vec3{{1, 1, 1}},
			mgl32.Vec3{1, 1, 1}, 0,
		},
		{
			[]mgl32.Vec3{{-1, 0, 0}, {1, 0, 0}},
			mgl32.Vec3{0, 0, 0}, 1,
		},
		{
			[]mgl32.Vec3{{0, 0, 0}, {2, 2, 2}, {1, 1, 1}},
			mgl32.Vec3{1, 1, 1}, 1.7320508,
		},
	}

	for _, tt := range tests {
		b := NewBoundary()
		for _, p := range tt.points {
			b.AddPoint(p)
		}
		c, r := b.Sphere()
		assert.True(t, c.ApproxEqual(tt.center), "center %v != %v", c, tt.center)
		assert.InDelta(t, tt.radius, r, 1e-5)
	}
}

func TestNewCube(t *testing.T) {
	m := NewCube(2, nil)

	// 6 sides with 4 distinct corners each
	assert.Len(t, m.Vertices, 24)
	assert.Len(t, m.Faces, 12)

	b := m.Boundary()
	assert.Equal(t, mgl32.Vec3{-1, -1, -1}, b.Min)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, b.Max)
	assert.NotNil(t, m.Material)
	assert.True(t, m.Material.Opaque())
}

type samplerShader struct {
	textures map[string]resources.Texture
}

func (s *samplerShader) Load() error                            { return nil }
func (s *samplerShader) Unload()                                {}
func (s *samplerShader) VertexSource() string                   { return "" }
func (s *samplerShader) FragmentSource() string                 { return "" }
func (s *samplerShader) Textures() map[string]resources.Texture { return s.textures }
func (s *samplerShader) ID() uint32                             { return 0 }
func (s *samplerShader) SetID(uint32)                           {}

func TestMaterial_Textures(t *testing.T) {
	m := NewMaterial()
	assert.Empty(t, m.Textures())

	diffuse := resources.NewImageTexture(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	normal := resources.NewImageTexture(image.NewRGBA(image.Rect(0, 0, 1, 1)))

	m.Texture = diffuse
	m.Shader = &samplerShader{map[string]resources.Texture{"normalMap": normal}}

	ts := m.Textures()
	assert.Len(t, ts, 2)
	assert.Contains(t, ts, resources.Texture(diffuse))
	assert.Contains(t, ts, resources.Texture(normal))

	m.Opacity = 0.5
	assert.False(t, m.Opaque())
}
