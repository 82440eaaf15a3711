package opengl

import (
	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/der-antikeks/simplesetup/display"
	"github.com/der-antikeks/simplesetup/geometry"
	"github.com/der-antikeks/simplesetup/renderers"
	"github.com/der-antikeks/simplesetup/scene"
)

// Drawer draws meshes in immediate mode, using the matrix stack of OpenGL
// for the transformation nodes.
type Drawer struct {
	locations map[uint32]map[string]int32
	depth     int
}

func NewDrawer() *Drawer {
	return &Drawer{
		locations: map[uint32]map[string]int32{},
	}
}

func (d *Drawer) Begin(vp *display.Viewport, volume display.ViewingVolume) error {
	projection := volume.ProjectionMatrix()
	gl.MatrixMode(gl.PROJECTION)
	gl.LoadMatrixf(&projection[0])

	view := volume.ViewMatrix()
	gl.MatrixMode(gl.MODELVIEW)
	gl.LoadMatrixf(&view[0])

	gl.Disable(gl.LIGHTING)
	for i := 0; i < renderers.MaxLights; i++ {
		gl.Disable(gl.LIGHT0 + uint32(i))
	}

	d.depth = 0
	return nil
}

func (d *Drawer) Light(index int, n scene.Node, world mgl32.Mat4) {
	light := gl.LIGHT0 + uint32(index)

	gl.PushMatrix()
	gl.MultMatrixf(&world[0])

	switch t := n.(type) {
	case *scene.DirectionalLightNode:
		// w=0 positions point towards the light
		dir := t.Direction.Mul(-1)
		setLight(light, t.Light, dir.Vec4(0))
		gl.Lightf(light, gl.CONSTANT_ATTENUATION, 1)
		gl.Lightf(light, gl.LINEAR_ATTENUATION, 0)
		gl.Lightf(light, gl.QUADRATIC_ATTENUATION, 0)

	case *scene.PointLightNode:
		setLight(light, t.Light, t.Position.Vec4(1))
		gl.Lightf(light, gl.CONSTANT_ATTENUATION, t.ConstantAttenuation)
		gl.Lightf(light, gl.LINEAR_ATTENUATION, t.LinearAttenuation)
		gl.Lightf(light, gl.QUADRATIC_ATTENUATION, t.QuadraticAttenuation)
	}

	gl.PopMatrix()

	gl.Enable(light)
	gl.Enable(gl.LIGHTING)
}

func setLight(light uint32, l scene.Light, position mgl32.Vec4) {
	gl.Lightfv(light, gl.AMBIENT, &l.Ambient[0])
	gl.Lightfv(light, gl.DIFFUSE, &l.Diffuse[0])
	gl.Lightfv(light, gl.SPECULAR, &l.Specular[0])
	gl.Lightfv(light, gl.POSITION, &position[0])
}

func (d *Drawer) PushTransformation(m mgl32.Mat4) {
	gl.PushMatrix()
	gl.MultMatrixf(&m[0])
	d.depth++
}

func (d *Drawer) PopTransformation() {
	gl.PopMatrix()
	d.depth--
}

func (d *Drawer) Mesh(n *scene.MeshNode) {
	m := n.Mesh
	mat := m.Material
	if mat == nil {
		mat = geometry.NewMaterial()
	}

	gl.PushAttrib(gl.ENABLE_BIT | gl.POLYGON_BIT | gl.CURRENT_BIT)
	defer gl.PopAttrib()

	d.bindMaterial(mat)
	defer d.unbindMaterial(mat)

	gl.Begin(gl.TRIANGLES)
	for _, f := range m.Faces {
		for _, i := range [3]uint32{f.A, f.B, f.C} {
			v := m.Vertices[i]
			gl.Normal3f(v.Normal[0], v.Normal[1], v.Normal[2])
			gl.TexCoord2f(v.UV[0], v.UV[1])
			gl.Vertex3f(v.Position[0], v.Position[1], v.Position[2])
		}
	}
	gl.End()
}

func (d *Drawer) bindMaterial(mat *geometry.Material) {
	ambient, diffuse, specular := mat.Ambient, mat.Diffuse, mat.Specular
	diffuse[3] = mat.Opacity

	gl.Materialfv(gl.FRONT_AND_BACK, gl.AMBIENT, &ambient[0])
	gl.Materialfv(gl.FRONT_AND_BACK, gl.DIFFUSE, &diffuse[0])
	gl.Materialfv(gl.FRONT_AND_BACK, gl.SPECULAR, &specular[0])
	gl.Materialf(gl.FRONT_AND_BACK, gl.SHININESS, mgl32.Clamp(mat.Shininess, 0, 128))
	gl.Color4f(diffuse[0], diffuse[1], diffuse[2], diffuse[3])

	if !mat.Opaque() {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	}
	if mat.Wireframe {
		gl.Disable(gl.CULL_FACE)
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}

	if tex := mat.Texture; tex != nil && tex.ID() != 0 {
		gl.ActiveTexture(gl.TEXTURE0)
		gl.Enable(gl.TEXTURE_2D)
		gl.BindTexture(gl.TEXTURE_2D, tex.ID())
	}

	s := mat.Shader
	if s == nil || s.ID() == 0 {
		return
	}

	program := s.ID()
	gl.UseProgram(program)

	textures := s.Textures()
	for i, name := range samplerUnits(textures) {
		tex := textures[name]
		if tex.ID() == 0 {
			continue
		}
		unit := int32(i + 1)
		gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
		gl.BindTexture(gl.TEXTURE_2D, tex.ID())
		gl.Uniform1i(d.location(program, name), unit)
	}
	gl.ActiveTexture(gl.TEXTURE0)
}

func (d *Drawer) unbindMaterial(mat *geometry.Material) {
	if s := mat.Shader; s != nil && s.ID() != 0 {
		for i := range samplerUnits(s.Textures()) {
			gl.ActiveTexture(gl.TEXTURE0 + uint32(i+1))
			gl.BindTexture(gl.TEXTURE_2D, 0)
		}
		gl.ActiveTexture(gl.TEXTURE0)
		gl.UseProgram(0)
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

func (d *Drawer) location(program uint32, name string) int32 {
	locs, ok := d.locations[program]
	if !ok {
		locs = map[string]int32{}
		d.locations[program] = locs
	}

	loc, ok := locs[name]
	if !ok {
		loc = gl.GetUniformLocation(program, gl.Str(name+"\x00"))
		locs[name] = loc
	}
	return loc
}

func (d *Drawer) Lines(n *scene.LineNode) {
	gl.PushAttrib(gl.ENABLE_BIT | gl.LINE_BIT | gl.CURRENT_BIT)
	defer gl.PopAttrib()

	gl.Disable(gl.LIGHTING)
	gl.Disable(gl.TEXTURE_2D)
	if n.Width > 0 {
		gl.LineWidth(n.Width)
	}
	gl.Color4f(n.Color[0], n.Color[1], n.Color[2], n.Color[3])

	gl.Begin(gl.LINES)
	for _, l := range n.Lines {
		gl.Vertex3f(l.From[0], l.From[1], l.From[2])
		gl.Vertex3f(l.To[0], l.To[1], l.To[2])
	}
	gl.End()
}

func (d *Drawer) End() error {
	for ; d.depth > 0; d.depth-- {
		gl.PopMatrix()
	}
	return glError("draw")
}
