// Package opengl implements the renderer and drawer on the fixed function
// pipeline of OpenGL 2.1.
package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v2.1/gl"

	"github.com/der-antikeks/simplesetup/core"
	"github.com/der-antikeks/simplesetup/display"
	"github.com/der-antikeks/simplesetup/logging"
	"github.com/der-antikeks/simplesetup/renderers"
	"github.com/der-antikeks/simplesetup/resources"
)

// Renderer needs a current OpenGL context, created by the frame, and must be
// driven from the thread owning it.
type Renderer struct {
	*renderers.Base

	textures map[uint32]bool
	programs map[uint32]bool
}

func NewRenderer(vp *display.Viewport) *Renderer {
	return &Renderer{
		Base:     renderers.NewBase(vp),
		textures: map[uint32]bool{},
		programs: map[uint32]bool{},
	}
}

func (r *Renderer) Initialize(core.InitializeEventArg) error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("could not initialize OpenGL: %w", err)
	}
	logging.Infof("OpenGL version %s", gl.GoStr(gl.GetString(gl.VERSION)))

	initGL()
	return r.NotifyInitialize(r)
}

func initGL() {
	gl.ClearColor(0.0, 0.0, 0.0, 1.0)
	gl.ClearDepth(1)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)

	gl.FrontFace(gl.CCW)
	gl.CullFace(gl.BACK)
	gl.Enable(gl.CULL_FACE)

	gl.ShadeModel(gl.SMOOTH)
	gl.Enable(gl.NORMALIZE)
	gl.LightModeli(gl.LIGHT_MODEL_TWO_SIDE, gl.FALSE)

	gl.LineWidth(2)
}

func (r *Renderer) Process(arg core.ProcessEventArg) error {
	x, y, w, h := r.Viewport().Dimension()
	gl.Viewport(int32(x), int32(y), int32(w), int32(h))

	bg := r.BackgroundColor()
	gl.ClearColor(bg[0], bg[1], bg[2], bg[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	return r.NotifyProcess(r, arg.Delta)
}

func (r *Renderer) Deinitialize(core.DeinitializeEventArg) error {
	err := r.NotifyDeinitialize(r)

	for id := range r.textures {
		id := id
		gl.DeleteTextures(1, &id)
	}
	for id := range r.programs {
		gl.DeleteProgram(id)
	}
	r.textures = map[uint32]bool{}
	r.programs = map[uint32]bool{}

	return err
}

// DrawOverlay draws tex as a screen aligned quad with the origin in the
// upper left corner of the viewport.
func (r *Renderer) DrawOverlay(tex resources.Texture, x, y, w, h int) error {
	if tex.ID() == 0 {
		if err := r.LoadTexture(tex); err != nil {
			return err
		}
	} else if tex.Changed() {
		if err := r.RebindTexture(tex); err != nil {
			return err
		}
	}

	_, _, vw, vh := r.Viewport().Dimension()

	gl.PushAttrib(gl.ENABLE_BIT | gl.CURRENT_BIT)
	defer gl.PopAttrib()

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.LIGHTING)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.TEXTURE_2D)
	gl.UseProgram(0)

	gl.MatrixMode(gl.PROJECTION)
	gl.PushMatrix()
	gl.LoadIdentity()
	gl.Ortho(0, float64(vw), float64(vh), 0, -1, 1)

	gl.MatrixMode(gl.MODELVIEW)
	gl.PushMatrix()
	gl.LoadIdentity()

	gl.BindTexture(gl.TEXTURE_2D, tex.ID())
	gl.Color4f(1, 1, 1, 1)

	x0, y0, x1, y1 := float32(x), float32(y), float32(x+w), float32(y+h)
	gl.Begin(gl.QUADS)
	gl.TexCoord2f(0, 0)
	gl.Vertex2f(x0, y0)
	gl.TexCoord2f(0, 1)
	gl.Vertex2f(x0, y1)
	gl.TexCoord2f(1, 1)
	gl.Vertex2f(x1, y1)
	gl.TexCoord2f(1, 0)
	gl.Vertex2f(x1, y0)
	gl.End()

	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.PopMatrix()
	gl.MatrixMode(gl.PROJECTION)
	gl.PopMatrix()
	gl.MatrixMode(gl.MODELVIEW)

	return glError("overlay")
}

func glError(op string) error {
	if e := gl.GetError(); e != gl.NO_ERROR {
		return fmt.Errorf("%s: OpenGL error 0x%04x", op, e)
	}
	return nil
}
