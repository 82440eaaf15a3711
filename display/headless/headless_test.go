package headless

import (
	"image"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/der-antikeks/simplesetup/backend"
	"github.com/der-antikeks/simplesetup/core"
	"github.com/der-antikeks/simplesetup/display"
	"github.com/der-antikeks/simplesetup/geometry"
	"github.com/der-antikeks/simplesetup/renderers"
	"github.com/der-antikeks/simplesetup/resources"
	"github.com/der-antikeks/simplesetup/scene"
)

func TestRegistered(t *testing.T) {
	b, err := backend.Lookup(Name)
	require.NoError(t, err)
	assert.Contains(t, backend.Names(), Name)

	f, err := b.NewFrame(display.DefaultFrameOptions())
	require.NoError(t, err)
	assert.Equal(t, 800, f.Width())
	assert.Equal(t, 600, f.Height())
	assert.Equal(t, 32, f.Depth())
	assert.Equal(t, "gisp", f.Title())

	in, err := b.NewInput(f)
	require.NoError(t, err)
	assert.NotNil(t, in)
}

func TestFrame(t *testing.T) {
	f := NewFrame(display.DefaultFrameOptions())
	assert.ErrorIs(t, f.Process(core.ProcessEventArg{}), ErrNotOpen)

	e := core.NewEngine()
	e.AttachModule(f)
	e.ProcessEvent().Attach(core.ListenerFunc[core.ProcessEventArg](func(core.ProcessEventArg) error {
		if f.Frames() == 3 {
			e.Stop()
		}
		return nil
	}))
	require.NoError(t, e.Start())

	assert.EqualValues(t, 3, f.Frames())
	assert.False(t, f.IsOpen())

	f.SetTitle("test")
	assert.Equal(t, "test", f.Title())
	f.Resize(320, 200)
	assert.Equal(t, 320, f.Width())

	var c display.Closer = f
	assert.False(t, c.ShouldClose())
	f.Close()
	assert.True(t, c.ShouldClose())
}

func TestRenderer(t *testing.T) {
	r := NewRenderer(display.NewViewport(NewFrame(display.DefaultFrameOptions())))

	tex := resources.NewImageTexture(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	require.NoError(t, r.LoadTexture(tex))
	assert.NotZero(t, tex.ID())

	tex.SetImage(image.NewRGBA(image.Rect(0, 0, 2, 2)))
	require.NoError(t, r.DrawOverlay(tex, 0, 0, 2, 2))
	assert.False(t, tex.Changed())

	empty := resources.NewImageTexture(nil)
	assert.ErrorIs(t, r.LoadTexture(empty), ErrNoImage)

	textures, rebinds, shaders, overlays := r.Stats()
	assert.EqualValues(t, 1, textures)
	assert.EqualValues(t, 1, rebinds)
	assert.EqualValues(t, 0, shaders)
	assert.EqualValues(t, 1, overlays)
}

func TestDrawer(t *testing.T) {
	f := NewFrame(display.DefaultFrameOptions())
	r := NewRenderer(display.NewViewport(f))

	root := scene.NewSceneNode()
	_ = root.AddNode(scene.NewDirectionalLightNode())
	tn := scene.NewTransformationNode()
	tn.SetPosition(mgl32.Vec3{0, 0, -10})
	_ = tn.AddNode(scene.NewMeshNode(geometry.NewCube(1, nil)))
	_ = root.AddNode(tn)
	r.SetSceneRoot(root)

	d := NewDrawer()
	r.ProcessEvent().Attach(renderers.NewRenderingView(d, renderers.NewFrustumCuller()))

	e := core.NewEngine()
	e.AttachModule(f)
	e.AttachModule(r)
	e.ProcessEvent().Attach(core.ListenerFunc[core.ProcessEventArg](func(core.ProcessEventArg) error {
		e.Stop()
		return nil
	}))
	require.NoError(t, e.Start())

	lights, meshes, lines := d.Last()
	assert.Equal(t, 1, lights)
	assert.Equal(t, 1, meshes)
	assert.Equal(t, 0, lines)
	assert.Equal(t, 1, d.Frames())

	d.PushTransformation(mgl32.Ident4())
	assert.Error(t, d.End())
}
