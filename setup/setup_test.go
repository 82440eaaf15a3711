package setup

import (
	"image"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/der-antikeks/simplesetup/backend"
	"github.com/der-antikeks/simplesetup/core"
	"github.com/der-antikeks/simplesetup/devices"
	"github.com/der-antikeks/simplesetup/display"
	"github.com/der-antikeks/simplesetup/display/headless"
	"github.com/der-antikeks/simplesetup/geometry"
	"github.com/der-antikeks/simplesetup/logging"
	"github.com/der-antikeks/simplesetup/resources"
	"github.com/der-antikeks/simplesetup/scene"
)

func newSetup(t *testing.T, fs afero.Fs, opts ...Option) *Setup {
	t.Helper()

	opts = append([]Option{
		WithBackend(headless.Name),
		WithFs(fs),
		WithLogOutput(nil),
	}, opts...)

	s, err := New("test", opts...)
	require.NoError(t, err)
	return s
}

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()

	obs, logs := observer.New(zap.DebugLevel)
	logging.AddCore(obs)
	t.Cleanup(logging.Reset)
	return logs
}

// runFrames starts the engine and stops it after n frames.
func runFrames(t *testing.T, s *Setup, n int) {
	t.Helper()

	frames := 0
	detach := s.Engine().ProcessEvent().Attach(core.ListenerFunc[core.ProcessEventArg](func(core.ProcessEventArg) error {
		frames++
		if frames >= n {
			s.Engine().Stop()
		}
		return nil
	}))
	defer detach()

	require.NoError(t, s.Start())
}

func TestNew(t *testing.T) {
	s := newSetup(t, afero.NewMemMapFs())

	assert.Equal(t, "test", s.Frame().Title())
	assert.Equal(t, 800, s.Frame().Width())
	assert.Equal(t, 600, s.Frame().Height())
	assert.Equal(t, 32, s.Frame().Depth())

	// default scene with a single light
	children := s.Scene().Children()
	require.Len(t, children, 1)
	assert.IsType(t, &scene.DirectionalLightNode{}, children[0])
	assert.Equal(t, s.Scene(), s.Renderer().SceneRoot())

	// camera on an interpolated volume, viewed through the frustum
	assert.IsType(t, &display.InterpolatedViewingVolume{}, s.Camera().Volume())
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, s.Camera().Position())
	assert.Same(t, s.Frustum(), s.Viewport().ViewingVolume())
	assert.Same(t, s.Camera(), s.Frustum().Volume())

	// one input device serves all
	assert.Same(t, s.Input(), s.Mouse())
	assert.Same(t, s.Input(), s.Keyboard())
	assert.Same(t, s.Input(), s.Joystick())

	// plugins
	assert.Len(t, s.Models().Plugins(), 1)
	assert.Len(t, s.Resources().Textures.Plugins(), 1)
	assert.Len(t, s.Resources().Shaders.Plugins(), 1)
	assert.True(t, s.Resources().Directories.IsInPath("assets"))

	// frame, renderer, input and the shader loader
	assert.Equal(t, 4, s.Engine().InitializeEvent().Len())
	assert.Equal(t, 3, s.Engine().DeinitializeEvent().Len())

	assert.False(t, s.IsDebugging())
}

func TestNew_Errors(t *testing.T) {
	_, err := New("test", WithBackend("missing"), WithLogOutput(nil))
	assert.ErrorIs(t, err, backend.ErrUnknown)

	cfg := DefaultConfig()
	cfg.Frame.Width = 0
	_, err = New("test", WithConfig(cfg), WithBackend(headless.Name), WithLogOutput(nil))
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	s := newSetup(t, afero.NewMemMapFs())
	runFrames(t, s, 3)

	f := s.Frame().(*headless.Frame)
	assert.EqualValues(t, 3, f.Frames())
	assert.False(t, f.IsOpen())

	drawn, culled := s.RenderingView().Stats()
	assert.Equal(t, 0, drawn)
	assert.Equal(t, 0, culled)

	// aspect of the viewport reached the camera
	assert.InDelta(t, 800.0/600.0, s.Camera().Aspect(), 1e-6)
}

func TestQuitOnEscape(t *testing.T) {
	s := newSetup(t, afero.NewMemMapFs())
	in := s.Input().(*devices.Input)

	frames := 0
	s.Engine().ProcessEvent().Attach(core.ListenerFunc[core.ProcessEventArg](func(core.ProcessEventArg) error {
		frames++
		switch frames {
		case 2:
			// other keys are ignored
			return in.PushKey(devices.KeyboardEventArg{Type: devices.Pressed, Sym: devices.KeySpace})
		case 3:
			return in.PushKey(devices.KeyboardEventArg{Type: devices.Pressed, Sym: devices.KeyEscape})
		case 10:
			s.Engine().Stop()
		}
		return nil
	}))

	require.NoError(t, s.Start())
	assert.Equal(t, 3, frames)
}

func TestQuitOnClose(t *testing.T) {
	s := newSetup(t, afero.NewMemMapFs())
	s.Frame().(*headless.Frame).Close()

	require.NoError(t, s.Start())
	assert.EqualValues(t, 1, s.Frame().(*headless.Frame).Frames())
}

type testShader struct {
	id  uint32
	tex map[string]resources.Texture
}

func (s *testShader) VertexSource() string                   { return "void main() {}" }
func (s *testShader) FragmentSource() string                 { return "void main() {}" }
func (s *testShader) Textures() map[string]resources.Texture { return s.tex }
func (s *testShader) ID() uint32                             { return s.id }
func (s *testShader) SetID(id uint32)                        { s.id = id }
func (s *testShader) Load() error                            { return nil }
func (s *testShader) Unload()                                {}

func texturedScene() (scene.Node, resources.Texture, *testShader) {
	tex := resources.NewImageTexture(image.NewRGBA(image.Rect(0, 0, 2, 2)))
	shader := &testShader{}

	mat := geometry.NewMaterial()
	mat.Texture = tex
	mat.Shader = shader

	root := scene.NewSceneNode()
	tn := scene.NewTransformationNode()
	tn.SetPosition(mgl32.Vec3{0, 0, -10})
	_ = tn.AddNode(scene.NewMeshNode(geometry.NewCube(1, mat)))
	_ = root.AddNode(tn)
	_ = root.AddNode(scene.NewPointLightNode(mgl32.Vec3{0, 10, 0}))

	return root, tex, shader
}

func TestSetScene(t *testing.T) {
	s := newSetup(t, afero.NewMemMapFs())
	handlers := s.Engine().InitializeEvent().Len()

	root, tex, shader := texturedScene()
	s.SetScene(root)
	assert.Equal(t, root, s.Scene())
	assert.Equal(t, root, s.Renderer().SceneRoot())

	// replacing the scene replaces the shader loader
	other, _, otherShader := texturedScene()
	s.SetScene(other)
	s.SetScene(root)
	assert.Equal(t, handlers, s.Engine().InitializeEvent().Len())

	runFrames(t, s, 1)

	// textures are loaded when the renderer initializes, shaders when the
	// engine does
	assert.NotZero(t, tex.ID())
	assert.NotZero(t, shader.ID())
	assert.Zero(t, otherShader.ID())

	drawn, culled := s.RenderingView().Stats()
	assert.Equal(t, 1, drawn)
	assert.Equal(t, 0, culled)
}

func TestSetScene_Running(t *testing.T) {
	s := newSetup(t, afero.NewMemMapFs())
	root, tex, shader := texturedScene()

	var swapped bool
	s.Engine().ProcessEvent().Attach(core.ListenerFunc[core.ProcessEventArg](func(core.ProcessEventArg) error {
		if !swapped {
			s.SetScene(root)
			swapped = true
			return nil
		}
		s.Engine().Stop()
		return nil
	}))
	require.NoError(t, s.Start())

	assert.NotZero(t, tex.ID())
	assert.NotZero(t, shader.ID())
}

func TestSetCamera(t *testing.T) {
	s := newSetup(t, afero.NewMemMapFs())

	c := display.NewCamera(nil)
	c.SetPosition(mgl32.Vec3{1, 2, 3})
	s.SetCamera(c)

	assert.Same(t, c, s.Camera())
	assert.Same(t, c, s.Frustum().Volume())
	assert.Same(t, s.Frustum(), s.Viewport().ViewingVolume())

	v := display.NewViewingVolume()
	s.SetViewingVolume(v)
	assert.NotSame(t, c, s.Camera())
	assert.Same(t, v, s.Camera().Volume())
	assert.Same(t, s.Camera(), s.Frustum().Volume())
}

func TestEnableDebugging(t *testing.T) {
	logs := observe(t)
	fs := afero.NewMemMapFs()
	s := newSetup(t, fs)

	s.EnableDebugging()
	s.EnableDebugging()
	assert.True(t, s.IsDebugging())

	// frustum lines and fps counter are added once
	var frustums int
	for _, n := range s.Scene().Children() {
		if n == scene.Node(s.Frustum().FrustumNode()) {
			frustums++
		}
	}
	assert.Equal(t, 1, frustums)
	assert.True(t, s.Frustum().IsVisualizing())
	assert.Len(t, s.HUD().Surfaces(), 1)

	data, err := afero.ReadFile(fs, "scene.dot")
	require.NoError(t, err)
	assert.Contains(t, string(data), "digraph scene {")
	assert.Contains(t, string(data), "DirectionalLightNode")
	assert.Contains(t, string(data), "LineNode frustum")

	assert.Equal(t, 2, logs.FilterMessage("Created scene.dot").Len())
	assert.Equal(t, 2, logs.FilterMessage("Use 'dot -Tsvg scene.dot > scene.svg' to create a graph of the scene").Len())

	// a new camera moves the visualized frustum
	old := s.Frustum().FrustumNode()
	s.SetCamera(display.NewCamera(nil))
	assert.Nil(t, old.Parent())
	assert.Equal(t, s.Scene(), s.Frustum().FrustumNode().Parent())

	// and so does a new scene
	root := scene.NewSceneNode()
	s.SetScene(root)
	assert.Equal(t, scene.Node(root), s.Frustum().FrustumNode().Parent())
}

func TestEnableDebugging_ReadOnly(t *testing.T) {
	logs := observe(t)
	s := newSetup(t, afero.NewReadOnlyFs(afero.NewMemMapFs()))

	s.EnableDebugging()

	assert.Equal(t, 1, logs.FilterMessage("Can not open 'scene.dot' for output").Len())
	assert.Zero(t, logs.FilterMessage("Created scene.dot").Len())

	// debugging is enabled anyway
	assert.True(t, s.Frustum().IsVisualizing())
	assert.Len(t, s.HUD().Surfaces(), 1)
}

func TestEnableDebugging_Config(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := DefaultConfig()
	cfg.Debug.Enabled = true
	cfg.Debug.DotFile = "debug/graph.dot"

	s := newSetup(t, fs, WithConfig(cfg))
	assert.True(t, s.IsDebugging())

	ok, err := afero.Exists(fs, "debug/graph.dot")
	require.NoError(t, err)
	assert.True(t, ok)
}

const quadOBJ = `v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`

func TestAddModel(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "models/quad.obj", []byte(quadOBJ), 0o644))
	require.NoError(t, afero.WriteFile(fs, "models/quad.3ds", nil, 0o644))

	s := newSetup(t, fs)

	_, err := s.AddModel("quad.obj")
	assert.Error(t, err)

	s.AddDataDirectory("models")
	n, err := s.AddModel("quad.obj")
	require.NoError(t, err)
	assert.Equal(t, s.Scene(), n.Parent())
	assert.Len(t, s.Scene().Children(), 2)
	assert.Equal(t, 1, s.Models().Len())

	// every call adds its own instance of the cached model
	m, err := s.AddModel("quad.obj")
	require.NoError(t, err)
	assert.NotSame(t, n, m)
	assert.Same(t, s.Scene(), m.Parent())
	assert.Same(t, s.Scene(), n.Parent())
	assert.Len(t, s.Scene().Children(), 3)
	assert.Equal(t, 1, s.Models().Len())

	// instances in a replaced scene stay there
	old := s.Scene()
	s.SetScene(scene.NewSceneNode())
	o, err := s.AddModel("quad.obj")
	require.NoError(t, err)
	assert.Same(t, s.Scene(), o.Parent())
	assert.Len(t, old.Children(), 3)
	assert.Same(t, old, n.Parent())

	_, err = s.AddModel("quad.3ds")
	assert.ErrorIs(t, err, resources.ErrNoPlugin)
}
