// Package setup builds a ready to run engine with the stock components: a
// frame, a renderer drawing a scene graph through a culling camera, input
// devices, resource managers for OBJ models, TGA textures and GLSL shaders
// and a HUD.
//
//	s, err := setup.New("demo")
//	if err != nil {
//		log.Fatal(err)
//	}
//	s.Camera().SetPosition(mgl32.Vec3{0, 0, 10})
//	if err := s.Start(); err != nil {
//		log.Fatal(err)
//	}
package setup

import (
	"fmt"
	"sync"

	"github.com/spf13/afero"

	"github.com/der-antikeks/simplesetup/backend"
	"github.com/der-antikeks/simplesetup/core"
	"github.com/der-antikeks/simplesetup/devices"
	"github.com/der-antikeks/simplesetup/display"
	"github.com/der-antikeks/simplesetup/logging"
	"github.com/der-antikeks/simplesetup/renderers"
	"github.com/der-antikeks/simplesetup/resources"
	"github.com/der-antikeks/simplesetup/resources/glsl"
	"github.com/der-antikeks/simplesetup/resources/obj"
	"github.com/der-antikeks/simplesetup/resources/tga"
	"github.com/der-antikeks/simplesetup/scene"
)

type Setup struct {
	mu sync.RWMutex

	config Config
	fs     afero.Fs

	engine   *core.Engine
	frame    display.Frame
	viewport *display.Viewport
	renderer renderers.Renderer
	input    devices.Device

	root    scene.Node
	camera  *display.Camera
	frustum *display.Frustum

	view          *renderers.RenderingView
	textureLoader *renderers.TextureLoader
	shaderLoader  *renderers.ShaderLoader
	detachShaders func()
	hud           *display.HUD
	fps           *display.FPSSurface

	resources *resources.Registry
	models    *resources.Manager[scene.Model]

	debugging bool
}

// New creates and wires the components. An empty title keeps the title of
// the config.
func New(title string, opts ...Option) (*Setup, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	cfg := o.config
	if title != "" {
		cfg.Title = title
	}
	if o.backend != "" {
		cfg.Backend = o.backend
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	b, err := backend.Lookup(cfg.Backend)
	if err != nil {
		return nil, err
	}

	s := &Setup{
		config: cfg,
		fs:     o.fs,
	}

	s.engine = core.NewEngine()
	s.engine.SetTickRate(cfg.Engine.FPS)

	if s.frame, err = b.NewFrame(cfg.frameOptions()); err != nil {
		return nil, fmt.Errorf("could not create frame: %w", err)
	}
	s.viewport = o.viewport(s.frame)
	if s.renderer, err = b.NewRenderer(s.viewport); err != nil {
		return nil, fmt.Errorf("could not create renderer: %w", err)
	}
	if s.input, err = b.NewInput(s.frame); err != nil {
		return nil, fmt.Errorf("could not create input: %w", err)
	}

	root := scene.NewSceneNode()
	s.root = root
	s.camera = display.NewCamera(display.NewInterpolatedViewingVolume(display.NewViewingVolume()))
	s.frustum = display.NewFrustum(s.camera)
	s.view = renderers.NewRenderingView(b.NewDrawer(), renderers.NewAcceleratedView())
	s.textureLoader = renderers.NewTextureLoader(s.renderer)
	s.hud = display.NewHUD()

	if o.log != nil {
		logging.AddLogger(o.log)
	}
	level, _ := logging.ParseLevel(cfg.Log.Level)
	logging.SetLevel(level)

	s.engine.AttachModule(s.frame)
	s.engine.AttachModule(s.renderer)
	s.engine.AttachModule(s.input)

	s.resources = resources.NewRegistry(s.fs)
	s.models = resources.NewManager[scene.Model](s.resources.Directories, 0)
	s.models.AddPlugin(obj.NewPlugin(s.resources.Textures))
	s.resources.Textures.AddPlugin(tga.NewPlugin())
	s.resources.Shaders.AddPlugin(glsl.NewPlugin(s.resources.Textures))
	for _, dir := range cfg.Data {
		s.AddDataDirectory(dir)
	}

	if err := root.AddNode(scene.NewDirectionalLightNode()); err != nil {
		return nil, err
	}

	s.renderer.ProcessEvent().Attach(s.view)
	s.renderer.SetSceneRoot(root)
	s.viewport.SetViewingVolume(s.frustum)
	s.attachShaderLoader(root)

	s.renderer.InitializeEvent().Attach(core.ListenerFunc[renderers.RenderingEventArg](s.loadTexturesOnInit))
	s.renderer.PreProcessEvent().Attach(s.textureLoader)
	s.input.KeyEvent().Attach(core.ListenerFunc[devices.KeyboardEventArg](s.quitOnEscape))
	if c, ok := s.frame.(display.Closer); ok {
		s.engine.ProcessEvent().Attach(core.ListenerFunc[core.ProcessEventArg](func(core.ProcessEventArg) error {
			if c.ShouldClose() {
				s.engine.Stop()
			}
			return nil
		}))
	}
	s.renderer.PostProcessEvent().Attach(renderers.HUDListener(s.hud))

	if cfg.Debug.Enabled {
		s.EnableDebugging()
	}

	return s, nil
}

func (s *Setup) loadTexturesOnInit(arg renderers.RenderingEventArg) error {
	root := arg.Renderer.SceneRoot()
	if root == nil {
		return nil
	}
	return s.textureLoader.LoadScene(root)
}

func (s *Setup) quitOnEscape(arg devices.KeyboardEventArg) error {
	if arg.Type == devices.Pressed && arg.Sym == devices.KeyEscape {
		logging.Info("escape pressed, stopping")
		s.engine.Stop()
	}
	return nil
}

// attachShaderLoader replaces the shader loader on the initialize event of
// the engine, s.mu is held or s is not shared yet.
func (s *Setup) attachShaderLoader(root scene.Node) {
	if s.detachShaders != nil {
		s.detachShaders()
	}
	s.shaderLoader = renderers.NewShaderLoader(s.renderer, root)
	s.detachShaders = s.engine.InitializeEvent().Attach(s.shaderLoader)
}

// Start runs the engine until it is stopped, see core.Engine.Start.
func (s *Setup) Start() error {
	return s.engine.Start()
}

func (s *Setup) Config() Config                          { return s.config }
func (s *Setup) Engine() *core.Engine                    { return s.engine }
func (s *Setup) Frame() display.Frame                    { return s.frame }
func (s *Setup) Renderer() renderers.Renderer            { return s.renderer }
func (s *Setup) Input() devices.Device                   { return s.input }
func (s *Setup) Mouse() devices.Mouse                    { return s.input }
func (s *Setup) Keyboard() devices.Keyboard              { return s.input }
func (s *Setup) Joystick() devices.Joystick              { return s.input }
func (s *Setup) HUD() *display.HUD                       { return s.hud }
func (s *Setup) Viewport() *display.Viewport             { return s.viewport }
func (s *Setup) RenderingView() *renderers.RenderingView { return s.view }
func (s *Setup) TextureLoader() *renderers.TextureLoader { return s.textureLoader }
func (s *Setup) Resources() *resources.Registry          { return s.resources }
func (s *Setup) Models() *resources.Manager[scene.Model] { return s.models }

func (s *Setup) Scene() scene.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.root
}

// SetScene makes n the scene drawn by the renderer. Its shaders are compiled
// when the engine initializes, or right away on a running engine; the same
// holds for its textures. The caller keeps ownership of n.
func (s *Setup) SetScene(n scene.Node) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.root = n
	s.renderer.SetSceneRoot(n)

	if s.debugging && n != nil {
		if err := n.AddNode(s.frustum.FrustumNode()); err != nil {
			logging.Warnf("could not add frustum to scene: %v", err)
		}
	}

	s.attachShaderLoader(n)

	if !s.engine.IsRunning() {
		return
	}
	if err := s.textureLoader.LoadScene(n); err != nil {
		logging.Errorf("could not load textures: %v", err)
	}
	if err := s.shaderLoader.Load(); err != nil {
		logging.Errorf("could not load shaders: %v", err)
	}
}

func (s *Setup) Camera() *display.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.camera
}

func (s *Setup) Frustum() *display.Frustum {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frustum
}

// SetCamera derives a new frustum from c and views the scene through it.
func (s *Setup) SetCamera(c *display.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.frustum
	s.camera = c
	s.frustum = display.NewFrustum(c)

	if s.debugging {
		if p := old.FrustumNode().Parent(); p != nil {
			p.RemoveNode(old.FrustumNode())
		}
		s.frustum.VisualizeClipping(true)
		if s.root != nil {
			if err := s.root.AddNode(s.frustum.FrustumNode()); err != nil {
				logging.Warnf("could not add frustum to scene: %v", err)
			}
		}
	}

	s.viewport.SetViewingVolume(s.frustum)
}

// SetViewingVolume views the scene through v, wrapped in a new camera.
func (s *Setup) SetViewingVolume(v display.ViewingVolume) {
	s.SetCamera(display.NewCamera(v))
}

// AddDataDirectory appends dir to the search path of all resource managers.
func (s *Setup) AddDataDirectory(dir string) {
	s.resources.Directories.AppendPath(dir)
}

// AddModel loads a model through the model manager and adds a new instance
// of it to the current scene. Instances share meshes and materials.
func (s *Setup) AddModel(file string) (scene.Node, error) {
	m, err := s.models.Create(file)
	if err != nil {
		return nil, err
	}

	src := m.SceneNode()
	if src == nil {
		return nil, fmt.Errorf("model %s has no scene node", file)
	}
	n, err := scene.Copy(src)
	if err != nil {
		return nil, fmt.Errorf("could not instance %s: %w", file, err)
	}

	s.mu.RLock()
	root := s.root
	s.mu.RUnlock()

	if root == nil {
		return nil, fmt.Errorf("no scene to add %s to", file)
	}
	if err := root.AddNode(n); err != nil {
		return nil, err
	}
	return n, nil
}

// EnableDebugging shows the clipping planes of the frustum, adds a frames
// per second counter to the HUD and exports the scene graph as dot file.
// Failing to write the file is logged only.
func (s *Setup) EnableDebugging() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.debugging {
		s.debugging = true

		s.frustum.VisualizeClipping(true)
		if s.root != nil {
			if err := s.root.AddNode(s.frustum.FrustumNode()); err != nil {
				logging.Warnf("could not add frustum to scene: %v", err)
			}
		}

		fps, err := display.NewFPSSurface()
		if err != nil {
			logging.Warnf("could not create fps counter: %v", err)
		} else {
			s.fps = fps
			s.hud.AddSurface(fps)
		}
	}

	s.exportScene()
}

func (s *Setup) IsDebugging() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.debugging
}

// exportScene writes the dot graph of the scene, s.mu is held.
func (s *Setup) exportScene() {
	name := s.config.Debug.DotFile
	if name == "" {
		name = "scene.dot"
	}

	f, err := s.fs.Create(name)
	if err != nil {
		logging.Errorf("Can not open '%s' for output", name)
		return
	}
	defer f.Close()

	if s.root == nil {
		return
	}
	if err := scene.WriteDot(f, s.root); err != nil {
		logging.Errorf("Can not write '%s': %v", name, err)
		return
	}

	logging.Infof("Created %s", name)
	logging.Infof("Use 'dot -Tsvg %s > scene.svg' to create a graph of the scene", name)
}
