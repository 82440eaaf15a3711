// Command gisp shows models in a window.
//
//	gisp --data assets/ --debug cube.obj
package main

import (
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/der-antikeks/simplesetup/core"
	"github.com/der-antikeks/simplesetup/logging"
	"github.com/der-antikeks/simplesetup/setup"

	_ "github.com/der-antikeks/simplesetup/display/glfwframe"
	_ "github.com/der-antikeks/simplesetup/display/headless"
	_ "github.com/der-antikeks/simplesetup/display/sdlframe"
)

func init() {
	// window and gl context must stay on the main thread
	runtime.LockOSThread()
}

type options struct {
	config  string
	backend string
	title   string
	data    []string
	debug   bool
	frames  int
	fps     int
}

func newCommand(fs afero.Fs) *cobra.Command {
	var o options

	cmd := &cobra.Command{
		Use:          "gisp [model files...]",
		Short:        "scene viewer",
		Long:         `gisp loads OBJ models into a scene and shows them through a camera at (0, 0, 10).`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(fs, o, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&o.config, "config", "c", "", "YAML config file")
	flags.StringVarP(&o.backend, "backend", "b", "", "frame backend, overrides the config")
	flags.StringVarP(&o.title, "title", "t", "", "window title, overrides the config")
	flags.StringSliceVarP(&o.data, "data", "d", nil, "additional data directories")
	flags.BoolVar(&o.debug, "debug", false, "show clipping planes and fps, export the scene graph")
	flags.IntVar(&o.frames, "frames", 0, "stop after this many frames, 0 runs until closed")
	flags.IntVar(&o.fps, "fps", -1, "limit the frame rate, overrides the config")

	return cmd
}

func run(fs afero.Fs, o options, models []string) error {
	cfg := setup.DefaultConfig()
	if o.config != "" {
		var err error
		if cfg, err = setup.LoadConfig(fs, o.config); err != nil {
			return err
		}
	}
	if o.fps >= 0 {
		cfg.Engine.FPS = o.fps
	}
	cfg.Data = append(cfg.Data, o.data...)

	opts := []setup.Option{setup.WithConfig(cfg), setup.WithFs(fs)}
	if o.backend != "" {
		opts = append(opts, setup.WithBackend(o.backend))
	}

	s, err := setup.New(o.title, opts...)
	if err != nil {
		return err
	}

	for _, file := range models {
		if _, err := s.AddModel(file); err != nil {
			return fmt.Errorf("could not load model: %w", err)
		}
		logging.Infof("loaded %s", file)
	}

	s.Camera().SetPosition(mgl32.Vec3{0, 0, 10})
	if o.debug {
		s.EnableDebugging()
	}

	if o.frames > 0 {
		frames := 0
		s.Engine().ProcessEvent().Attach(core.ListenerFunc[core.ProcessEventArg](func(core.ProcessEventArg) error {
			if frames++; frames >= o.frames {
				s.Engine().Stop()
			}
			return nil
		}))
	}

	return s.Start()
}

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if err := newCommand(afero.NewOsFs()).Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
