package setup

import (
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/der-antikeks/simplesetup/display"
	"github.com/der-antikeks/simplesetup/logging"
)

type Config struct {
	Title   string       `yaml:"title"`
	Backend string       `yaml:"backend"`
	Frame   FrameConfig  `yaml:"frame"`
	Engine  EngineConfig `yaml:"engine"`
	Data    []string     `yaml:"data"`
	Debug   DebugConfig  `yaml:"debug"`
	Log     LogConfig    `yaml:"log"`
}

type FrameConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Depth      int  `yaml:"depth"`
	Fullscreen bool `yaml:"fullscreen"`
}

type EngineConfig struct {
	// FPS limits the process loop, 0 is unlimited.
	FPS int `yaml:"fps"`
}

type DebugConfig struct {
	Enabled bool   `yaml:"enabled"`
	DotFile string `yaml:"dotfile"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func DefaultConfig() Config {
	opts := display.DefaultFrameOptions()

	return Config{
		Title:   opts.Title,
		Backend: "glfw",
		Frame: FrameConfig{
			Width:  opts.Width,
			Height: opts.Height,
			Depth:  opts.Depth,
		},
		Data: []string{"assets/"},
		Debug: DebugConfig{
			DotFile: "scene.dot",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadConfig reads a YAML config file. Settings missing in the file keep
// their default value.
func LoadConfig(fs afero.Fs, path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return cfg, errors.Wrap(err, "could not read config")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "could not parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrapf(err, "invalid config %s", path)
	}

	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.Frame.Width <= 0 || c.Frame.Height <= 0:
		return errors.Errorf("frame size %dx%d", c.Frame.Width, c.Frame.Height)
	case c.Frame.Depth <= 0:
		return errors.Errorf("frame depth %d", c.Frame.Depth)
	case c.Engine.FPS < 0:
		return errors.Errorf("engine fps %d", c.Engine.FPS)
	case c.Backend == "":
		return errors.New("no backend")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(err, "log level")
	}
	return nil
}

func (c Config) frameOptions() display.FrameOptions {
	return display.FrameOptions{
		Width:      c.Frame.Width,
		Height:     c.Frame.Height,
		Depth:      c.Frame.Depth,
		Title:      c.Title,
		Fullscreen: c.Frame.Fullscreen,
	}
}
