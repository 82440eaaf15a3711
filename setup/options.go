package setup

import (
	"io"
	"os"

	"github.com/spf13/afero"

	"github.com/der-antikeks/simplesetup/display"
)

type options struct {
	config   Config
	backend  string
	fs       afero.Fs
	log      io.Writer
	viewport func(display.Frame) *display.Viewport
}

func defaultOptions() options {
	return options{
		config: DefaultConfig(),
		fs:     afero.NewOsFs(),
		log:    os.Stdout,
		viewport: func(f display.Frame) *display.Viewport {
			return display.NewViewport(f)
		},
	}
}

type Option func(*options)

// WithViewport replaces the default viewport covering the whole frame.
func WithViewport(f func(display.Frame) *display.Viewport) Option {
	return func(o *options) {
		if f != nil {
			o.viewport = f
		}
	}
}

// WithBackend selects a registered backend, overriding the config.
func WithBackend(name string) Option {
	return func(o *options) { o.backend = name }
}

func WithConfig(c Config) Option {
	return func(o *options) { o.config = c }
}

// WithFs sets the filesystem for resources and the scene graph export.
func WithFs(fs afero.Fs) Option {
	return func(o *options) { o.fs = fs }
}

// WithLogOutput sets the writer of the stream logger, nil adds none.
func WithLogOutput(w io.Writer) Option {
	return func(o *options) { o.log = w }
}
