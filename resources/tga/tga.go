// Package tga creates textures from Truevision TGA images.
package tga

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"

	"github.com/ftrvxmtrx/tga"
	"github.com/spf13/afero"

	"github.com/der-antikeks/simplesetup/resources"
)

type Plugin struct{}

func NewPlugin() *Plugin { return &Plugin{} }

func (p *Plugin) Accepts(ext string) bool {
	return ext == ".tga"
}

func (p *Plugin) Create(fs afero.Fs, file string) (resources.Texture, error) {
	return &Texture{
		ImageTexture: resources.NewImageTexture(nil),
		fs:           fs,
		file:         file,
	}, nil
}

// Texture is a file backed texture. The image is decoded by Load and
// dropped by Unload.
type Texture struct {
	*resources.ImageTexture

	fs   afero.Fs
	file string
}

func (t *Texture) File() string { return t.file }

func (t *Texture) Load() error {
	if t.Image() != nil {
		return nil
	}

	img, err := Decode(t.fs, t.file)
	if err != nil {
		return err
	}

	t.SetImage(img)
	return nil
}

const (
	headerSize = 18
	footerSize = 26
)

// Decode reads a TGA file and converts it to RGBA. Files shorter than the
// TGA 2.0 footer are padded with zeros, the decoder looks for the footer
// at the end of every file.
func Decode(fs afero.Fs, file string) (*image.RGBA, error) {
	data, err := afero.ReadFile(fs, file)
	if err != nil {
		return nil, err
	}
	if len(data) < headerSize {
		return nil, fmt.Errorf("%s: %d bytes is too short for a tga header", file, len(data))
	}
	if n := len(data); n < footerSize {
		data = append(data, make([]byte, footerSize-n)...)
	}

	im, err := tga.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	if rgba, ok := im.(*image.RGBA); ok {
		return rgba, nil
	}

	b := im.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), im, b.Min, draw.Src)
	return rgba, nil
}
