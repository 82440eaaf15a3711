package opengl

import (
	"errors"

	"github.com/go-gl/gl/v2.1/gl"

	"github.com/der-antikeks/simplesetup/resources"
)

var ErrNoImage = errors.New("texture has no image")

// LoadTexture creates the texture object and uploads the image.
func (r *Renderer) LoadTexture(tex resources.Texture) error {
	if tex.Image() == nil {
		return ErrNoImage
	}

	id := tex.ID()
	if id == 0 || !r.textures[id] {
		gl.GenTextures(1, &id)
		tex.SetID(id)
		r.textures[id] = true
	}

	gl.BindTexture(gl.TEXTURE_2D, id)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.GENERATE_MIPMAP, gl.TRUE)

	upload(tex)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return glError("load texture")
}

// RebindTexture uploads the current image into the existing texture object.
func (r *Renderer) RebindTexture(tex resources.Texture) error {
	if tex.ID() == 0 {
		return r.LoadTexture(tex)
	}
	if tex.Image() == nil {
		return ErrNoImage
	}

	gl.BindTexture(gl.TEXTURE_2D, tex.ID())
	upload(tex)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return glError("rebind texture")
}

func upload(tex resources.Texture) {
	img := tex.Image()
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(img.Bounds().Dx()), int32(img.Bounds().Dy()),
		0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	tex.SetChanged(false)
}
