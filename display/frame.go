// Package display holds the window abstraction and everything describing
// what part of the scene ends up on screen.
package display

import (
	"github.com/der-antikeks/simplesetup/core"
)

// Frame is a window or other surface the renderer draws into. It is
// attached to all engine phases: it opens on initialize, swaps buffers and
// polls events on process and closes on deinitialize.
type Frame interface {
	core.Module

	Width() int
	Height() int
	Depth() int

	Title() string
	SetTitle(string)

	Fullscreen() bool
}

// FrameOptions are the settings every frame backend understands.
type FrameOptions struct {
	Width, Height int
	Depth         int
	Title         string
	Fullscreen    bool
}

func DefaultFrameOptions() FrameOptions {
	return FrameOptions{
		Width:  800,
		Height: 600,
		Depth:  32,
		Title:  "gisp",
	}
}

// Closer is implemented by frames the user can close, e.g. with the close
// button of the window.
type Closer interface {
	ShouldClose() bool
}

// ColorBits splits a color depth into bits per red, green, blue and alpha
// channel.
func ColorBits(depth int) (r, g, b, a int) {
	switch {
	case depth >= 32:
		return 8, 8, 8, 8
	case depth >= 24:
		return 8, 8, 8, 0
	case depth >= 16:
		return 5, 6, 5, 0
	default:
		return 0, 0, 0, 0
	}
}
