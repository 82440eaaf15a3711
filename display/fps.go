package display

import (
	"fmt"
	"image"
	"image/draw"
	"math"
	"sync"
	"time"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/der-antikeks/simplesetup/logging"
	"github.com/der-antikeks/simplesetup/resources"
)

const (
	fpsRatio   = 0.01
	fpsRefresh = 500 * time.Millisecond
	fpsSize    = 14.0
)

var (
	regularOnce sync.Once
	regular     *truetype.Font
	regularErr  error
)

func regularFont() (*truetype.Font, error) {
	regularOnce.Do(func() {
		regular, regularErr = freetype.ParseFont(goregular.TTF)
	})
	return regular, regularErr
}

// FPSSurface shows the smoothed frame rate, redrawn twice a second.
type FPSSurface struct {
	*TextureSurface

	mu      sync.Mutex
	canvas  *resources.ImageTexture
	ctx     *freetype.Context
	curfps  float64
	elapsed time.Duration
}

func NewFPSSurface() (*FPSSurface, error) {
	font, err := regularFont()
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, 128, 24))

	c := freetype.NewContext()
	c.SetDPI(72)
	c.SetFont(font)
	c.SetFontSize(fpsSize)
	c.SetClip(img.Bounds())
	c.SetDst(img)
	c.SetSrc(image.White)

	tex := resources.NewImageTexture(img)
	s := &FPSSurface{
		TextureSurface: NewTextureSurface(tex),
		canvas:         tex,
		ctx:            c,
		curfps:         60,
	}
	s.SetPosition(8, 8)

	if err := s.draw(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FPSSurface) FPS() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.curfps
}

// Update feeds the duration of the last frame.
func (s *FPSSurface) Update(dt time.Duration) {
	s.mu.Lock()
	if ds := dt.Seconds(); ds > 0 {
		s.curfps = s.curfps*(1-fpsRatio) + (1.0/ds)*fpsRatio
	}
	s.elapsed += dt
	refresh := s.elapsed >= fpsRefresh
	if refresh {
		s.elapsed = 0
	}
	s.mu.Unlock()

	if refresh {
		if err := s.draw(); err != nil {
			logging.Warnf("could not draw fps counter: %v", err)
		}
	}
}

func (s *FPSSurface) draw() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	img := s.canvas.Image()
	if img == nil {
		return nil
	}

	draw.Draw(img, img.Bounds(), image.Transparent, image.Point{}, draw.Src)

	text := fmt.Sprintf("FPS: %d", int(math.Round(s.curfps)))
	pt := freetype.Pt(2, 2+int(s.ctx.PointToFixed(fpsSize)>>6))
	if _, err := s.ctx.DrawString(text, pt); err != nil {
		return err
	}

	// hand the new pixels to the renderer
	s.canvas.SetImage(img)
	return nil
}
