package toon

import (
	"image"
	"image/color"

	"go.uber.org/zap"

	"github.com/Faultbox/toonrig/internal/engine/texture"
	"github.com/Faultbox/toonrig/internal/logger"
)

// DefaultSteps is the 3-tone gradient shared by materials without their own.
var DefaultSteps = []uint8{80, 160, 255}

// Gradient is a tone ramp indexed by N·L.
type Gradient struct {
	Steps   []uint8
	Texture texture.Handle // set once uploaded
}

// NewGradient creates a gradient from the given tones, darkest first.
func NewGradient(steps ...uint8) *Gradient {
	s := make([]uint8, len(steps))
	copy(s, steps)
	return &Gradient{Steps: s}
}

// Image returns the gradient as an N x 1 gray image for upload.
func (g *Gradient) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, len(g.Steps), 1))
	for i, s := range g.Steps {
		img.SetGray(i, 0, color.Gray{Y: s})
	}
	return img
}

// Sample returns the tone for ndotl with nearest filtering, in [0,1].
func (g *Gradient) Sample(ndotl float32) float32 {
	n := len(g.Steps)
	if n == 0 {
		return 1
	}
	coord := ndotl*0.5 + 0.5
	i := int(coord * float32(n))
	if i < 0 {
		i = 0
	}
	if i >= n {
		i = n - 1
	}
	return float32(g.Steps[i]) / 255
}

// GradientUploader turns a gradient into a GPU texture.
type GradientUploader func(*Gradient) texture.Handle

// GradientCache owns the shared default gradient. It is created empty, builds
// the gradient on first use and hands out that same instance until Close.
type GradientCache struct {
	upload  GradientUploader
	release func(texture.Handle)
	def     *Gradient
}

// NewGradientCache creates a cache. upload and release may be nil for
// headless use, in which case gradients carry no texture.
func NewGradientCache(upload GradientUploader, release func(texture.Handle)) *GradientCache {
	return &GradientCache{upload: upload, release: release}
}

// Default returns the shared default gradient.
func (c *GradientCache) Default() *Gradient {
	if c.def != nil {
		return c.def
	}
	c.def = NewGradient(DefaultSteps...)
	if c.upload != nil {
		c.def.Texture = c.upload(c.def)
	}
	logger.Debug("default tone gradient created",
		zap.Int("steps", len(c.def.Steps)),
		zap.Uint32("texture", uint32(c.def.Texture)))
	return c.def
}

// Close releases the default gradient's texture. A later Default call builds a new one.
func (c *GradientCache) Close() {
	if c.def == nil {
		return
	}
	if c.release != nil && c.def.Texture.Valid() {
		c.release(c.def.Texture)
	}
	c.def.Texture = texture.None
	c.def = nil
}
