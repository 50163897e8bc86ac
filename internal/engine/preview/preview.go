// Package preview renders toon material swatches on the CPU, without a GL
// context, using the same shading terms as the fragment shader.
package preview

import (
	"image"
	"image/color"
	gomath "math"

	"golang.org/x/image/draw"

	"github.com/Faultbox/toonrig/internal/engine/lighting"
	"github.com/Faultbox/toonrig/internal/engine/texture"
	"github.com/Faultbox/toonrig/internal/engine/toon"
	"github.com/Faultbox/toonrig/pkg/math"
)

// Options control swatch rendering.
type Options struct {
	Size        int // output edge in pixels
	Supersample int // samples per output pixel along each axis
	Background  color.RGBA
}

// DefaultOptions returns a 256px swatch, 4x supersampled, on transparent.
func DefaultOptions() Options {
	return Options{Size: 256, Supersample: 4}
}

func (o Options) normalized() Options {
	if o.Size <= 0 {
		o.Size = 256
	}
	if o.Supersample <= 0 {
		o.Supersample = 1
	}
	return o
}

// Sphere renders m on a unit sphere seen orthographically along -Z, lit by
// rig in view space.
func Sphere(m *toon.Material, rig lighting.Rig, opts Options) *image.RGBA {
	opts = opts.normalized()
	n := opts.Size * opts.Supersample

	d := m.Descriptor
	d.Gradient = m.Gradient
	lights := rig.Lights()
	alpha := uint8(math.Clamp(d.Opacity, 0, 1)*255 + 0.5)

	canvas := image.NewRGBA(image.Rect(0, 0, n, n))
	view := math.Vec3{Z: 1}
	for py := 0; py < n; py++ {
		y := 1 - (float32(py)+0.5)/float32(n)*2
		for px := 0; px < n; px++ {
			x := (float32(px)+0.5)/float32(n)*2 - 1
			r2 := x*x + y*y
			if r2 > 1 {
				canvas.SetRGBA(px, py, opts.Background)
				continue
			}
			normal := math.Vec3{X: x, Y: y, Z: float32(gomath.Sqrt(float64(1 - r2)))}
			c := toon.Shade(d, m.Resolved, toon.Surface{Normal: normal, View: view}, lights, rig.Ambient)
			canvas.SetRGBA(px, py, premultiplied(c, alpha))
		}
	}

	if opts.Supersample == 1 {
		return canvas
	}
	return texture.Downsample(canvas, opts.Size, opts.Size)
}

// Sheet lays out one swatch per material in a grid with the given number of columns.
func Sheet(materials []*toon.Material, rig lighting.Rig, opts Options, columns int) *image.RGBA {
	opts = opts.normalized()
	if columns <= 0 {
		columns = 1
	}
	rows := (len(materials) + columns - 1) / columns
	if rows == 0 {
		rows = 1
	}
	cols := columns
	if len(materials) < cols {
		cols = max(len(materials), 1)
	}

	sheet := image.NewRGBA(image.Rect(0, 0, cols*opts.Size, rows*opts.Size))
	draw.Draw(sheet, sheet.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)
	for i, m := range materials {
		cell := image.Rect(0, 0, opts.Size, opts.Size).Add(image.Pt((i%columns)*opts.Size, (i/columns)*opts.Size))
		draw.Draw(sheet, cell, Sphere(m, rig, opts), image.Point{}, draw.Over)
	}
	return sheet
}

// premultiplied clamps c into an 8-bit color with coverage alpha.
func premultiplied(c math.Vec3, alpha uint8) color.RGBA {
	a := float32(alpha) / 255
	ch := func(v float32) uint8 {
		return uint8(math.Clamp(v, 0, 1)*a*255 + 0.5)
	}
	return color.RGBA{R: ch(c.X), G: ch(c.Y), B: ch(c.Z), A: alpha}
}
